// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import (
	"fmt"
	"strings"
)

// systemPrompt fixes the output structure of every generated plan. The model
// is instructed to always answer with the same five German sections.
const systemPrompt = `Du bist ein erfahrener Lehrer und Experte für Unterrichtsplanung.
Du erstellst detaillierte, praxisnahe und gut strukturierte Unterrichtspläne.
Deine Antworten sind klar gegliedert und folgen immer diesem Format:

# Lernziele
[Liste der konkreten Lernziele]

# Unterrichtsablauf
[Detaillierter, zeitlich gegliederter Ablaufplan]

# Materialien
[Liste aller benötigten Materialien]

# Differenzierung
[Vorschläge zur Differenzierung nach oben und unten]

# Hausaufgaben
[Sinnvolle, zum Unterricht passende Hausaufgaben]`

// BuildUserPrompt renders the structured request as the bullet list the model
// expects. Optional lines (topic, desired objectives) are omitted entirely
// when unset rather than rendered empty.
func BuildUserPrompt(request PlanRequest) string {
	var builder strings.Builder

	builder.WriteString("Erstelle einen Unterrichtsplan für:\n")
	builder.WriteString(fmt.Sprintf("- Klassenstufe: %s\n", request.GradeLevel))
	builder.WriteString(fmt.Sprintf("- Fach: %s\n", request.Subject))
	builder.WriteString(fmt.Sprintf("- Dauer: %s\n", request.Duration))

	if request.Topic != "" {
		builder.WriteString(fmt.Sprintf("- Thema: %s\n", request.Topic))
	}
	if request.LearningObjectives != "" {
		builder.WriteString(fmt.Sprintf("- Gewünschte Lernziele: %s\n", request.LearningObjectives))
	}

	builder.WriteString(fmt.Sprintf("- Unterrichtsmethoden: %s", strings.Join(request.TeachingMethods, ", ")))

	return builder.String()
}
