// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/lesson"
)

/*
TestBuildUserPrompt tests the rendered prompt with all fields set.
*/
func TestBuildUserPrompt(t *testing.T) {
	prompt := lesson.BuildUserPrompt(lesson.PlanRequest{
		GradeLevel:         "7",
		Subject:            "Mathematik",
		Duration:           "45 Minuten",
		Topic:              "Bruchrechnung",
		LearningObjectives: "Brüche kürzen und erweitern",
		TeachingMethods:    []string{"Gruppenarbeit", "Frontalunterricht"},
	})

	assert.Contains(t, prompt, "- Klassenstufe: 7")
	assert.Contains(t, prompt, "- Fach: Mathematik")
	assert.Contains(t, prompt, "- Dauer: 45 Minuten")
	assert.Contains(t, prompt, "- Thema: Bruchrechnung")
	assert.Contains(t, prompt, "- Gewünschte Lernziele: Brüche kürzen und erweitern")
	assert.Contains(t, prompt, "- Unterrichtsmethoden: Gruppenarbeit, Frontalunterricht")
}

/*
TestBuildUserPrompt_OmitsOptionalLines verifies unset optional fields produce
no line at all rather than an empty bullet.
*/
func TestBuildUserPrompt_OmitsOptionalLines(t *testing.T) {
	prompt := lesson.BuildUserPrompt(lesson.PlanRequest{
		GradeLevel:      "7",
		Subject:         "Mathematik",
		Duration:        "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})

	assert.NotContains(t, prompt, "Thema")
	assert.NotContains(t, prompt, "Lernziele")

	// No blank bullets either.
	for _, line := range strings.Split(prompt, "\n") {
		assert.NotEqual(t, "-", strings.TrimSpace(line))
	}
}

/*
TestGenerate_SystemPromptStructure verifies the fixed section headings the
app's renderer relies on, as handed to the provider.
*/
func TestGenerate_SystemPromptStructure(t *testing.T) {
	repository := newMemoryRepository()
	generator := &fakeGenerator{content: "plan"}
	service := lesson.NewService(repository, generator, discardLogger())

	_, err := service.Generate(context.Background(), "owner", lesson.PlanRequest{
		GradeLevel:      "7",
		Subject:         "Mathematik",
		Duration:        "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)

	for _, heading := range []string{
		"# Lernziele",
		"# Unterrichtsablauf",
		"# Materialien",
		"# Differenzierung",
		"# Hausaufgaben",
	} {
		assert.Contains(t, generator.lastSystemPrompt, heading)
	}
}
