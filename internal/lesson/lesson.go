// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package lesson generates and stores AI-assisted lesson plans.

# Core Responsibility

  - Generation: Builds German-language prompts from structured teacher input
    and calls the DeepSeek chat completion API.
  - Persistence: Saves generated plans so teachers can revisit and share them.
  - Isolation: Provider failures never leak raw upstream errors to clients;
    the cause is logged and a stable application error is returned.
*/
package lesson

import "time"

// # Domain Entities

// Plan is a persisted lesson plan. Content holds the generated markdown.
type Plan struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	GradeLevel string    `json:"grade_level"`
	Duration   string    `json:"duration"`
	Content    string    `json:"content"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlanRequest carries the structured input a teacher fills in before
// generation. Topic and LearningObjectives are optional free text.
type PlanRequest struct {
	GradeLevel         string
	Subject            string
	Duration           string
	Topic              string
	LearningObjectives string
	TeachingMethods    []string
}

// # Field Identifiers

const (
	FieldGradeLevel         = "grade_level"
	FieldSubject            = "subject"
	FieldDuration           = "duration"
	FieldTopic              = "topic"
	FieldLearningObjectives = "learning_objectives"
	FieldTeachingMethods    = "teaching_methods"
	FieldTitle              = "title"
	FieldIsPublic           = "is_public"
	FieldPlanID             = "planID"
)
