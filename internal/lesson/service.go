// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/pkg/uuid"
)

// # Service Layer

// Service orchestrates plan generation, persistence, and access control.
type Service struct {
	repository Repository
	generator  Generator
	logger     *slog.Logger
}

// NewService wires the lesson service with its storage and provider deps.
func NewService(repository Repository, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		generator:  generator,
		logger:     logger,
	}
}

/*
Generate produces a lesson plan via the provider and persists it.

Description: Builds the German prompt pair from the structured request, calls
the provider once (no retry; the teacher re-triggers on failure), and saves
the result as a private plan owned by the requesting user.

Provider failures are logged with their cause but surface to the client as a
stable application error. An invalid API key is an operator problem, not a
user problem, so both cases read as temporary unavailability.

Parameters:
  - context: context.Context
  - userID: string (Owner of the new plan)
  - request: PlanRequest (Validated structured input)

Returns:
  - *Plan: The persisted plan including generated content
  - error: apperr.ServiceUnavailable on provider failure
*/
func (service *Service) Generate(context context.Context, userID string, request PlanRequest) (*Plan, error) {
	userPrompt := BuildUserPrompt(request)

	content, err := service.generator.Generate(context, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, ErrAuthentication) {
			service.logger.Error("lesson generation failed: provider rejected api key")
		} else {
			service.logger.Error("lesson generation failed", slog.Any("error", err))
		}
		return nil, apperr.ServiceUnavailable("Lesson plan generation is currently unavailable. Please try again later.")
	}

	// Title derivation: the topic names the plan when present, otherwise the
	// subject and grade do.
	title := request.Topic
	if title == "" {
		title = fmt.Sprintf("%s (Klassenstufe %s)", request.Subject, request.GradeLevel)
	}

	plan := &Plan{
		ID:         uuid.Must(),
		UserID:     userID,
		Title:      title,
		Subject:    request.Subject,
		GradeLevel: request.GradeLevel,
		Duration:   request.Duration,
		Content:    content,
		IsPublic:   false,
	}

	if err := service.repository.Create(context, plan); err != nil {
		return nil, fmt.Errorf("lesson_service_generate_persist_failed: %w", err)
	}

	service.logger.Info("lesson plan generated",
		slog.String("plan_id", plan.ID),
		slog.String("user_id", userID),
		slog.String("subject", plan.Subject),
	)

	return plan, nil
}

/*
Get returns a single plan, enforcing visibility.

Description: Owners always see their plans; everyone else only sees plans
marked public. Inaccessible private plans read as NotFound rather than
Forbidden so their existence is not revealed.
*/
func (service *Service) Get(context context.Context, userID, planID string) (*Plan, error) {
	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return nil, fmt.Errorf("lesson_service_get_failed: %w", err)
	}

	if plan.UserID != userID && !plan.IsPublic {
		return nil, apperr.NotFound("lesson plan")
	}

	return plan, nil
}

/*
List returns a page of the user's own plans, newest first.
*/
func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Plan, int, error) {
	plans, total, err := service.repository.ListByUser(context, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("lesson_service_list_failed: %w", err)
	}

	return plans, total, nil
}

// UpdateInput carries partial plan changes; nil pointers leave the current
// value untouched.
type UpdateInput struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

/*
Update applies partial changes to a plan the user owns.
*/
func (service *Service) Update(context context.Context, userID, planID string, input UpdateInput) (*Plan, error) {
	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return nil, fmt.Errorf("lesson_service_update_load_failed: %w", err)
	}

	if plan.UserID != userID {
		return nil, apperr.NotFound("lesson plan")
	}

	if input.Title != nil {
		plan.Title = *input.Title
	}
	if input.Content != nil {
		plan.Content = *input.Content
	}
	if input.IsPublic != nil {
		plan.IsPublic = *input.IsPublic
	}

	if err := service.repository.Update(context, plan); err != nil {
		return nil, fmt.Errorf("lesson_service_update_failed: %w", err)
	}

	return plan, nil
}

/*
Delete removes a plan the user owns.
*/
func (service *Service) Delete(context context.Context, userID, planID string) error {
	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return fmt.Errorf("lesson_service_delete_load_failed: %w", err)
	}

	if plan.UserID != userID {
		return apperr.NotFound("lesson plan")
	}

	if err := service.repository.Delete(context, planID); err != nil {
		return fmt.Errorf("lesson_service_delete_failed: %w", err)
	}

	return nil
}

/*
PurgeUser removes every plan owned by a user. Called during account removal.
*/
func (service *Service) PurgeUser(context context.Context, userID string) error {
	if err := service.repository.DeleteByUser(context, userID); err != nil {
		return fmt.Errorf("lesson_service_purge_user_failed: %w", err)
	}

	return nil
}
