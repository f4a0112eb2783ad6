// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/lesson"
	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/pkg/pointer"
)

// fakeGenerator returns a scripted completion.
type fakeGenerator struct {
	content string
	err     error

	lastSystemPrompt string
	lastUserPrompt   string
}

func (fake *fakeGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	fake.lastSystemPrompt = systemPrompt
	fake.lastUserPrompt = userPrompt
	return fake.content, fake.err
}

// memoryRepository is an in-memory plan store.
type memoryRepository struct {
	plans map[string]*lesson.Plan
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{plans: make(map[string]*lesson.Plan)}
}

func (repo *memoryRepository) Create(_ context.Context, plan *lesson.Plan) error {
	repo.plans[plan.ID] = plan
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*lesson.Plan, error) {
	plan, ok := repo.plans[id]
	if !ok {
		return nil, apperr.NotFound("lesson plan")
	}
	copied := *plan
	return &copied, nil
}

func (repo *memoryRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*lesson.Plan, int, error) {
	var result []*lesson.Plan
	for _, plan := range repo.plans {
		if plan.UserID == userID {
			result = append(result, plan)
		}
	}
	return result, len(result), nil
}

func (repo *memoryRepository) Update(_ context.Context, plan *lesson.Plan) error {
	if _, ok := repo.plans[plan.ID]; !ok {
		return apperr.NotFound("lesson plan")
	}
	repo.plans[plan.ID] = plan
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.plans[id]; !ok {
		return apperr.NotFound("lesson plan")
	}
	delete(repo.plans, id)
	return nil
}

func (repo *memoryRepository) DeleteByUser(_ context.Context, userID string) error {
	for id, plan := range repo.plans {
		if plan.UserID == userID {
			delete(repo.plans, id)
		}
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

/*
TestService_Generate verifies generation persists the plan and derives a
title from the topic.
*/
func TestService_Generate(t *testing.T) {
	generator := &fakeGenerator{content: "# Lernziele\n..."}
	repository := newMemoryRepository()
	service := lesson.NewService(repository, generator, discardLogger())

	plan, err := service.Generate(context.Background(), "u1", lesson.PlanRequest{
		GradeLevel:      "7",
		Subject:         "Mathematik",
		Duration:        "45 Minuten",
		Topic:           "Bruchrechnung",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bruchrechnung", plan.Title)
	assert.Equal(t, "u1", plan.UserID)
	assert.Equal(t, "# Lernziele\n...", plan.Content)
	assert.False(t, plan.IsPublic)
	assert.Contains(t, generator.lastUserPrompt, "- Thema: Bruchrechnung")

	// Persisted.
	stored, err := repository.FindByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Content, stored.Content)
}

/*
TestService_Generate_TitleFallback verifies the subject/grade title when no
topic is given.
*/
func TestService_Generate_TitleFallback(t *testing.T) {
	generator := &fakeGenerator{content: "plan"}
	service := lesson.NewService(newMemoryRepository(), generator, discardLogger())

	plan, err := service.Generate(context.Background(), "u1", lesson.PlanRequest{
		GradeLevel:      "7",
		Subject:         "Mathematik",
		Duration:        "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mathematik (Klassenstufe 7)", plan.Title)
}

/*
TestService_Generate_ProviderFailure verifies provider errors surface as a
stable service-unavailable error, for auth and generic failures alike.
*/
func TestService_Generate_ProviderFailure(t *testing.T) {
	for _, providerErr := range []error{lesson.ErrAuthentication, errors.New("timeout")} {
		generator := &fakeGenerator{err: providerErr}
		repository := newMemoryRepository()
		service := lesson.NewService(repository, generator, discardLogger())

		_, err := service.Generate(context.Background(), "u1", lesson.PlanRequest{
			GradeLevel:      "7",
			Subject:         "Mathematik",
			Duration:        "45 Minuten",
			TeachingMethods: []string{"Gruppenarbeit"},
		})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "SERVICE_UNAVAILABLE", appError.Code)

		// Nothing was persisted.
		assert.Empty(t, repository.plans)
	}
}

/*
TestService_Get_Visibility verifies owners see their plans, strangers only
see public ones, and private plans read as not found.
*/
func TestService_Get_Visibility(t *testing.T) {
	repository := newMemoryRepository()
	service := lesson.NewService(repository, &fakeGenerator{content: "plan"}, discardLogger())

	plan, err := service.Generate(context.Background(), "owner", lesson.PlanRequest{
		GradeLevel: "7", Subject: "Mathematik", Duration: "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)

	// Owner access.
	_, err = service.Get(context.Background(), "owner", plan.ID)
	assert.NoError(t, err)

	// Stranger on a private plan.
	_, err = service.Get(context.Background(), "stranger", plan.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)

	// Stranger on a public plan.
	_, err = service.Update(context.Background(), "owner", plan.ID, lesson.UpdateInput{IsPublic: pointer.To(true)})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "stranger", plan.ID)
	assert.NoError(t, err)
}

/*
TestService_Delete_OwnershipEnforced verifies only the owner can delete.
*/
func TestService_Delete_OwnershipEnforced(t *testing.T) {
	repository := newMemoryRepository()
	service := lesson.NewService(repository, &fakeGenerator{content: "plan"}, discardLogger())

	plan, err := service.Generate(context.Background(), "owner", lesson.PlanRequest{
		GradeLevel: "7", Subject: "Mathematik", Duration: "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), "stranger", plan.ID)
	require.Error(t, err)

	require.NoError(t, service.Delete(context.Background(), "owner", plan.ID))
	assert.Empty(t, repository.plans)
}
