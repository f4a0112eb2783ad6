// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/lesson"
	"github.com/teachyai/teachy/internal/platform/ctxkey"
	"github.com/teachyai/teachy/internal/platform/sec"
)

// newTestRouter mounts the lesson routes behind a middleware that injects
// claims for userID, mirroring what the JWT middleware does in production.
// An empty userID leaves requests anonymous.
func newTestRouter(handler *lesson.Handler, userID string) http.Handler {
	router := chi.NewRouter()
	if userID != "" {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, httpRequest *http.Request) {
				claims := &sec.AuthClaims{UserID: userID, Role: "teacher"}
				ctx := context.WithValue(httpRequest.Context(), ctxkey.KeyUser, claims)
				next.ServeHTTP(writer, httpRequest.WithContext(ctx))
			})
		})
	}
	router.Mount("/", handler.Routes())
	return router
}

func newHandlerFixture() (*lesson.Handler, *lesson.Service) {
	service := lesson.NewService(newMemoryRepository(), &fakeGenerator{content: "# Lernziele\n..."}, discardLogger())
	return lesson.NewHandler(service), service
}

/*
TestHandler_Generate verifies the full request cycle: decoding, validation,
generation, and the created envelope.
*/
func TestHandler_Generate(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := newTestRouter(handler, "user-1")

	body := `{
		"grade_level": "7",
		"subject": "Mathematik",
		"duration": "45 Minuten",
		"topic": "Bruchrechnung",
		"teaching_methods": ["Gruppenarbeit"]
	}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response struct {
		Data lesson.Plan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "Bruchrechnung", response.Data.Title)
	assert.Equal(t, "user-1", response.Data.UserID)
	assert.NotEmpty(t, response.Data.Content)
}

/*
TestHandler_Generate_Validation verifies a missing required field is rejected
before any provider call.
*/
func TestHandler_Generate_Validation(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := newTestRouter(handler, "user-1")

	body := `{"grade_level": "7", "duration": "45 Minuten", "teaching_methods": ["Gruppenarbeit"]}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "subject")
}

/*
TestHandler_RequiresAuthentication verifies anonymous requests are blocked on
every route.
*/
func TestHandler_RequiresAuthentication(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := newTestRouter(handler, "")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_GetAndList verifies URL parameter extraction and the paginated
envelope.
*/
func TestHandler_GetAndList(t *testing.T) {
	handler, service := newHandlerFixture()
	router := newTestRouter(handler, "user-1")

	plan, err := service.Generate(context.Background(), "user-1", lesson.PlanRequest{
		GradeLevel: "7", Subject: "Mathematik", Duration: "45 Minuten",
		TeachingMethods: []string{"Gruppenarbeit"},
	})
	require.NoError(t, err)

	// Single fetch by ID.
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+plan.ID, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var single struct {
		Data lesson.Plan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &single))
	assert.Equal(t, plan.ID, single.Data.ID)

	// Paginated list.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Data []lesson.Plan `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.Meta.Total)
}
