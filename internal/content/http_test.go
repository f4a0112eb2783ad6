// Copyright (c) 2026 TeachyAI. All rights reserved.

package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/content"
)

func newHandlerFixture() (*content.Handler, *content.Service) {
	service, _ := newTestService()
	return content.NewHandler(service), service
}

/*
TestHandler_List verifies public browsing: category routing, the optional
kind filter, and the paginated envelope.
*/
func TestHandler_List(t *testing.T) {
	handler, service := newHandlerFixture()
	router := handler.Routes()

	_, err := service.Create(context.Background(), content.CreateInput{
		Category: content.CategoryFinanzlehrer,
		Kind:     content.KindCalculator,
		Title:    "Zinsrechner",
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), content.CreateInput{
		Category: content.CategoryFinanzlehrer,
		Kind:     content.KindEbook,
		Title:    "Altersvorsorge Basics",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/finanzlehrer?type=calculator", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Data []content.Item `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Zinsrechner", page.Data[0].Title)
	assert.Equal(t, 1, page.Meta.Total)
}

/*
TestHandler_List_Rejections verifies the boundary checks on the public list.
*/
func TestHandler_List_Rejections(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := handler.Routes()

	tests := []struct {
		name     string
		target   string
		wantCode int
	}{
		{"unknown_category", "/sportlehrer", http.StatusNotFound},
		{"invalid_kind", "/finanzlehrer?type=video", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

/*
TestHandler_GetBySlug verifies the slug lookup path.
*/
func TestHandler_GetBySlug(t *testing.T) {
	handler, service := newHandlerFixture()
	router := handler.Routes()

	item, err := service.Create(context.Background(), content.CreateInput{
		Category: content.CategoryLieblingslehrer,
		Kind:     content.KindGuide,
		Title:    "Elterngespräche meistern",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/lieblingslehrer/slug/"+item.Slug, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var single struct {
		Data content.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &single))
	assert.Equal(t, item.ID, single.Data.ID)
}

/*
TestHandler_EditorialRequiresAuth verifies anonymous writes are blocked.
*/
func TestHandler_EditorialRequiresAuth(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := handler.Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/item/some-id", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
