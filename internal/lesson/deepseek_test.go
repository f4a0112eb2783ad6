// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/lesson"
)

/*
TestDeepSeekClient_Generate tests a successful completion round-trip,
including the wire format the provider expects.
*/
func TestDeepSeekClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/chat/completions", request.URL.Path)
		assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "deepseek-chat", payload["model"])
		assert.Equal(t, 0.7, payload["temperature"])
		assert.Equal(t, float64(2000), payload["max_tokens"])
		assert.Equal(t, false, payload["stream"])

		messages, ok := payload["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)

		_, _ = writer.Write([]byte(`{
			"choices": [{"message": {"content": "# Lernziele\n..."}}]
		}`))
	}))
	defer server.Close()

	client := lesson.NewDeepSeekClient(server.URL, "test-key", server.Client())

	content, err := client.Generate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "# Lernziele\n...", content)
}

/*
TestDeepSeekClient_Generate_AuthenticationError verifies the distinct
sentinel for rejected API keys.
*/
func TestDeepSeekClient_Generate_AuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid key"}}`))
	}))
	defer server.Close()

	client := lesson.NewDeepSeekClient(server.URL, "bad-key", server.Client())

	_, err := client.Generate(context.Background(), "system", "user")
	assert.ErrorIs(t, err, lesson.ErrAuthentication)
}

/*
TestDeepSeekClient_Generate_UpstreamError verifies non-auth failures carry
the upstream type and message for the logs.
*/
func TestDeepSeekClient_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTooManyRequests)
		_, _ = writer.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer server.Close()

	client := lesson.NewDeepSeekClient(server.URL, "test-key", server.Client())

	_, err := client.Generate(context.Background(), "system", "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, lesson.ErrAuthentication)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

/*
TestDeepSeekClient_Generate_EmptyCompletion verifies a well-formed but empty
response maps to the empty-completion sentinel.
*/
func TestDeepSeekClient_Generate_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := lesson.NewDeepSeekClient(server.URL, "test-key", server.Client())

	_, err := client.Generate(context.Background(), "system", "user")
	assert.ErrorIs(t, err, lesson.ErrEmptyCompletion)
}
