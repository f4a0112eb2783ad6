// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// # Generation Provider

// Generator produces a lesson plan from a rendered prompt pair.
type Generator interface {
	Generate(context context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider error sentinels. The service maps these to stable application
// errors; raw upstream messages never reach API clients.
var (
	// ErrAuthentication signals a rejected API key.
	ErrAuthentication = errors.New("deepseek: invalid api key")

	// ErrEmptyCompletion signals a well-formed response without content.
	ErrEmptyCompletion = errors.New("deepseek: empty completion")
)

const (
	defaultModel       = "deepseek-chat"
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultHTTPTimeout = 60 * time.Second
)

// DeepSeekClient implements [Generator] against the DeepSeek chat
// completions API.
type DeepSeekClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewDeepSeekClient constructs a DeepSeek API client.
//
// An httpClient of nil selects a default client with a generation-sized
// timeout; callers inject their own for tests.
func NewDeepSeekClient(baseURL, apiKey string, httpClient *http.Client) *DeepSeekClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &DeepSeekClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// # Wire Types

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

/*
Generate calls the chat completions endpoint and returns the completion text.

Description: Sends a single non-streaming request. There is no retry here;
the user explicitly re-triggers generation on failure, and duplicate
completions cost real money.

Parameters:
  - context: context.Context bounding the upstream call
  - systemPrompt, userPrompt: rendered prompt pair

Returns:
  - string: The completion content
  - error: ErrAuthentication for rejected keys, otherwise a wrapped upstream error
*/
func (client *DeepSeekClient) Generate(context context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: defaultModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("deepseek_marshal_request_failed: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(context, http.MethodPost,
		client.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("deepseek_build_request_failed: %w", err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+client.apiKey)

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("deepseek_request_failed: %w", err)
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(httpResponse.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("deepseek_read_response_failed: %w", err)
	}

	// Upstream error mapping
	if httpResponse.StatusCode != http.StatusOK {
		var apiError apiErrorResponse
		_ = json.Unmarshal(responseBody, &apiError)

		if apiError.Error.Type == "authentication_error" {
			return "", ErrAuthentication
		}

		return "", fmt.Errorf("deepseek_api_error: status=%d type=%q message=%q",
			httpResponse.StatusCode, apiError.Error.Type, apiError.Error.Message)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(responseBody, &completion); err != nil {
		return "", fmt.Errorf("deepseek_decode_response_failed: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}
