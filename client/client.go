// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package client is the Go SDK for the TeachyAI API.

# Core Responsibility

  - Transport: A thin typed HTTP client over the REST API, decoding the
    server's response envelopes into Go values and typed errors.
  - Session: A [SessionStore] that owns the device's single session slot,
    exposes an auth state machine, and notifies subscribers on transitions.
  - Onboarding: A [Draft] accumulating questionnaire answers before sign-up.

# Error Taxonomy

Transport-level problems surface as wrapped network errors. API rejections
surface as [*APIError]; the common cases carry sentinel errors so callers can
branch with errors.Is: [ErrInvalidCredentials], [ErrEmailNotConfirmed].
*/
package client

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

// # Errors

// Sentinel errors for the API rejections callers branch on.
var (
	// ErrInvalidCredentials signals a rejected login (unknown identifier or
	// wrong password; the server does not distinguish).
	ErrInvalidCredentials = errors.New("client: invalid credentials")

	// ErrEmailNotConfirmed signals a login attempt on an account that has
	// not completed OTP verification.
	ErrEmailNotConfirmed = errors.New("client: account not verified")
)

// APIError is a structured rejection from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is maps well-known API codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Code == "UNAUTHORIZED"
	case ErrEmailNotConfirmed:
		return e.Code == "EMAIL_NOT_CONFIRMED"
	}
	return false
}

// # Client

const defaultTimeout = 30 * time.Second

// Client talks to the TeachyAI REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client (tests, proxies).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// New constructs an API client for the given base URL, e.g.
// "https://api.teachy.app".
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// # Wire Types

// Metadata carries the onboarding answers attached to a sign-up.
type Metadata struct {
	Challenge string `json:"challenge,omitempty"`
	Job       string `json:"job,omitempty"`
	Subjects  string `json:"subjects,omitempty"`
}

// User is the public account representation returned by auth endpoints.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// Credentials is an issued session: the short-lived access token, the
// rotating refresh token, and the account it belongs to.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type registerPayload struct {
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Password string   `json:"password"`
	Metadata Metadata `json:"metadata"`
}

type loginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

// # Operations

/*
Register creates a new account.

Description: Exactly one of email or phone must be set; phone values must
already be normalized (the SessionStore does this). Phone accounts start
unverified and receive an OTP out of band.
*/
func (client *Client) Register(context context.Context, email, phone, password string, metadata Metadata) (*User, error) {
	payload := registerPayload{Email: email, Phone: phone, Password: password, Metadata: metadata}

	var user User
	if err := client.do(context, http.MethodPost, "/api/v1/auth/register", "", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

/*
Login exchanges an identifier and password for session credentials.

Returns:
  - *Credentials: Access and refresh tokens plus the account
  - error: ErrInvalidCredentials, ErrEmailNotConfirmed, or transport errors
*/
func (client *Client) Login(context context.Context, identifier, password string) (*Credentials, error) {
	payload := loginPayload{Identifier: identifier, Password: password}

	var credentials Credentials
	if err := client.do(context, http.MethodPost, "/api/v1/auth/login", "", payload, &credentials); err != nil {
		return nil, err
	}
	return &credentials, nil
}

/*
Refresh rotates a refresh token into a fresh credential pair.
*/
func (client *Client) Refresh(context context.Context, refreshToken string) (*Credentials, error) {
	httpRequest, err := client.newRequest(context, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("X-Refresh-Token", refreshToken)

	var credentials Credentials
	if err := client.send(httpRequest, &credentials); err != nil {
		return nil, err
	}
	return &credentials, nil
}

/*
Logout revokes the current session server-side. Idempotent.
*/
func (client *Client) Logout(context context.Context, accessToken string) error {
	return client.do(context, http.MethodPost, "/api/v1/auth/logout", accessToken, nil, nil)
}

/*
DeleteProfile removes only the profile row. First phase of account deletion.
*/
func (client *Client) DeleteProfile(context context.Context, accessToken string) error {
	return client.do(context, http.MethodDelete, "/api/v1/account/profile", accessToken, nil, nil)
}

/*
DeleteAccount removes the account row. Second phase of account deletion;
callers must have deleted the profile first.
*/
func (client *Client) DeleteAccount(context context.Context, accessToken string) error {
	return client.do(context, http.MethodDelete, "/api/v1/account", accessToken, nil, nil)
}

// # Transport Plumbing

// do runs a request/response cycle against a JSON endpoint.
func (client *Client) do(context context.Context, method, path, accessToken string, payload, target any) error {
	httpRequest, err := client.newRequest(context, method, path, accessToken, payload)
	if err != nil {
		return err
	}
	return client.send(httpRequest, target)
}

func (client *Client) newRequest(context context.Context, method, path, accessToken string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("client_marshal_failed: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(context, method, client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client_build_request_failed: %w", err)
	}

	if payload != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	httpRequest.Header.Set("Accept", "application/json")
	if accessToken != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return httpRequest, nil
}

// send executes the request and decodes the response envelope into target.
func (client *Client) send(httpRequest *http.Request, target any) error {
	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("client_request_failed: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode == http.StatusNoContent {
		return nil
	}

	responseBody, err := io.ReadAll(io.LimitReader(httpResponse.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("client_read_response_failed: %w", err)
	}

	var wrapped envelope
	if err := json.Unmarshal(responseBody, &wrapped); err != nil {
		return fmt.Errorf("client_decode_envelope_failed: status=%d: %w", httpResponse.StatusCode, err)
	}

	if httpResponse.StatusCode >= 400 {
		return &APIError{
			StatusCode: httpResponse.StatusCode,
			Code:       wrapped.Code,
			Message:    wrapped.Error,
		}
	}

	if target != nil && len(wrapped.Data) > 0 {
		if err := json.Unmarshal(wrapped.Data, target); err != nil {
			return fmt.Errorf("client_decode_data_failed: %w", err)
		}
	}

	return nil
}
