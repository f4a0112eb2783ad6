// Copyright (c) 2026 TeachyAI. All rights reserved.

// HTTP delivery layer for profile management and account erasure.
//
// All routes require authentication; the acting user is always resolved from
// the JWT claims, never from the payload.
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/teachyai/teachy/internal/platform/request"
	"github.com/teachyai/teachy/internal/platform/respond"
	"github.com/teachyai/teachy/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements account-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET    /profile : Returns the caller's profile.
//   - PATCH  /profile : Partially updates the caller's profile.
//   - DELETE /profile : Removes only the profile row (phase one of erasure).
//   - DELETE /        : Permanently erases the whole account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/profile", handler.getProfile)
	router.Patch("/profile", handler.updateProfile)
	router.Delete("/profile", handler.deleteProfile)
	router.Delete("/", handler.deleteAccount)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	School          *string  `json:"school"`
	Subjects        []string `json:"subjects"`
	FederalState    *string  `json:"federal_state"`
	ExperienceYears *int     `json:"experience_years"`
	Challenge       *string  `json:"challenge"`
	Job             *string  `json:"job"`
}

/*
GetProfile returns the authenticated teacher's profile.

GET /api/v1/account/profile

Response:
  - 200: Profile
  - 404: ErrNotFound: Profile row missing
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
UpdateProfile partially updates the authenticated teacher's profile.

PATCH /api/v1/account/profile

Request:
  - Body: updateProfileRequest (all fields optional)

Response:
  - 200: Profile: Updated state
  - 400: ErrInvalidJSON: Malformed payload or validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.FirstName != nil {
		v.MaxLen(FieldFirstName, *input.FirstName, 100)
	}
	if input.LastName != nil {
		v.MaxLen(FieldLastName, *input.LastName, 100)
	}
	if input.ExperienceYears != nil {
		v.Range(FieldExperienceYears, *input.ExperienceYears, 0, 60)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		School:          input.School,
		Subjects:        input.Subjects,
		FederalState:    input.FederalState,
		ExperienceYears: input.ExperienceYears,
		Challenge:       input.Challenge,
		Job:             input.Job,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DeleteProfile removes only the profile row.

DELETE /api/v1/account/profile

Description: Phase one of client-driven account erasure. The account row and
its sessions survive this call.

Response:
  - 204: No Content: Profile removed
  - 404: ErrNotFound: Profile already gone
*/
func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteProfile(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DeleteAccount permanently erases the authenticated account.

DELETE /api/v1/account

Description: Removes the profile row (if still present), then the account
row, then revokes every session. Not reversible.

Response:
  - 204: No Content: Account erased
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
