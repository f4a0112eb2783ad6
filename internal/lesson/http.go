// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teachyai/teachy/internal/platform/middleware"
	requestutil "github.com/teachyai/teachy/internal/platform/request"
	"github.com/teachyai/teachy/internal/platform/respond"
	"github.com/teachyai/teachy/internal/platform/validate"
	"github.com/teachyai/teachy/pkg/pagination"
)

// # HTTP Layer

// Handler exposes lesson plan generation and management over REST.
type Handler struct {
	service *Service
}

// NewHandler wires the lesson handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the lesson router. Every endpoint requires a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/generate", handler.generate)
	router.Get("/", handler.list)
	router.Get("/{planID}", handler.get)
	router.Patch("/{planID}", handler.update)
	router.Delete("/{planID}", handler.remove)

	return router
}

// generateRequest is the payload for POST /generate.
type generateRequest struct {
	GradeLevel         string   `json:"grade_level"`
	Subject            string   `json:"subject"`
	Duration           string   `json:"duration"`
	Topic              string   `json:"topic"`
	LearningObjectives string   `json:"learning_objectives"`
	TeachingMethods    []string `json:"teaching_methods"`
}

/*
generate handles POST /generate.

Description: Validates the structured form input and triggers a single
provider call. This endpoint is slow by nature; the server's write timeout
is sized for it.
*/
func (handler *Handler) generate(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var body generateRequest
	if err := requestutil.DecodeJSON(httpRequest, &body); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldGradeLevel, body.GradeLevel)
	validator.MaxLen(FieldGradeLevel, body.GradeLevel, 50)
	validator.Required(FieldSubject, body.Subject)
	validator.MaxLen(FieldSubject, body.Subject, 100)
	validator.Required(FieldDuration, body.Duration)
	validator.MaxLen(FieldDuration, body.Duration, 50)
	validator.MaxLen(FieldTopic, body.Topic, 200)
	validator.MaxLen(FieldLearningObjectives, body.LearningObjectives, 1000)
	validator.Custom(FieldTeachingMethods, len(body.TeachingMethods) == 0, "At least one teaching method is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	plan, err := handler.service.Generate(httpRequest.Context(), userID, PlanRequest{
		GradeLevel:         body.GradeLevel,
		Subject:            body.Subject,
		Duration:           body.Duration,
		Topic:              body.Topic,
		LearningObjectives: body.LearningObjectives,
		TeachingMethods:    body.TeachingMethods,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, plan)
}

/*
list handles GET /.
*/
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	params := pagination.FromRequest(httpRequest)

	plans, total, err := handler.service.List(httpRequest.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if plans == nil {
		plans = []*Plan{}
	}

	respond.Paginated(writer, plans, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get handles GET /{planID}.
*/
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	plan, err := handler.service.Get(httpRequest.Context(), userID, requestutil.ID(httpRequest, FieldPlanID))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, plan)
}

// updatePlanRequest is the payload for PATCH /{planID}; nil fields are left
// unchanged.
type updatePlanRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

/*
update handles PATCH /{planID}.
*/
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var body updatePlanRequest
	if err := requestutil.DecodeJSON(httpRequest, &body); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	validator := &validate.Validator{}
	if body.Title != nil {
		validator.Required(FieldTitle, *body.Title)
		validator.MaxLen(FieldTitle, *body.Title, 200)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	plan, err := handler.service.Update(httpRequest.Context(), userID, requestutil.ID(httpRequest, FieldPlanID), UpdateInput{
		Title:    body.Title,
		Content:  body.Content,
		IsPublic: body.IsPublic,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, plan)
}

/*
remove handles DELETE /{planID}.
*/
func (handler *Handler) remove(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if err := handler.service.Delete(httpRequest.Context(), userID, requestutil.ID(httpRequest, FieldPlanID)); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}
