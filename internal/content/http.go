// Copyright (c) 2026 TeachyAI. All rights reserved.

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/middleware"
	requestutil "github.com/teachyai/teachy/internal/platform/request"
	"github.com/teachyai/teachy/internal/platform/respond"
	"github.com/teachyai/teachy/internal/platform/sec"
	"github.com/teachyai/teachy/internal/platform/validate"
	"github.com/teachyai/teachy/pkg/pagination"
)

// # HTTP Layer

// Handler exposes the catalogue over REST endpoints.
type Handler struct {
	service *Service
}

// NewHandler wires the catalogue handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the catalogue router.
//
// Reads are public so the app can browse without an account; writes require
// the editor role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public browsing endpoints
	router.Get("/{category}", handler.list)
	router.Get("/{category}/slug/{slug}", handler.getBySlug)
	router.Get("/item/{itemID}", handler.get)

	// Editorial endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleEditor))
		r.Post("/", handler.create)
		r.Patch("/item/{itemID}", handler.update)
		r.Delete("/item/{itemID}", handler.remove)
	})

	return router
}

// # Read Endpoints

/*
list handles GET /{category}.

Description: Returns a paginated page of a browsing tab, optionally filtered
by content kind ("type" query parameter) or parent series ("parent").
*/
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	category := Category(requestutil.Param(httpRequest, FieldCategory))
	if !category.Valid() {
		respond.Error(writer, httpRequest, apperr.NotFound("category"))
		return
	}

	filter := Filter{Category: category}

	// Optional kind filter, validated against the closed variant set
	if rawKind := httpRequest.URL.Query().Get("type"); rawKind != "" {
		kind := Kind(rawKind)
		if !kind.Valid() {
			validator := &validate.Validator{}
			validator.OneOf(FieldKind, rawKind, KindNames()...)
			respond.Error(writer, httpRequest, validator.Err())
			return
		}
		filter.Kind = kind
	}

	// Optional parent filter selects episodes of a series
	if parent := httpRequest.URL.Query().Get("parent"); parent != "" {
		filter.ParentID = &parent
	}

	params := pagination.FromRequest(httpRequest)

	items, total, err := handler.service.List(httpRequest.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if items == nil {
		items = []*Item{}
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get handles GET /item/{itemID}.
*/
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	id := requestutil.ID(httpRequest, FieldItemID)

	item, err := handler.service.Get(httpRequest.Context(), id)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, item)
}

/*
getBySlug handles GET /{category}/slug/{slug}.
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	category := Category(requestutil.Param(httpRequest, FieldCategory))
	if !category.Valid() {
		respond.Error(writer, httpRequest, apperr.NotFound("category"))
		return
	}

	item, err := handler.service.GetBySlug(httpRequest.Context(), category, requestutil.Param(httpRequest, "slug"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, item)
}

// # Editorial Endpoints

// createRequest is the payload for POST /.
type createRequest struct {
	Category    string  `json:"category"`
	Kind        string  `json:"content_type"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Text        string  `json:"text"`
	ImageURL    *string `json:"image_url"`
	FileURL     *string `json:"file_url"`
	VideoURL    *string `json:"video_url"`
	ExternalURL *string `json:"external_url"`
	ParentID    *string `json:"parent_id"`
	Position    int     `json:"order_position"`
}

/*
create handles POST /.

Description: Validates the category and the kind tag once at this boundary;
everything past it works with the typed variants.
*/
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(httpRequest, &body); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// Boundary validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, body.Title)
	validator.MaxLen(FieldTitle, body.Title, 200)
	validator.OneOf(FieldCategory, body.Category, string(CategoryLieblingslehrer), string(CategoryFinanzlehrer))
	validator.OneOf(FieldKind, body.Kind, KindNames()...)
	if body.Slug != "" {
		validator.Slug("slug", body.Slug)
	}
	if body.ParentID != nil {
		validator.UUID(FieldParentID, *body.ParentID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	item, err := handler.service.Create(httpRequest.Context(), CreateInput{
		Category:    Category(body.Category),
		Kind:        Kind(body.Kind),
		Title:       body.Title,
		Slug:        body.Slug,
		Text:        body.Text,
		ImageURL:    body.ImageURL,
		FileURL:     body.FileURL,
		VideoURL:    body.VideoURL,
		ExternalURL: body.ExternalURL,
		ParentID:    body.ParentID,
		Position:    body.Position,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, item)
}

// updateRequest is the payload for PATCH /item/{itemID}; nil fields are
// left unchanged.
type updateRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Text        *string `json:"text"`
	ImageURL    *string `json:"image_url"`
	FileURL     *string `json:"file_url"`
	VideoURL    *string `json:"video_url"`
	ExternalURL *string `json:"external_url"`
	ParentID    *string `json:"parent_id"`
	Position    *int    `json:"order_position"`
	Kind        *string `json:"content_type"`
}

/*
update handles PATCH /item/{itemID}.
*/
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	id := requestutil.ID(httpRequest, FieldItemID)

	var body updateRequest
	if err := requestutil.DecodeJSON(httpRequest, &body); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	validator := &validate.Validator{}
	if body.Title != nil {
		validator.Required(FieldTitle, *body.Title)
		validator.MaxLen(FieldTitle, *body.Title, 200)
	}
	if body.Slug != nil {
		validator.Slug("slug", *body.Slug)
	}
	if body.Kind != nil {
		validator.OneOf(FieldKind, *body.Kind, KindNames()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	input := UpdateInput{
		Title:       body.Title,
		Slug:        body.Slug,
		Text:        body.Text,
		ImageURL:    body.ImageURL,
		FileURL:     body.FileURL,
		VideoURL:    body.VideoURL,
		ExternalURL: body.ExternalURL,
		ParentID:    body.ParentID,
		Position:    body.Position,
	}
	if body.Kind != nil {
		kind := Kind(*body.Kind)
		input.Kind = &kind
	}

	item, err := handler.service.Update(httpRequest.Context(), id, input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, item)
}

/*
remove handles DELETE /item/{itemID}.
*/
func (handler *Handler) remove(writer http.ResponseWriter, httpRequest *http.Request) {
	id := requestutil.ID(httpRequest, FieldItemID)

	if err := handler.service.Delete(httpRequest.Context(), id); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}
