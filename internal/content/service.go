// Copyright (c) 2026 TeachyAI. All rights reserved.

package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/pkg/slug"
	"github.com/teachyai/teachy/pkg/uuid"
)

// # Service Layer

// Service orchestrates catalogue reads for the app and writes for editors.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService wires the catalogue service with its storage dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
List returns a page of catalogue items for a browsing tab.

Description: The filter's category has already been validated at the HTTP
boundary; storage treats it as opaque.

Parameters:
  - context: context.Context
  - filter: Filter (validated category, optional kind and parent)
  - limit, offset: pagination bounds

Returns:
  - []*Item: The matching page
  - int: Total matching items
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	items, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("content_service_list_failed: %w", err)
	}

	return items, total, nil
}

/*
Get returns a single item by its identifier.
*/
func (service *Service) Get(context context.Context, id string) (*Item, error) {
	item, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("content_service_get_failed: %w", err)
	}

	return item, nil
}

/*
GetBySlug returns a single item addressed by its category-scoped slug.
*/
func (service *Service) GetBySlug(context context.Context, category Category, itemSlug string) (*Item, error) {
	item, err := service.repository.FindBySlug(context, category, itemSlug)
	if err != nil {
		return nil, fmt.Errorf("content_service_get_by_slug_failed: %w", err)
	}

	return item, nil
}

// CreateInput carries the editorial fields for a new catalogue item.
//
// Category and Kind arrive pre-validated from the HTTP boundary; the slug is
// derived from the title unless the editor supplies one.
type CreateInput struct {
	Category    Category
	Kind        Kind
	Title       string
	Slug        string
	Text        string
	ImageURL    *string
	FileURL     *string
	VideoURL    *string
	ExternalURL *string
	ParentID    *string
	Position    int
}

/*
Create persists a new catalogue item.

Description: Derives the URL slug from the title when absent and verifies
that an explicit parent exists before linking, so the catalogue never holds
dangling series references.

Returns:
  - *Item: The persisted entity
  - error: apperr.Unprocessable for a missing parent, storage errors otherwise
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Item, error) {

	// Slug derivation
	itemSlug := input.Slug
	if itemSlug == "" {
		itemSlug = slug.From(input.Title)
	}

	// Parent existence check
	if input.ParentID != nil {
		if _, err := service.repository.FindByID(context, *input.ParentID); err != nil {
			if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
				return nil, apperr.Unprocessable("parent item does not exist")
			}
			return nil, fmt.Errorf("content_service_create_parent_check_failed: %w", err)
		}
	}

	item := &Item{
		ID:          uuid.Must(),
		Category:    input.Category,
		Kind:        input.Kind,
		Title:       input.Title,
		Slug:        itemSlug,
		Text:        input.Text,
		ImageURL:    input.ImageURL,
		FileURL:     input.FileURL,
		VideoURL:    input.VideoURL,
		ExternalURL: input.ExternalURL,
		ParentID:    input.ParentID,
		Position:    input.Position,
	}

	if err := service.repository.Create(context, item); err != nil {
		return nil, fmt.Errorf("content_service_create_failed: %w", err)
	}

	service.logger.Info("content item created",
		slog.String("item_id", item.ID),
		slog.String("category", string(item.Category)),
		slog.String("content_type", string(item.Kind)),
	)

	return item, nil
}

// UpdateInput carries partial editorial changes; nil pointers leave the
// current value untouched.
type UpdateInput struct {
	Title       *string
	Slug        *string
	Text        *string
	ImageURL    *string
	FileURL     *string
	VideoURL    *string
	ExternalURL *string
	ParentID    *string
	Position    *int
	Kind        *Kind
}

/*
Update applies partial editorial changes to an existing item.

Description: Loads the current row, overlays the provided fields, and writes
the merged entity back.
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Item, error) {
	item, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("content_service_update_load_failed: %w", err)
	}

	// Field overlay
	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Slug != nil {
		item.Slug = *input.Slug
	}
	if input.Text != nil {
		item.Text = *input.Text
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.FileURL != nil {
		item.FileURL = input.FileURL
	}
	if input.VideoURL != nil {
		item.VideoURL = input.VideoURL
	}
	if input.ExternalURL != nil {
		item.ExternalURL = input.ExternalURL
	}
	if input.ParentID != nil {
		item.ParentID = input.ParentID
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	if input.Kind != nil {
		item.Kind = *input.Kind
	}

	if err := service.repository.Update(context, item); err != nil {
		return nil, fmt.Errorf("content_service_update_failed: %w", err)
	}

	return item, nil
}

/*
Delete removes an item from the catalogue.
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("content_service_delete_failed: %w", err)
	}

	service.logger.Info("content item deleted", slog.String("item_id", id))
	return nil
}
