// Copyright (c) 2026 TeachyAI. All rights reserved.

package content

import "context"

// Repository defines the persistence contract for catalogue items.
type Repository interface {
	// List returns a page of items matching the filter, ordered by the
	// curated position column, together with the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error)

	// FindByID returns a single item or apperr.NotFound.
	FindByID(context context.Context, id string) (*Item, error)

	// FindBySlug returns a single item within a category or apperr.NotFound.
	FindBySlug(context context.Context, category Category, slug string) (*Item, error)

	// Create persists a new item.
	Create(context context.Context, item *Item) error

	// Update overwrites an existing item's editorial fields.
	Update(context context.Context, item *Item) error

	// Delete removes an item. Children of a removed series are detached,
	// not deleted.
	Delete(context context.Context, id string) error
}
