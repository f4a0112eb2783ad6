// Copyright (c) 2026 TeachyAI. All rights reserved.

package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/database/schema"
	"github.com/teachyai/teachy/internal/platform/dberr"
)

// # PostgreSQL Repository

// itemRepository implements the [Repository] interface using pgx.
type itemRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed catalogue store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &itemRepository{pool: pool}
}

// selectColumns is the shared projection for item hydration.
func selectColumns() string {
	t := schema.ContentItem
	return strings.Join([]string{
		t.ID, t.Category, t.Kind, t.Title, t.Slug, t.Text,
		t.ImageURL, t.FileURL, t.VideoURL, t.ExternalURL,
		t.ParentID, t.Position, t.CreatedAt, t.UpdatedAt,
	}, ", ")
}

// scanItem hydrates one row into an Item entity.
func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	var item Item
	targets := []any{
		&item.ID, &item.Category, &item.Kind, &item.Title, &item.Slug, &item.Text,
		&item.ImageURL, &item.FileURL, &item.VideoURL, &item.ExternalURL,
		&item.ParentID, &item.Position, &item.CreatedAt, &item.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &item, nil
}

/*
List retrieves a page of catalogue items for a browsing tab.

Description: Applies the optional kind and parent filters, orders by the
curated position column, and uses a COUNT window function so the total
arrives in the same round-trip.

Parameters:
  - context: context.Context
  - filter: Filter (category required, kind and parent optional)
  - limit, offset: pagination bounds

Returns:
  - []*Item: The matching page
  - int: Total matching items
*/
func (repository *itemRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	t := schema.ContentItem

	// Query construction
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
	`, selectColumns(), t.Table, t.Category))
	args = append(args, filter.Category)
	argID++

	// Kind filter injection
	if filter.Kind != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.Kind, argID))
		args = append(args, filter.Kind)
		argID++
	}

	// Parent filter: explicit parent selects episodes of a series,
	// absence selects top-level items only.
	if filter.ParentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.ParentID, argID))
		args = append(args, *filter.ParentID)
		argID++
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s IS NULL", t.ParentID))
	}

	// Curated ordering and pagination limits
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC, %s DESC", t.Position, t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_content_list_failed: %w", err)
	}
	defer rows.Close()

	// Row iteration and entity hydration
	var items []*Item
	var totalCount int

	for rows.Next() {
		item, err := scanItem(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_content_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	return items, totalCount, nil
}

/*
FindByID returns a single catalogue item.

Returns:
  - *Item: The hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *itemRepository) FindByID(context context.Context, id string) (*Item, error) {
	t := schema.ContentItem

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), t.Table, t.ID)

	item, err := scanItem(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_item_by_id")
	}

	return item, nil
}

/*
FindBySlug returns a single item addressed by its category-scoped slug.
*/
func (repository *itemRepository) FindBySlug(context context.Context, category Category, slug string) (*Item, error) {
	t := schema.ContentItem

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns(), t.Table, t.Category, t.Slug)

	item, err := scanItem(repository.pool.QueryRow(context, query, category, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_item_by_slug")
	}

	return item, nil
}

/*
Create persists a new catalogue item.

Description: Timestamps are initialized here so callers only supply
editorial fields.
*/
func (repository *itemRepository) Create(context context.Context, item *Item) error {
	t := schema.ContentItem

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s,
			%s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.Table,
		t.ID, t.Category, t.Kind, t.Title, t.Slug, t.Text,
		t.ImageURL, t.FileURL, t.VideoURL, t.ExternalURL,
		t.ParentID, t.Position, t.CreatedAt, t.UpdatedAt,
	)

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		item.ID,
		item.Category,
		item.Kind,
		item.Title,
		item.Slug,
		item.Text,
		item.ImageURL,
		item.FileURL,
		item.VideoURL,
		item.ExternalURL,
		item.ParentID,
		item.Position,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_content_create_failed: %w", err)
	}

	return nil
}

/*
Update overwrites the editorial fields of an existing item.

Returns:
  - error: apperr.NotFound if targeting a missing row
*/
func (repository *itemRepository) Update(context context.Context, item *Item) error {
	t := schema.ContentItem

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = $9, %s = $10,
			%s = NOW()
		WHERE %s = $11`,
		t.Table,
		t.Title, t.Slug, t.Text, t.ImageURL, t.FileURL,
		t.VideoURL, t.ExternalURL, t.ParentID, t.Position, t.Kind,
		t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		item.Title,
		item.Slug,
		item.Text,
		item.ImageURL,
		item.FileURL,
		item.VideoURL,
		item.ExternalURL,
		item.ParentID,
		item.Position,
		item.Kind,
		item.ID,
	)

	if err != nil {
		return fmt.Errorf("postgres_content_update_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("content item")
	}

	return nil
}

/*
Delete removes an item and detaches any children.

Description: Episode rows referencing the removed series keep existing with
a null parent, so editorial mistakes never cascade into data loss.
*/
func (repository *itemRepository) Delete(context context.Context, id string) error {
	t := schema.ContentItem

	// Detach children first
	detach := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`, t.Table, t.ParentID, t.ParentID)
	if _, err := repository.pool.Exec(context, detach, id); err != nil {
		return fmt.Errorf("postgres_content_detach_children_failed: %w", err)
	}

	// Remove the item itself
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)
	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_content_delete_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("content item")
	}

	return nil
}
