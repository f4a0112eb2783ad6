// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import "context"

// Repository defines the persistence contract for lesson plans.
type Repository interface {
	// Create persists a newly generated plan.
	Create(context context.Context, plan *Plan) error

	// FindByID returns a single plan or apperr.NotFound.
	FindByID(context context.Context, id string) (*Plan, error)

	// ListByUser returns a page of the user's plans, newest first, with the
	// total count.
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Plan, int, error)

	// Update overwrites a plan's mutable fields (title, content, visibility).
	Update(context context.Context, plan *Plan) error

	// Delete removes a plan.
	Delete(context context.Context, id string) error

	// DeleteByUser removes all plans owned by a user. Used by account removal.
	DeleteByUser(context context.Context, userID string) error
}
