// Copyright (c) 2026 TeachyAI. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows_maps_to_not_found", pgx.ErrNoRows, "NOT_FOUND"},
		{"wrapped_no_rows_maps_to_not_found", fmt.Errorf("scan: %w", pgx.ErrNoRows), "NOT_FOUND"},
		{"unknown_error_maps_to_internal", errors.New("connection reset"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "find_row")

			appError := apperr.As(wrapped)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
		})
	}
}

func TestWrap_NilPassesThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
