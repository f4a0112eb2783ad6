// Copyright (c) 2026 TeachyAI. All rights reserved.

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teachyai/teachy/internal/content"
)

/*
TestKind_Valid verifies the closed variant set.
*/
func TestKind_Valid(t *testing.T) {
	valid := []content.Kind{
		content.KindNews,
		content.KindPodcastLehrer,
		content.KindPodcastFinanz,
		content.KindGuide,
		content.KindEbook,
		content.KindContest,
		content.KindCalculator,
		content.KindTutorial,
		content.KindCalendly,
	}

	for _, kind := range valid {
		assert.True(t, kind.Valid(), "kind %q", kind)
	}

	for _, kind := range []content.Kind{"", "podcast", "News", "video"} {
		assert.False(t, kind.Valid(), "kind %q", kind)
	}
}

/*
TestCategory_Valid verifies the two browsing tabs.
*/
func TestCategory_Valid(t *testing.T) {
	assert.True(t, content.CategoryLieblingslehrer.Valid())
	assert.True(t, content.CategoryFinanzlehrer.Valid())
	assert.False(t, content.Category("").Valid())
	assert.False(t, content.Category("Lieblingslehrer").Valid())
}

/*
TestKindNames verifies the validation-message helper covers every kind.
*/
func TestKindNames(t *testing.T) {
	names := content.KindNames()
	assert.Len(t, names, 9)
	assert.Contains(t, names, "podcast-lehrer")
	assert.Contains(t, names, "calendly")
}
