// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package content manages the editorial catalogue shown in the app's browsing
tabs: news posts, podcast episodes, guides, ebooks, and the other item kinds.

# Core Responsibility

  - Taxonomy: Two fixed categories (one per app tab) and a closed set of item
    kinds, validated once at the API boundary.
  - Hierarchy: Items may nest under a parent (podcast series → episodes).
  - Ordering: Manual ordering via a position column, curated by editors.
*/
package content

import "time"

// # Categories

// Category identifies which browsing tab an item belongs to.
type Category string

const (
	// CategoryLieblingslehrer is the general teaching content tab.
	CategoryLieblingslehrer Category = "lieblingslehrer"

	// CategoryFinanzlehrer is the financial-education content tab.
	CategoryFinanzlehrer Category = "finanzlehrer"
)

// Valid reports whether the category is one of the known tabs.
func (c Category) Valid() bool {
	return c == CategoryLieblingslehrer || c == CategoryFinanzlehrer
}

// # Item Kinds

// Kind is the tagged variant discriminator for content items.
//
// Each kind renders differently in the app (audio player, article view,
// external link, embedded calculator). The server validates the tag once at
// the boundary; storage and transport treat items uniformly.
type Kind string

const (
	KindNews          Kind = "news"
	KindPodcastLehrer Kind = "podcast-lehrer"
	KindPodcastFinanz Kind = "podcast-finanz"
	KindGuide         Kind = "guide"
	KindEbook         Kind = "ebook"
	KindContest       Kind = "contest"
	KindCalculator    Kind = "calculator"
	KindTutorial      Kind = "tutorial"
	KindCalendly      Kind = "calendly"
)

// allKinds is the closed set used for validation and OneOf messages.
var allKinds = []Kind{
	KindNews,
	KindPodcastLehrer,
	KindPodcastFinanz,
	KindGuide,
	KindEbook,
	KindContest,
	KindCalculator,
	KindTutorial,
	KindCalendly,
}

// Valid reports whether the kind is part of the closed variant set.
func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// KindNames returns the kind identifiers as plain strings, for validation messages.
func KindNames() []string {
	names := make([]string, len(allKinds))
	for i, k := range allKinds {
		names[i] = string(k)
	}
	return names
}

// # Domain Entities

// Item is a single piece of editorial content.
//
// The URL columns are kind-dependent: podcasts carry FileURL (audio),
// tutorials carry VideoURL, calculators and calendly items carry ExternalURL.
// Unused columns stay null rather than empty so clients can dispatch on
// presence.
type Item struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Kind        Kind      `json:"content_type"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Text        string    `json:"text"`
	ImageURL    *string   `json:"image_url"`
	FileURL     *string   `json:"file_url"`
	VideoURL    *string   `json:"video_url"`
	ExternalURL *string   `json:"external_url"`
	ParentID    *string   `json:"parent_id"`
	Position    int       `json:"order_position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter holds the parameters for a catalogue listing.
type Filter struct {
	Category Category
	Kind     Kind    // optional; zero value means all kinds
	ParentID *string // optional; selects children of a series
}

// # Field Identifiers

const (
	FieldCategory    = "category"
	FieldKind        = "content_type"
	FieldTitle       = "title"
	FieldText        = "text"
	FieldImageURL    = "image_url"
	FieldFileURL     = "file_url"
	FieldVideoURL    = "video_url"
	FieldExternalURL = "external_url"
	FieldParentID    = "parent_id"
	FieldPosition    = "order_position"
	FieldItemID      = "itemID"
)
