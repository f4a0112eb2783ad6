// Copyright (c) 2026 TeachyAI. All rights reserved.

package client

import "sync"

// # Onboarding Draft

// Draft accumulates onboarding questionnaire answers before sign-up.
//
// All three fields are optional free-form strings; setters replace only
// their own field and may run in any order. The draft is safe for
// concurrent use.
type Draft struct {
	mu        sync.Mutex
	challenge string
	job       string
	subjects  string
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// SetChallenge records what the teacher wants help with.
func (draft *Draft) SetChallenge(challenge string) {
	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.challenge = challenge
}

// SetJob records the teacher's job role.
func (draft *Draft) SetJob(job string) {
	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.job = job
}

// SetSubjects records the subjects taught, comma-joined.
func (draft *Draft) SetSubjects(subjects string) {
	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.subjects = subjects
}

// Reset restores the initial empty state. Used when the user abandons
// onboarding and starts over.
func (draft *Draft) Reset() {
	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.challenge = ""
	draft.job = ""
	draft.subjects = ""
}

// Snapshot returns an immutable copy of the current answers, in the shape
// the sign-up payload consumes verbatim.
func (draft *Draft) Snapshot() Metadata {
	draft.mu.Lock()
	defer draft.mu.Unlock()
	return Metadata{
		Challenge: draft.challenge,
		Job:       draft.job,
		Subjects:  draft.subjects,
	}
}
