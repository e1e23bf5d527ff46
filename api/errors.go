package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
	// ErrNoLLM is returned when a judge is used without an LLM generator
	ErrNoLLM = errors.New("LLM generator is required")
	// ErrNoEmbedder is returned when an audit is used without an embedder
	ErrNoEmbedder = errors.New("embedder is required")
	// ErrNoModerationProvider is returned when screening is used without a provider
	ErrNoModerationProvider = errors.New("moderation provider is required")
)

// MalformedTaxonomyError reports a structurally inconsistent taxonomy spec.
// It is fatal: no scoring may run against a taxonomy that failed to load.
type MalformedTaxonomyError struct {
	Reason string
	TagID  string
}

func (e *MalformedTaxonomyError) Error() string {
	return fmt.Sprintf("malformed taxonomy: %s (tag %q)", e.Reason, e.TagID)
}

// EmptyCaseError reports a case with no questions. It is fatal for the case
// but never for the batch: ScoreAll records it as a failure and moves on.
type EmptyCaseError struct {
	CaseID string
}

func (e *EmptyCaseError) Error() string {
	return fmt.Sprintf("case %q has no questions", e.CaseID)
}

// UnknownTagError reports a case referencing a level-2 tag absent from the
// loaded taxonomy.
type UnknownTagError struct {
	CaseID string
	Tag    string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("case %q references unknown tag %q", e.CaseID, e.Tag)
}

// EmptyGroupError reports taxonomy tags with no associated cases when a
// strict report was requested.
type EmptyGroupError struct {
	Tags []string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no cases for taxonomy tags: %s", strings.Join(e.Tags, ", "))
}

// TrackMismatchError reports case ids present in one judging track but not
// the other. Both slices are sorted.
type TrackMismatchError struct {
	MissingFromUni []string
	MissingFromGen []string
}

func (e *TrackMismatchError) Error() string {
	var parts []string
	if len(e.MissingFromUni) > 0 {
		parts = append(parts, fmt.Sprintf("missing from uni track: %s", strings.Join(e.MissingFromUni, ", ")))
	}
	if len(e.MissingFromGen) > 0 {
		parts = append(parts, fmt.Sprintf("missing from gen track: %s", strings.Join(e.MissingFromGen, ", ")))
	}
	return "track mismatch: " + strings.Join(parts, "; ")
}
