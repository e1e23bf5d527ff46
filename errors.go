package unieval

import "github.com/unieval-ai/unieval/api"

var (
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
	// ErrNoLLM is returned when a judge is used without an LLM generator
	ErrNoLLM = api.ErrNoLLM
	// ErrNoEmbedder is returned when an audit is used without an embedder
	ErrNoEmbedder = api.ErrNoEmbedder
	// ErrNoModerationProvider is returned when screening is used without a provider
	ErrNoModerationProvider = api.ErrNoModerationProvider
)

type MalformedTaxonomyError = api.MalformedTaxonomyError
type EmptyCaseError = api.EmptyCaseError
type UnknownTagError = api.UnknownTagError
type EmptyGroupError = api.EmptyGroupError
type TrackMismatchError = api.TrackMismatchError
