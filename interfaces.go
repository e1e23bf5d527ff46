package unieval

import (
	"github.com/unieval-ai/unieval/api"
)

type LLMGenerator = api.LLMGenerator
type Embedder = api.Embedder
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult

var ModerationCategories = api.ModerationCategories
