// Package unieval scores unified multimodal models on multiple-choice
// questions attached to generation prompts and rolls the results up through
// a two-level tag taxonomy into a UniScore, plus a differential score that
// isolates understanding from generation.
package unieval

import (
	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/unieval-ai/unieval/aggregate"
	"github.com/unieval-ai/unieval/api"
	"github.com/unieval-ai/unieval/audit"
	"github.com/unieval-ai/unieval/differential"
	"github.com/unieval-ai/unieval/gemini"
	"github.com/unieval-ai/unieval/judge"
	"github.com/unieval-ai/unieval/scoring"
	"github.com/unieval-ai/unieval/taxonomy"
)

type Label = api.Label
type Tag = api.Tag
type Option = api.Option
type Question = api.Question
type CaseRecord = api.CaseRecord
type ScoreRecord = api.ScoreRecord
type TagScore = api.TagScore
type Report = api.Report
type DeltaScore = api.DeltaScore
type DifferentialRecord = api.DifferentialRecord
type DifferentialReport = api.DifferentialReport
type Mode = api.Mode
type Taxonomy = taxonomy.Taxonomy
type BatchResult = scoring.BatchResult
type CaseFailure = scoring.CaseFailure

const InvalidResponse = api.InvalidResponse
const (
	Lenient = api.Lenient
	Strict  = api.Strict
)

// LoadTaxonomy validates a taxonomy spec and returns the immutable Taxonomy
// threaded through every evaluator call.
func LoadTaxonomy(spec []Tag) (*Taxonomy, error) {
	return taxonomy.Load(spec)
}

// Evaluator bundles the scoring engine, aggregation, and differential
// comparison behind one configuration.
type Evaluator struct {
	tax    *taxonomy.Taxonomy
	engine *scoring.Engine
	mode   api.Mode
}

// EvaluatorOptions configures Evaluator creation
type EvaluatorOptions struct {
	tax     *taxonomy.Taxonomy
	mode    api.Mode
	workers int
}

// WithTaxonomy sets the taxonomy the evaluator scores against (required)
func WithTaxonomy(tax *Taxonomy) func(*EvaluatorOptions) {
	return func(opts *EvaluatorOptions) {
		opts.tax = tax
	}
}

// WithMode selects strict or lenient handling of uncovered tags and
// mismatched tracks. Default is Lenient.
func WithMode(mode Mode) func(*EvaluatorOptions) {
	return func(opts *EvaluatorOptions) {
		opts.mode = mode
	}
}

// WithWorkers enables parallel batch scoring with the given concurrency.
func WithWorkers(n int) func(*EvaluatorOptions) {
	return func(opts *EvaluatorOptions) {
		opts.workers = n
	}
}

// NewEvaluator creates a new Evaluator using functional options.
func NewEvaluator(opts ...func(*EvaluatorOptions)) (*Evaluator, error) {
	options := &EvaluatorOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.tax == nil {
		return nil, &api.MalformedTaxonomyError{Reason: "no taxonomy configured"}
	}
	return &Evaluator{
		tax:    options.tax,
		engine: scoring.NewEngine(options.tax, scoring.Options{Workers: options.workers}),
		mode:   options.mode,
	}, nil
}

// Score scores every case independently; per-case failures are collected,
// never raised.
func (e *Evaluator) Score(cases []CaseRecord) BatchResult {
	return e.engine.ScoreAll(cases)
}

// Report rolls score records up through the taxonomy.
func (e *Evaluator) Report(records []ScoreRecord) (*Report, error) {
	return aggregate.Report(records, e.tax, aggregate.Options{Mode: e.mode})
}

// Evaluate is Score followed by Report. The batch result is returned
// alongside the report so callers can surface per-case failures.
func (e *Evaluator) Evaluate(cases []CaseRecord) (*Report, BatchResult, error) {
	batch := e.Score(cases)
	report, err := e.Report(batch.Records)
	if err != nil {
		return nil, batch, err
	}
	return report, batch, nil
}

// Compare produces the differential report between the unified model's own
// judging track and the external judge's track.
func (e *Evaluator) Compare(uni, gen []ScoreRecord) (*DifferentialReport, error) {
	return differential.Compare(uni, gen, e.tax, differential.Options{Mode: e.mode})
}

// Judge wraps an LLM generator and a moderation provider and exposes
// convenient constructors for the answer judge and the safety screener.
type Judge struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// JudgeOptions configures Judge creation
type JudgeOptions struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// WithLLMGenerator sets the LLM generator for the judge
func WithLLMGenerator(llm api.LLMGenerator) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.llm = llm
	}
}

// WithModerationProvider sets the moderation provider for the judge
func WithModerationProvider(provider api.ModerationProvider) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.moderation = provider
	}
}

// NewJudge creates a new Judge wrapper using functional options.
func NewJudge(opts ...func(*JudgeOptions)) *Judge {
	options := &JudgeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Judge{
		llm:        options.llm,
		moderation: options.moderation,
	}
}

// GeminiOptions configures Gemini-backed Judge and Audit creation
type GeminiOptions struct {
	genaiClient *genai.Client
	modelName   string
	langClient  *language.Client
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the model name, e.g. "gemini-2.5-flash" for judging or
// "text-embedding-005" for audits.
func WithModelName(modelName string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for moderation
func WithLanguageClient(langClient *language.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.langClient = langClient
	}
}

// NewGeminiJudge creates a Judge backed by Gemini for answering and Google
// Cloud Language for moderation.
func NewGeminiJudge(opts ...func(*GeminiOptions)) *Judge {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var judgeOptions []func(*JudgeOptions)

	// Only add LLM generator if genaiClient is provided
	if options.genaiClient != nil && options.modelName != "" {
		judgeOptions = append(judgeOptions, WithLLMGenerator(gemini.NewGenerator(options.genaiClient, options.modelName)))
	}

	// Only add moderation provider if langClient is provided
	if options.langClient != nil {
		judgeOptions = append(judgeOptions, WithModerationProvider(gemini.NewGoogleLanguageProvider(options.langClient)))
	}

	return NewJudge(judgeOptions...)
}

type MultipleChoiceOptions = judge.MultipleChoiceOptions

// MultipleChoice returns the answer judge used for the gen track: it maps an
// external understanding model's free-form output onto the question's labels.
func (j *Judge) MultipleChoice(opts MultipleChoiceOptions) *judge.MultipleChoiceJudge {
	return judge.MultipleChoice(j.llm, opts)
}

type ScreenOptions = judge.ScreenOptions

// SafetyScreen returns a screener that flags benchmark prompts via the
// moderation provider.
func (j *Judge) SafetyScreen(opts ScreenOptions) *judge.Screener {
	return judge.SafetyScreen(j.moderation, opts)
}

// Audit wraps an embedder and exposes benchmark-quality diagnostics.
type Audit struct{ embedder api.Embedder }

// AuditOptions configures Audit creation
type AuditOptions struct {
	embedder api.Embedder
}

// WithEmbedder sets the embedder for audits
func WithEmbedder(embedder api.Embedder) func(*AuditOptions) {
	return func(opts *AuditOptions) {
		opts.embedder = embedder
	}
}

// NewAudit creates a new Audit wrapper using functional options.
func NewAudit(opts ...func(*AuditOptions)) *Audit {
	options := &AuditOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Audit{embedder: options.embedder}
}

// NewGeminiAudit creates an Audit backed by Gemini embeddings.
func NewGeminiAudit(opts ...func(*GeminiOptions)) *Audit {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var auditOptions []func(*AuditOptions)

	// Only add embedder if genaiClient and modelName are provided
	if options.genaiClient != nil && options.modelName != "" {
		auditOptions = append(auditOptions, WithEmbedder(gemini.NewEmbedder(options.genaiClient, options.modelName)))
	}

	return NewAudit(auditOptions...)
}

type AmbiguityOptions = audit.AmbiguityOptions

// DistractorAmbiguity returns an auditor flagging distractors semantically
// too close to the correct option.
func (a *Audit) DistractorAmbiguity(opts AmbiguityOptions) *audit.Auditor {
	return audit.DistractorAmbiguity(a.embedder, opts)
}
