// Package scoring converts raw per-question responses into case-level
// accuracy. Scoring is a pure function of the case: no shared mutable state,
// so disjoint cases may be scored fully in parallel.
package scoring

import (
	"github.com/unieval-ai/unieval/api"
	"github.com/unieval-ai/unieval/taxonomy"
)

// Options configures an Engine.
type Options struct {
	// Workers is the number of concurrent scorers used by ScoreAll.
	// Values below 2 select the sequential path.
	Workers int
}

// Engine scores cases against a loaded taxonomy.
type Engine struct {
	tax  *taxonomy.Taxonomy
	opts Options
}

// NewEngine creates an Engine bound to an immutable taxonomy.
func NewEngine(tax *taxonomy.Taxonomy, opts Options) *Engine {
	return &Engine{tax: tax, opts: opts}
}

// ScoreCase computes the ScoreRecord for one case.
//
// A response equal to InvalidResponse, outside the question's declared
// labels, or missing entirely is scored incorrect, never as an error: a
// non-compliant model answer is a failure mode being measured, not a defect
// in the evaluator. A case with no questions fails with *api.EmptyCaseError;
// a case referencing a tag outside the taxonomy fails with
// *api.UnknownTagError.
func (e *Engine) ScoreCase(c api.CaseRecord) (api.ScoreRecord, error) {
	if len(c.Questions) == 0 {
		return api.ScoreRecord{}, &api.EmptyCaseError{CaseID: c.CaseID}
	}
	if !e.tax.HasLevel2(c.Tag) {
		return api.ScoreRecord{}, &api.UnknownTagError{CaseID: c.CaseID, Tag: c.Tag}
	}

	perQuestion := make([]bool, len(c.Questions))
	correct := 0
	for i, q := range c.Questions {
		resp, ok := c.Responses[q.ID]
		if !ok {
			resp = api.InvalidResponse
		}
		if resp != api.InvalidResponse && resp == q.CorrectLabel {
			perQuestion[i] = true
			correct++
		}
	}

	return api.ScoreRecord{
		CaseID:       c.CaseID,
		Tag:          c.Tag,
		PerQuestion:  perQuestion,
		CaseAccuracy: float64(correct) / float64(len(c.Questions)),
		Perfect:      correct == len(c.Questions),
	}, nil
}

// CaseFailure records a case that could not be scored. Failed cases are
// excluded from aggregation but never abort the batch.
type CaseFailure struct {
	CaseID string
	Err    error
}

// BatchResult is the outcome of scoring a batch of cases. Records preserves
// the input order of the cases that scored successfully.
type BatchResult struct {
	Records  []api.ScoreRecord
	Failures []CaseFailure
}

// ScoreAll scores every case independently. With Workers > 1 the cases are
// scored concurrently; output order matches input order either way.
func (e *Engine) ScoreAll(cases []api.CaseRecord) BatchResult {
	if e.opts.Workers > 1 {
		return e.scoreAllParallel(cases)
	}

	var result BatchResult
	for _, c := range cases {
		rec, err := e.ScoreCase(c)
		if err != nil {
			result.Failures = append(result.Failures, CaseFailure{CaseID: c.CaseID, Err: err})
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result
}
