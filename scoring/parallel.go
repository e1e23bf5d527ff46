package scoring

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unieval-ai/unieval/api"
)

// scoreAllParallel fans cases out over a bounded worker group. Each slot is
// written by exactly one goroutine, so results land in input order without
// further coordination.
func (e *Engine) scoreAllParallel(cases []api.CaseRecord) BatchResult {
	type slot struct {
		rec api.ScoreRecord
		err error
	}
	slots := make([]slot, len(cases))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(e.opts.Workers)
	for i := range cases {
		g.Go(func() error {
			rec, err := e.ScoreCase(cases[i])
			slots[i] = slot{rec: rec, err: err}
			return nil
		})
	}
	// Workers only record per-case outcomes, never return errors.
	_ = g.Wait()

	var result BatchResult
	for i, s := range slots {
		if s.err != nil {
			result.Failures = append(result.Failures, CaseFailure{CaseID: cases[i].CaseID, Err: s.err})
			continue
		}
		result.Records = append(result.Records, s.rec)
	}
	return result
}
