package api

// Label is a single answer choice identifier, e.g. "A".
// The label alphabet is per-question: a question declares its own options and
// nothing beyond those may be assumed about alphabet size.
type Label string

// InvalidResponse is the sentinel recorded when a model's answer could not be
// mapped to any of the question's declared labels. It is data, not an error:
// scoring treats it as an incorrect answer.
const InvalidResponse Label = "INVALID"

// Tag is one entry of the two-level benchmark taxonomy. Level2 always belongs
// to exactly one Level1 parent.
type Tag struct {
	Level1      string `json:"level1" yaml:"level1"`
	Level2      string `json:"level2" yaml:"level2"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Option is one answer choice of a multiple-choice question.
type Option struct {
	Label Label  `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Question is one multiple-choice question attached to a generation prompt.
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Options      []Option `json:"options" yaml:"options"`
	CorrectLabel Label    `json:"correct" yaml:"correct"`
}

// Labels returns the question's declared labels in option order.
func (q Question) Labels() []Label {
	labels := make([]Label, len(q.Options))
	for i, opt := range q.Options {
		labels[i] = opt.Label
	}
	return labels
}

// HasLabel reports whether l is one of the question's declared labels.
func (q Question) HasLabel(l Label) bool {
	for _, opt := range q.Options {
		if opt.Label == l {
			return true
		}
	}
	return false
}

// CaseRecord is one evaluation unit: a generation prompt, its questions, and
// the raw responses produced by a model. Responses are read-only input; a
// question id absent from Responses is scored as InvalidResponse.
type CaseRecord struct {
	CaseID    string           `json:"case_id" yaml:"case_id"`
	Tag       string           `json:"tag" yaml:"tag"` // level-2 taxonomy id
	Prompt    string           `json:"prompt" yaml:"prompt"`
	Questions []Question       `json:"questions" yaml:"questions"`
	Responses map[string]Label `json:"responses" yaml:"responses"`
}

// ScoreRecord is the derived, immutable score for one case.
type ScoreRecord struct {
	CaseID       string  `json:"case_id"`
	Tag          string  `json:"tag"`
	PerQuestion  []bool  `json:"per_question"`
	CaseAccuracy float64 `json:"case_accuracy"`
	Perfect      bool    `json:"perfect"`
}

// TagScore is the reduction of all ScoreRecords sharing one level-2 tag.
type TagScore struct {
	Tag              Tag     `json:"tag"`
	CaseCount        int     `json:"case_count"`
	MeanCaseAccuracy float64 `json:"mean_case_accuracy"`
	PerfectRate      float64 `json:"perfect_rate"`
}

// Report is the rolled-up accuracy report. PerLevel1 and Overall are
// unweighted means over the level below, so every tag carries equal weight
// regardless of how many cases populate it.
type Report struct {
	Overall    float64             `json:"overall"`
	PerLevel1  map[string]float64  `json:"per_level1"`
	PerLevel2  map[string]TagScore `json:"per_level2"`
	NotCovered []string            `json:"not_covered,omitempty"`
}

// DifferentialRecord is the per-case comparison of the two judging tracks.
// Delta = Uni - Gen: positive means the unified model's own understanding
// outperforms the external judge on its own generations.
type DifferentialRecord struct {
	CaseID string  `json:"case_id"`
	Tag    string  `json:"tag"`
	Uni    float64 `json:"uni"`
	Gen    float64 `json:"gen"`
	Delta  float64 `json:"delta"`
}

// DeltaScore is one leaf of a differential report.
type DeltaScore struct {
	Uni       float64 `json:"uni"`
	Gen       float64 `json:"gen"`
	Delta     float64 `json:"delta"`
	CaseCount int     `json:"case_count"`
}

// DifferentialReport mirrors Report with {uni, gen, delta} leaves.
type DifferentialReport struct {
	Overall    DeltaScore            `json:"overall"`
	PerLevel1  map[string]DeltaScore `json:"per_level1"`
	PerLevel2  map[string]DeltaScore `json:"per_level2"`
	Mismatched []string              `json:"mismatched,omitempty"`
	NotCovered []string              `json:"not_covered,omitempty"`
}

// Mode selects how aggregation and differential comparison treat structural
// gaps: uncovered taxonomy tags and case-id mismatches between tracks.
type Mode int

const (
	// Lenient omits uncovered tags and mismatched cases from the rollup but
	// always surfaces them in the report, never as a silent drop.
	Lenient Mode = iota
	// Strict turns uncovered tags and mismatched cases into errors.
	Strict
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}
