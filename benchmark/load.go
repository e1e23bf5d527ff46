// Package benchmark is the dataset boundary: it loads taxonomy specs, case
// definitions, and raw model response files, and joins them into
// scoring-ready CaseRecords. The engine itself never touches I/O.
package benchmark

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/unieval-ai/unieval/api"
	"github.com/unieval-ai/unieval/judge"
	"github.com/unieval-ai/unieval/taxonomy"
)

type taxonomyFile struct {
	Tags []api.Tag `yaml:"tags"`
}

type caseFile struct {
	Cases []api.CaseRecord `yaml:"cases"`
}

type responseFile struct {
	// case id -> question id -> raw answer text
	Responses map[string]map[string]string `yaml:"responses"`
}

// LoadTaxonomy reads a YAML taxonomy spec and loads it.
func LoadTaxonomy(r io.Reader) (*taxonomy.Taxonomy, error) {
	var file taxonomyFile
	if err := decode(r, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	return taxonomy.Load(file.Tags)
}

// LoadTaxonomyFile is LoadTaxonomy over a file path.
func LoadTaxonomyFile(path string) (*taxonomy.Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTaxonomy(f)
}

// LoadCases reads and validates YAML case definitions. The responses field
// may be present (pre-judged datasets) or attached later from a response
// file.
func LoadCases(r io.Reader) ([]api.CaseRecord, error) {
	var file caseFile
	if err := decode(r, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cases: %w", err)
	}

	seen := make(map[string]bool, len(file.Cases))
	for _, c := range file.Cases {
		if err := validateCase(c); err != nil {
			return nil, err
		}
		if seen[c.CaseID] {
			return nil, fmt.Errorf("duplicate case id %q", c.CaseID)
		}
		seen[c.CaseID] = true
	}
	return file.Cases, nil
}

// LoadCasesFile is LoadCases over a file path.
func LoadCasesFile(path string) ([]api.CaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCases(f)
}

// LoadResponses reads a raw response file: case id -> question id -> answer
// text as the model produced it. Normalization against each question's label
// alphabet happens in AttachResponses.
func LoadResponses(r io.Reader) (map[string]map[string]string, error) {
	var file responseFile
	if err := decode(r, &file); err != nil {
		return nil, fmt.Errorf("failed to parse responses: %w", err)
	}
	return file.Responses, nil
}

// LoadResponsesFile is LoadResponses over a file path.
func LoadResponsesFile(path string) (map[string]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadResponses(f)
}

// AttachResponses joins raw responses onto cases, extracting a label from
// every answer against the question's declared alphabet (anything
// unmappable becomes InvalidResponse). Input cases are not mutated.
// Response entries whose case id matches no case are returned as orphans,
// sorted.
func AttachResponses(cases []api.CaseRecord, responses map[string]map[string]string) ([]api.CaseRecord, []string) {
	out := make([]api.CaseRecord, len(cases))
	matched := make(map[string]bool, len(cases))

	for i, c := range cases {
		out[i] = c
		out[i].Responses = make(map[string]api.Label, len(c.Questions))
		raw := responses[c.CaseID]
		matched[c.CaseID] = true
		for _, q := range c.Questions {
			answer, ok := raw[q.ID]
			if !ok {
				out[i].Responses[q.ID] = api.InvalidResponse
				continue
			}
			out[i].Responses[q.ID] = judge.ExtractLabel(answer, q)
		}
	}

	var orphans []string
	for id := range responses {
		if !matched[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	return out, orphans
}

func validateCase(c api.CaseRecord) error {
	if c.CaseID == "" {
		return fmt.Errorf("case with empty id")
	}
	if c.Tag == "" {
		return fmt.Errorf("case %q: empty tag", c.CaseID)
	}

	questionIDs := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("case %q: question with empty id", c.CaseID)
		}
		if questionIDs[q.ID] {
			return fmt.Errorf("case %q: duplicate question id %q", c.CaseID, q.ID)
		}
		questionIDs[q.ID] = true

		if len(q.Options) == 0 {
			return fmt.Errorf("case %q question %q: no options", c.CaseID, q.ID)
		}
		labels := make(map[api.Label]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt.Label == "" {
				return fmt.Errorf("case %q question %q: option with empty label", c.CaseID, q.ID)
			}
			if opt.Label == api.InvalidResponse {
				return fmt.Errorf("case %q question %q: option label collides with the INVALID sentinel", c.CaseID, q.ID)
			}
			if labels[opt.Label] {
				return fmt.Errorf("case %q question %q: duplicate option label %q", c.CaseID, q.ID, opt.Label)
			}
			labels[opt.Label] = true
		}
		if !labels[q.CorrectLabel] {
			return fmt.Errorf("case %q question %q: correct label %q is not among the options", c.CaseID, q.ID, q.CorrectLabel)
		}
	}
	return nil
}

func decode(r io.Reader, out interface{}) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(out)
}
