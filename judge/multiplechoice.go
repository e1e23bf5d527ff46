// Package judge turns free-form model output into multiple-choice response
// labels. It implements the external-understanding-model collaborator (the
// "gen" track): given the content under judgment and a question, it asks an
// LLM for one of the question's declared labels. Anything that cannot be
// mapped to a declared label becomes InvalidResponse, a data value the
// scoring engine counts as incorrect, never an evaluator error.
package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/unieval-ai/unieval/api"
)

// MultipleChoiceOptions configures the MultipleChoice judge
type MultipleChoiceOptions struct {
	// Instruction overrides the default framing sentence prepended to the
	// judge prompt. Optional.
	Instruction string
}

// Answer is the judged response for one question.
type Answer struct {
	// QuestionID identifies the judged question
	QuestionID string
	// Label is the extracted response label, or InvalidResponse
	Label api.Label
	// Metadata contains additional information about the judging process
	Metadata map[string]any
	// Error contains any transport-level error (the Label is still set)
	Error error
}

// MultipleChoice returns a judge that answers questions about generated
// content using an LLM.
func MultipleChoice(llm api.LLMGenerator, opts MultipleChoiceOptions) *MultipleChoiceJudge {
	return &MultipleChoiceJudge{llm: llm, opts: opts}
}

// MultipleChoiceJudge asks an LLMGenerator to pick one option per question.
type MultipleChoiceJudge struct {
	llm  api.LLMGenerator
	opts MultipleChoiceOptions
}

const defaultInstruction = `You are evaluating generated visual content by answering a multiple-choice question about it.`

const multipleChoicePromptTemplate = `%s

[BEGIN DATA]
[Content]: %s
[Question]: %s
%s[END DATA]

Answer with exactly one option label. If none of the options can be judged from the content, answer INVALID.`

// Ask judges one question about the given content description.
// content is the textual rendition of the generated output under judgment;
// image handling is the caller's responsibility.
func (j *MultipleChoiceJudge) Ask(ctx context.Context, content string, q api.Question) Answer {
	answer := Answer{
		QuestionID: q.ID,
		Label:      api.InvalidResponse,
		Metadata:   make(map[string]any),
	}

	if j.llm == nil {
		answer.Error = api.ErrNoLLM
		return answer
	}

	var options strings.Builder
	for _, opt := range q.Options {
		fmt.Fprintf(&options, "(%s) %s\n", opt.Label, opt.Text)
	}

	instruction := j.opts.Instruction
	if instruction == "" {
		instruction = defaultInstruction
	}
	prompt := fmt.Sprintf(multipleChoicePromptTemplate, instruction, content, q.Prompt, options.String())

	enum := make([]string, 0, len(q.Options)+1)
	for _, l := range q.Labels() {
		enum = append(enum, string(l))
	}
	enum = append(enum, string(api.InvalidResponse))

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"answer": map[string]interface{}{
				"type":        "string",
				"enum":        enum,
				"description": "The selected option label",
			},
		},
		"required": []string{"answer"},
	}

	structuredResponse, err := j.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		answer.Error = fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err)
		return answer
	}
	answer.Metadata["raw_response"] = structuredResponse

	raw, ok := structuredResponse["answer"].(string)
	if !ok {
		answer.Metadata["extraction_failed"] = true
		return answer
	}
	answer.Metadata["raw_answer"] = raw
	answer.Label = NormalizeLabel(raw, q)
	return answer
}

// AnswerCase judges every question of a case in order. content is the
// textual rendition of the content generated for the case's prompt.
// Transport errors are carried per answer; the returned slice always has one
// entry per question.
func (j *MultipleChoiceJudge) AnswerCase(ctx context.Context, content string, c api.CaseRecord) []Answer {
	answers := make([]Answer, len(c.Questions))
	for i, q := range c.Questions {
		answers[i] = j.Ask(ctx, content, q)
	}
	return answers
}

// Responses converts judged answers into the Responses map a CaseRecord
// carries. Errored answers map to InvalidResponse.
func Responses(answers []Answer) map[string]api.Label {
	responses := make(map[string]api.Label, len(answers))
	for _, a := range answers {
		responses[a.QuestionID] = a.Label
	}
	return responses
}
