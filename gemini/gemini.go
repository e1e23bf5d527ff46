package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/unieval-ai/unieval/api"
)

// Generator wraps a genai.Client to implement the LLMGenerator interface
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a new Gemini generator
// client: genai.Client from google.golang.org/genai
// modelName: the model to use (e.g., "gemini-2.5-flash")
func NewGenerator(client *genai.Client, modelName string) *Generator {
	return &Generator{
		client:    client,
		modelName: modelName,
	}
}

// Generate implements LLMGenerator.Generate
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return firstText(resp)
}

// StructuredGenerate implements LLMGenerator.StructuredGenerate using
// Gemini's constrained JSON output mode.
func (g *Generator) StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	responseSchema, err := toSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse structured response: %w", err)
	}
	return result, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no parts in response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// toSchema converts the JSON-schema subset used by the judges (type,
// properties, required, enum, items, description) into a genai.Schema.
func toSchema(schema map[string]interface{}) (*genai.Schema, error) {
	out := &genai.Schema{}

	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}

	typeName, _ := schema["type"].(string)
	switch typeName {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
	default:
		return nil, fmt.Errorf("unsupported schema type %q", typeName)
	}

	if props, ok := schema["properties"].(map[string]interface{}); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			sub, ok := raw.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("property %q is not a schema", name)
			}
			converted, err := toSchema(sub)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			out.Properties[name] = converted
		}
	}

	if items, ok := schema["items"].(map[string]interface{}); ok {
		converted, err := toSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out.Items = converted
	}

	out.Required = stringList(schema["required"])
	out.Enum = stringList(schema["enum"])

	return out, nil
}

func stringList(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Verify that Generator implements LLMGenerator
var _ api.LLMGenerator = (*Generator)(nil)
