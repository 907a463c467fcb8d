// internal/answer/process.go
package answer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/MahirManghnani/finbench/internal/formula"
)

// responseSchema validates the shape of a model response before decoding.
// Keeping the contract in a schema makes the required keys auditable in one
// place.
const responseSchema = `{
	"type": "object",
	"required": ["formula", "formatting_instructions"],
	"properties": {
		"formula": {"type": "string"},
		"formatting_instructions": {
			"type": "object",
			"properties": {
				"prefix": {"type": "string"},
				"suffix": {"type": "string"},
				"rounding": {"type": "integer", "minimum": 0},
				"multiplier": {"type": "number"}
			}
		}
	}
}`

var responseSchemaLoader = gojsonschema.NewStringLoader(responseSchema)

// modelResponse mirrors the JSON contract the prompt asks the model to emit.
type modelResponse struct {
	Formula      string          `json:"formula"`
	Instructions json.RawMessage `json:"formatting_instructions"`
}

// rawInstructions distinguishes absent fields from zero values so defaults
// apply only where the model stayed silent.
type rawInstructions struct {
	Prefix     *string  `json:"prefix"`
	Suffix     *string  `json:"suffix"`
	Rounding   *int     `json:"rounding"`
	Multiplier *float64 `json:"multiplier"`
}

// Process turns a raw model response into a formatted answer string: strip
// any surrounding code fence, validate and decode the JSON, evaluate the
// formula, and render the result. Errors carry the offending input and never
// abort more than the single response they belong to.
func Process(raw string) (string, error) {
	cleaned := StripFences(raw)

	result, err := gojsonschema.Validate(responseSchemaLoader, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return "", fmt.Errorf("%w: %s", ErrMissingField, strings.Join(details, "; "))
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	instructions, err := decodeInstructions(resp.Instructions)
	if err != nil {
		return "", err
	}

	value, err := formula.Evaluate(resp.Formula)
	if err != nil {
		return "", err
	}

	return Format(value, instructions), nil
}

// decodeInstructions applies the documented defaults to absent fields.
func decodeInstructions(raw json.RawMessage) (FormattingInstructions, error) {
	instructions := DefaultInstructions()
	if len(raw) == 0 {
		return instructions, fmt.Errorf("%w: formatting_instructions", ErrMissingField)
	}

	var fields rawInstructions
	if err := json.Unmarshal(raw, &fields); err != nil {
		return instructions, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields.Prefix != nil {
		instructions.Prefix = *fields.Prefix
	}
	if fields.Suffix != nil {
		instructions.Suffix = *fields.Suffix
	}
	if fields.Rounding != nil {
		if *fields.Rounding < 0 {
			return instructions, fmt.Errorf("%w: rounding must be non-negative, got %d", ErrMissingField, *fields.Rounding)
		}
		instructions.Rounding = *fields.Rounding
	}
	if fields.Multiplier != nil {
		instructions.Multiplier = *fields.Multiplier
	}
	return instructions, nil
}

// StripFences removes a wrapping Markdown code fence, with or without a
// language tag, from a model response.
func StripFences(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		head := strings.TrimSpace(trimmed[:newline])
		if head == "" || isFenceTag(head) {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// isFenceTag reports whether a fence header line is a bare language tag
// rather than response content.
func isFenceTag(head string) bool {
	for _, r := range head {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
