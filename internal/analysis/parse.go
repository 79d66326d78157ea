package analysis

import (
	_ "embed"
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed result_schema.json
var resultSchema string

// Parse strictly parses model output into a Result. The text must be valid
// JSON and must satisfy the embedded schema; a schema mismatch is reported
// the same way as a syntax error so callers run a single recovery chain.
func Parse(jsonText string) (*Result, error) {
	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}

	if !validation.Valid() {
		parseErr := &ParseError{Message: "response does not match the analysis schema"}
		for _, desc := range validation.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			parseErr.Fields = append(parseErr.Fields, FieldError{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return nil, parseErr
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode analysis result", Cause: err}
	}

	return &result, nil
}
