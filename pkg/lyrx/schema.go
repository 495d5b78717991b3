package lyrx

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaBytes []byte

// ErrSchemaViolation indicates the document does not match the label schema.
var ErrSchemaViolation = errors.New("schema violation")

// ValidateSchema checks raw .lyrx bytes against the embedded label schema.
// The schema covers only the label-relevant structure; unknown CIM fields
// pass through untouched.
func ValidateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, verr.Field()+": "+verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(violations, "; "))
}
