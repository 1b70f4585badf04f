// Package schemas validates JSON records read back from the state store
// against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed credit_score.schema.json
var creditScoreSchema string

//go:embed assessment_draft.schema.json
var assessmentDraftSchema string

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is a single violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:", ve.Schema)
	for _, err := range ve.Errors {
		fmt.Fprintf(&sb, " %s: %s;", err.Field, err.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError means the schema itself could not be compiled.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiled struct {
	name   string
	source string
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

func (c *compiled) load() (*gojsonschema.Schema, error) {
	c.once.Do(func() {
		c.schema, c.err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(c.source))
		if c.err != nil {
			c.err = &SchemaLoadError{Schema: c.name, Cause: c.err}
		}
	})
	return c.schema, c.err
}

var (
	creditScore     = &compiled{name: "CreditScore", source: creditScoreSchema}
	assessmentDraft = &compiled{name: "AssessmentDraft", source: assessmentDraftSchema}
)

// ValidateCreditScore checks a stored creditScore record.
func ValidateCreditScore(doc []byte) error {
	return validate(creditScore, doc)
}

// ValidateAssessmentDraft checks a stored assessmentDraft record.
func ValidateAssessmentDraft(doc []byte) error {
	return validate(assessmentDraft, doc)
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	c := &compiled{name: "(string schema)", source: schemaContent}
	return validate(c, []byte(jsonContent))
}

func validate(c *compiled, doc []byte) error {
	schema, err := c.load()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", c.name, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{
		Schema: c.name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
