package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"cv-portfolio/internal/domain"
)

//go:embed schema/import.schema.json
var importSchema string

var importSchemaLoader = gojsonschema.NewStringLoader(importSchema)

// ValidateDocument validates a generic map against the import document schema.
func ValidateDocument(m map[string]interface{}) error {
	res, err := gojsonschema.Validate(importSchemaLoader, gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s: %w", strings.Join(msgs, "; "), domain.ErrInvalid)
}
