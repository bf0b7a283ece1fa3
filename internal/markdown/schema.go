package markdown

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrFrontMatterInvalid wraps front matter that does not satisfy the
// document schema.
var ErrFrontMatterInvalid = errors.New("markdown: front matter invalid")

//go:embed schema/frontmatter.json
var frontMatterSchemaSource []byte

var (
	frontMatterSchemaOnce sync.Once
	frontMatterSchema     *jsonschema.Schema
	frontMatterSchemaErr  error
)

func compiledFrontMatterSchema() (*jsonschema.Schema, error) {
	frontMatterSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("frontmatter.json", bytes.NewReader(frontMatterSchemaSource)); err != nil {
			frontMatterSchemaErr = err
			return
		}
		frontMatterSchema, frontMatterSchemaErr = compiler.Compile("frontmatter.json")
	})
	return frontMatterSchema, frontMatterSchemaErr
}

// validateFrontMatter round-trips the envelope through JSON so the schema
// sees plain maps and slices regardless of the YAML decoder's types.
func validateFrontMatter(meta frontMatterEnvelope) error {
	schema, err := compiledFrontMatterSchema()
	if err != nil {
		return fmt.Errorf("markdown: compile front matter schema: %w", err)
	}

	payload := map[string]any{
		"title":     meta.Title,
		"slug":      meta.Slug,
		"footnotes": meta.Footnotes,
	}
	if meta.Footnotes == nil {
		payload["footnotes"] = []FootnoteEntry{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrFrontMatterInvalid, strings.Join(issueMessages(validationErr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}

	seen := make(map[string]struct{}, len(meta.Footnotes))
	for _, entry := range meta.Footnotes {
		id := strings.TrimSpace(entry.UUID)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate footnote uuid %q", ErrFrontMatterInvalid, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func issueMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		location := strings.TrimSpace(err.InstanceLocation)
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + strings.TrimSpace(err.Message)}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, issueMessages(cause)...)
	}
	return out
}
