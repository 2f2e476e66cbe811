package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "rules.schema.json"

//go:embed schema/rules.schema.json
var schemaBytes []byte

var (
	rulesSchema *jsonschema.Schema
	schemaOnce  sync.Once
	schemaErr   error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking a rules file.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/rules/0/id"
	Message string
	Keyword string // failing schema keyword, e.g. "pattern"
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Messages flattens the issues for display.
func (r *ValidationResult) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.String()
	}
	return out
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		rulesSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling schema: %w", schemaErr)
		}
	})
	return rulesSchema, schemaErr
}

// ValidateRules checks rules.yaml content against the embedded schema. The
// error return covers unparseable YAML and schema problems; violations are
// reported in the result.
func ValidateRules(data []byte) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so the validator sees json.Number and plain
	// string-keyed maps.
	jsonData, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing instance: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return &ValidationResult{Issues: leafIssues(ve)}, nil
}

// leafIssues flattens the error tree to its most specific causes, dropping
// duplicates and the container keywords that only say "a child failed".
func leafIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		if e.ErrorKind == nil {
			return
		}
		keyword := ""
		if kw := e.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		switch keyword {
		case "", "$ref", "allOf", "oneOf", "anyOf":
			return
		}
		issue := ValidationIssue{
			Message: e.ErrorKind.LocalizedString(printer),
			Keyword: keyword,
		}
		if len(e.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			issues = append(issues, issue)
		}
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

// jsonCompatible rewrites YAML-decoded values so encoding/json accepts them.
// Mappings with non-string keys come back from yaml as map[any]any.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = jsonCompatible(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = jsonCompatible(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = jsonCompatible(v)
		}
		return a
	default:
		return val
	}
}
