package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gitmaxd/ai-init/internal/templates"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return data
}

func TestValidateRules_ShippedTemplate(t *testing.T) {
	data, err := fs.ReadFile(templates.Embedded().FS, templates.CanonicalFile)
	if err != nil {
		t.Fatal(err)
	}
	result, err := ValidateRules(data)
	if err != nil {
		t.Fatalf("ValidateRules error: %v", err)
	}
	if !result.Valid {
		t.Errorf("shipped rules.yaml is invalid: %v", result.Messages())
	}
}

func TestValidateRules_Valid(t *testing.T) {
	result, err := ValidateRules(readTestdata(t, "valid-rules.yaml"))
	if err != nil {
		t.Fatalf("ValidateRules error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %v", result.Messages())
	}
}

func TestValidateRules_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		path    string
		keyword string
	}{
		{"invalid-rule-id.yaml", "/rules/0/id", "pattern"},
		{"invalid-missing-version.yaml", "", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateRules(readTestdata(t, tt.file))
			if err != nil {
				t.Fatalf("ValidateRules error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path && issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %q has no message", issue.Path)
				}
			}
			if !found {
				t.Errorf("expected a %s issue at %q, got %+v", tt.keyword, tt.path, result.Issues)
			}
		})
	}
}

func TestValidateRules_NotYAML(t *testing.T) {
	if _, err := ValidateRules(readTestdata(t, "invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidateRules_Empty(t *testing.T) {
	result, err := ValidateRules(nil)
	if err != nil {
		t.Fatalf("ValidateRules error: %v", err)
	}
	if result.Valid {
		t.Error("empty document should be missing required fields")
	}
}

func TestSchemaCompiles(t *testing.T) {
	schema, err := loadSchema()
	if err != nil {
		t.Fatalf("loadSchema error: %v", err)
	}
	if schema == nil {
		t.Fatal("loadSchema returned nil")
	}
}

func TestParseRules(t *testing.T) {
	rf, err := ParseRules(readTestdata(t, "valid-rules.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if rf.Version != "2.1.0" {
		t.Errorf("Version = %q, want 2.1.0", rf.Version)
	}
	if len(rf.Rules) != 1 || rf.Rules[0].ID != "api-style" {
		t.Errorf("unexpected rules %+v", rf.Rules)
	}
	if rf.MemoryBank == nil || rf.MemoryBank.Path != "memory-bank" {
		t.Errorf("unexpected memory bank %+v", rf.MemoryBank)
	}
}
