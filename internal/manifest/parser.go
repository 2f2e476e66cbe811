package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"go.yaml.in/yaml/v3"
)

// ParseRules decodes rules.yaml content without validating it.
func ParseRules(data []byte) (*RulesFile, error) {
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &rf, nil
}

// ParsePackage decodes package.json content. Comments and trailing commas are
// tolerated, since hand-edited manifests often carry them.
func ParsePackage(data []byte) (*PackageManifest, error) {
	var pm PackageManifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &pm); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}
	return &pm, nil
}
