//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // AIINIT_HOME, holds config.yaml
	WorkDir     string // where projects are created
	TemplateDir string // a custom template tree
}

// setupTestEnv creates isolated temp directories and points AIINIT_HOME at
// one of them so no run reads the developer's real config.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		WorkDir:     t.TempDir(),
		TemplateDir: t.TempDir(),
	}
	t.Setenv("AIINIT_HOME", env.HomeDir)
	return env
}

// setupTemplate writes a small team template: its own rules file, one rule
// document, and a package.json with a dependency.
func setupTemplate(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "rules.yaml"), `version: 2.0.0
project:
  name: team-template
rules:
  - id: review
    description: Every change gets one reviewer.
    file: rules/review.md
`)
	writeFile(t, filepath.Join(dir, "rules", "review.md"), "# Review\n")
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "scripts": {"check": "markdownlint ."},
  "devDependencies": {"markdownlint-cli": "^0.41.0"}
}
`)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
