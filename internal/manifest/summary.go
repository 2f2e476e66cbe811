package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// EntryStatus compares one template entry with the project's manifest.
type EntryStatus string

const (
	// StatusMissing means the project does not declare the entry at all.
	StatusMissing EntryStatus = "missing"
	// StatusSame means both declare the identical value.
	StatusSame EntryStatus = "same"
	// StatusCompatible means the project's version satisfies the template's range.
	StatusCompatible EntryStatus = "compatible"
	// StatusConflict means the project's version falls outside the template's range.
	StatusConflict EntryStatus = "conflict"
	// StatusDiffers means the values differ and cannot be compared as versions.
	StatusDiffers EntryStatus = "differs"
)

// Entry is one script or dependency the template manifest declares.
type Entry struct {
	Section  string
	Name     string
	Template string
	Existing string
	Status   EntryStatus
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s.%s %s", e.Section, e.Name, e.Template)
	if e.Status == StatusMissing {
		return s + " (missing)"
	}
	return fmt.Sprintf("%s (project has %s: %s)", s, e.Existing, e.Status)
}

// Summary describes what a skipped template manifest would have contributed.
type Summary struct {
	Entries []Entry
}

// NeedsAttention reports whether any entry is not already satisfied.
func (s *Summary) NeedsAttention() bool {
	for _, e := range s.Entries {
		if e.Status != StatusSame && e.Status != StatusCompatible {
			return true
		}
	}
	return false
}

// Lines renders one line per entry, in manifest order.
func (s *Summary) Lines() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.String()
	}
	return out
}

// Summarize compares the template's package.json with the project's existing
// one so the operator can merge scripts and dependencies by hand.
func Summarize(templateData, existingData []byte) (*Summary, error) {
	tmpl, err := ParsePackage(templateData)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	existing, err := ParsePackage(existingData)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	var sum Summary
	for _, name := range sortedKeys(tmpl.Scripts) {
		e := Entry{Section: "scripts", Name: name, Template: tmpl.Scripts[name], Status: StatusMissing}
		if have, ok := existing.Scripts[name]; ok {
			e.Existing = have
			e.Status = StatusDiffers
			if have == e.Template {
				e.Status = StatusSame
			}
		}
		sum.Entries = append(sum.Entries, e)
	}

	for _, sec := range tmpl.dependencySections() {
		for _, name := range sortedKeys(sec.deps) {
			e := Entry{Section: sec.name, Name: name, Template: sec.deps[name], Status: StatusMissing}
			if have, ok := existing.lookup(name); ok {
				e.Existing = have
				e.Status = compareVersions(e.Template, have)
			}
			sum.Entries = append(sum.Entries, e)
		}
	}
	return &sum, nil
}

// compareVersions checks the lowest version the project's range admits
// against the template's range. Non-semver specs (tags, URLs, workspace
// references) can only be compared textually.
func compareVersions(want, have string) EntryStatus {
	if want == have {
		return StatusSame
	}
	c, err := semver.NewConstraint(want)
	if err != nil {
		return StatusDiffers
	}
	v, err := semver.NewVersion(floor(have))
	if err != nil {
		return StatusDiffers
	}
	if c.Check(v) {
		return StatusCompatible
	}
	return StatusConflict
}

// floor strips range operators so "^1.2.3" or ">= 1.2" yields its base version.
func floor(spec string) string {
	spec = strings.TrimLeft(strings.TrimSpace(spec), "^~>=v ")
	if i := strings.IndexAny(spec, " |,"); i >= 0 {
		spec = spec[:i]
	}
	return spec
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
