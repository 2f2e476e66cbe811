package naming

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// MaxLength is the longest name accepted, matching npm's package name limit.
const MaxLength = 214

var allowedPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// reserved names that are never valid project directories, compared
// case-insensitively.
var reserved = map[string]bool{
	".":            true,
	"..":           true,
	"node_modules": true,
	"favicon.ico":  true,
}

// windowsDevices are rejected with or without an extension ("con", "con.txt").
var windowsDevices = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// Result is the outcome of validating a name. Errors is empty when Valid.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks name against the naming rules and returns every violation
// in a stable order. It has no side effects.
func Validate(name string) Result {
	if name == "" {
		return Result{Errors: []string{"name must not be empty"}}
	}

	var errs []string

	if n := len([]rune(name)); n > MaxLength {
		errs = append(errs, fmt.Sprintf("name must be at most %d characters (got %d)", MaxLength, n))
	}

	if strings.TrimSpace(name) != name {
		errs = append(errs, "name must not have leading or trailing whitespace")
	}

	if strings.ContainsAny(name, `/\`) {
		errs = append(errs, "name must not contain path separators")
	}

	if !allowedPattern.MatchString(name) {
		if bad := illegalChars(name); len(bad) > 0 {
			errs = append(errs, fmt.Sprintf("name contains illegal characters: %s", strings.Join(bad, " ")))
		}
	}

	switch name[0] {
	case '.':
		errs = append(errs, "name must not start with a dot")
	case '-':
		errs = append(errs, "name must not start with a hyphen")
	case '_':
		errs = append(errs, "name must not start with an underscore")
	}

	if isReserved(name) {
		errs = append(errs, fmt.Sprintf("%q is a reserved name", name))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// illegalChars returns the distinct characters outside the allowed set,
// quoted and sorted. Path separators are reported separately.
func illegalChars(name string) []string {
	seen := make(map[rune]bool)
	for _, r := range name {
		if r == '/' || r == '\\' {
			continue
		}
		if isAllowed(r) {
			continue
		}
		seen[r] = true
	}

	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, fmt.Sprintf("%q", r))
	}
	sort.Strings(out)
	return out
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

func isReserved(name string) bool {
	lower := strings.ToLower(name)
	if reserved[lower] {
		return true
	}
	base := lower
	if i := strings.IndexByte(lower, '.'); i > 0 {
		base = lower[:i]
	}
	return windowsDevices[base]
}

// ErrorList formats validation errors as an indented bullet list.
func ErrorList(errs []string) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	return b.String()
}
