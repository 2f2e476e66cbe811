package materialize

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Entry pairs a template file with its resolved destination.
type Entry struct {
	Rel string // slash-separated, relative to both roots
	Src string // path inside the template filesystem
	Dst string // absolute destination path
}

// SafeJoin joins a slash-separated relative path onto base, refusing paths
// that are absolute or climb out of base.
func SafeJoin(base, rel string) (string, error) {
	clean := path.Clean(strings.TrimSpace(rel))
	if clean == "" || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid template path %q", rel)
	}
	if path.IsAbs(clean) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("invalid template path %q", rel)
	}
	if strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid template path %q", rel)
	}
	return filepath.Join(base, filepath.FromSlash(clean)), nil
}

// Plan resolves every relative file against dstRoot.
func Plan(files []string, dstRoot string) ([]Entry, error) {
	plan := make([]Entry, 0, len(files))
	for _, rel := range files {
		dst, err := SafeJoin(dstRoot, rel)
		if err != nil {
			return nil, err
		}
		plan = append(plan, Entry{Rel: rel, Src: rel, Dst: dst})
	}
	return plan, nil
}

// ParentDirs returns the distinct parent directories of the given
// slash-separated files, excluding the root itself.
func ParentDirs(files []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		d := path.Dir(f)
		if d == "." || seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	return dirs
}

// sortShallowFirst orders slash-separated directories by depth, then
// lexicographically, so parents precede their children.
func sortShallowFirst(dirs []string) {
	sort.SliceStable(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], "/"), strings.Count(dirs[j], "/")
		if di != dj {
			return di < dj
		}
		return dirs[i] < dirs[j]
	})
}
