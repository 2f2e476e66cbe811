package templates

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:files
var files embed.FS

// Layout constants shared by the installer, linker, and doctor.
const (
	// CanonicalFile is the single source of truth the aliases resolve to.
	CanonicalFile = "rules.yaml"

	// ManifestFile is the dependency descriptor that is never overwritten
	// in an existing project.
	ManifestFile = "package.json"

	RulesDir     = "rules"
	DecisionsDir = "docs/decisions"
	MemoryDir    = "memory-bank"
	ScriptsDir   = "scripts"
)

// Aliases are the dotfiles downstream assistants look for. Each one should
// resolve to CanonicalFile.
var Aliases = []string{
	".cursorrules",
	".windsurfrules",
	".clinerules",
}

// ScaffoldDirs must exist after any successful run, whether or not the
// template tree carries files under them. Slash-separated.
var ScaffoldDirs = []string{
	RulesDir,
	DecisionsDir,
	MemoryDir,
	ScriptsDir,
}

// Root is a template tree: a filesystem to read from plus, for trees on disk,
// the absolute directory it was opened from.
type Root struct {
	FS  fs.FS
	Dir string
}

// Embedded returns the template tree compiled into the binary.
func Embedded() Root {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return Root{FS: sub}
}

// FromDir returns a Root reading from dir on disk. The directory is not
// checked here; a missing tree surfaces when it is enumerated.
func FromDir(dir string) (Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, err
	}
	return Root{FS: os.DirFS(abs), Dir: abs}, nil
}

// IsZero reports whether r has no filesystem attached.
func (r Root) IsZero() bool {
	return r.FS == nil
}

// OnDisk reports whether r reads from a real directory.
func (r Root) OnDisk() bool {
	return r.Dir != ""
}

// String describes the root for logs and error messages.
func (r Root) String() string {
	if r.OnDisk() {
		return r.Dir
	}
	return "(embedded templates)"
}
