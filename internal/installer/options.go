package installer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Gitmaxd/ai-init/internal/linker"
	"github.com/Gitmaxd/ai-init/internal/manifest"
	"github.com/Gitmaxd/ai-init/internal/platform"
	"github.com/Gitmaxd/ai-init/internal/templates"
)

// Options configures a run. The zero value scaffolds the embedded templates
// into the process working directory with aliases and no tracing.
type Options struct {
	// WorkDir is where CreateNew creates the project and what AddToExisting
	// scaffolds into. Empty means the process working directory.
	WorkDir string

	SkipAliasLinking bool

	// Verbose emits one debug event per file, directory and alias to Logger.
	Verbose bool

	// Logger receives warnings always and trace events when Verbose is set.
	// Nil discards everything.
	Logger *log.Logger

	// Template is the tree to materialize; zero means the embedded one.
	Template templates.Root

	// FS is the destination filesystem; nil means the host filesystem.
	FS platform.FS

	// Concurrency caps parallel file copies; zero uses the default.
	Concurrency int
}

// Result describes what a run did. It is returned alongside a FileCopyFailed
// error too, so the caller can report the partial outcome.
type Result struct {
	Root    string
	Copied  []string
	Skipped []string
	Failed  []string

	// Backend is the alias strategy used ("symlink" or "copy"), empty when
	// aliases were not linked.
	Backend string
	Aliases []linker.Result

	// ManifestSummary is set when an existing package.json kept the
	// template's from being written.
	ManifestSummary *manifest.Summary

	// Warnings are non-fatal problems: alias failures and rules.yaml schema
	// violations.
	Warnings []string
}

func (o Options) withDefaults() (Options, error) {
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, err
		}
		o.WorkDir = wd
	}
	abs, err := filepath.Abs(o.WorkDir)
	if err != nil {
		return o, err
	}
	o.WorkDir = abs

	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Template.IsZero() {
		o.Template = templates.Embedded()
	}
	if o.FS == nil {
		o.FS = platform.OSFS{}
	}
	return o, nil
}

func (o Options) trace(msg string, keyvals ...any) {
	if o.Verbose {
		o.Logger.Debug(msg, keyvals...)
	}
}
