package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Gitmaxd/ai-init/internal/linker"
	"github.com/Gitmaxd/ai-init/internal/manifest"
	"github.com/Gitmaxd/ai-init/internal/materialize"
	"github.com/Gitmaxd/ai-init/internal/naming"
	"github.com/Gitmaxd/ai-init/internal/platform"
	"github.com/Gitmaxd/ai-init/internal/templates"
)

// CreateNew scaffolds a new project directory named name inside
// opts.WorkDir. The directory may already exist as long as it is empty. The
// name is validated before anything on disk is touched.
func CreateNew(ctx context.Context, name string, opts Options) (*Result, error) {
	if v := naming.Validate(name); !v.Valid {
		return nil, &Error{
			Kind:    KindInvalidName,
			Message: fmt.Sprintf("invalid project name %q", name),
			Details: v.Errors,
		}
	}

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, newError(KindInvalidTarget, "", err, "resolving working directory")
	}

	files, err := listTemplate(opts.Template)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(opts.WorkDir, name)
	if err := prepareNew(opts, root); err != nil {
		return nil, err
	}
	opts.Logger.Info("creating project", "path", root)

	return materializeInto(ctx, opts, root, files, false)
}

// AddToExisting scaffolds into opts.WorkDir without overwriting any file
// that is already there.
func AddToExisting(ctx context.Context, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, newError(KindInvalidTarget, "", err, "resolving working directory")
	}

	root := opts.WorkDir
	info, err := opts.FS.Stat(root)
	if err != nil {
		return nil, newError(KindInvalidTarget, root, err, "cannot use %s", root)
	}
	if !info.IsDir() {
		return nil, newError(KindInvalidTarget, root, nil, "%s is not a directory", root)
	}

	files, err := listTemplate(opts.Template)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("adding to project", "path", root)

	return materializeInto(ctx, opts, root, files, true)
}

func listTemplate(tmpl templates.Root) ([]string, error) {
	files, err := materialize.ListFiles(tmpl)
	if err != nil {
		return nil, newError(KindTemplateNotFound, tmpl.Dir, err, "reading templates from %s", tmpl)
	}
	return files, nil
}

// prepareNew makes sure root is an empty directory, creating it if needed.
func prepareNew(opts Options, root string) error {
	info, err := opts.FS.Lstat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := opts.FS.MkdirAll(root, platform.DirPerm); err != nil {
			return newError(KindDirectoryCreateFailed, root, err, "creating %s", root)
		}
		opts.trace("mkdir", "path", root)
		return nil
	case err != nil:
		return newError(KindInvalidTarget, root, err, "cannot use %s", root)
	case !info.IsDir():
		return newError(KindInvalidTarget, root, nil, "%s exists and is not a directory", root)
	}

	entries, err := opts.FS.ReadDir(root)
	if err != nil {
		return newError(KindInvalidTarget, root, err, "reading %s", root)
	}
	if len(entries) > 0 {
		return newError(KindDirectoryNotEmpty, root, nil, "directory %s already exists and is not empty", root)
	}
	return nil
}

func materializeInto(ctx context.Context, opts Options, root string, files []string, preserve bool) (*Result, error) {
	plan, err := materialize.Plan(files, root)
	if err != nil {
		return nil, newError(KindTemplateNotFound, opts.Template.Dir, err, "planning copy from %s", opts.Template)
	}

	if err := ensureDirs(opts, root, materialize.ParentDirs(files)); err != nil {
		return nil, err
	}

	report := materialize.CopyAll(ctx, opts.Template.FS, plan, materialize.CopyOptions{
		Preserve:    preserve,
		Concurrency: opts.Concurrency,
		FS:          opts.FS,
		Trace:       opts.trace,
	})

	res := &Result{
		Root:    root,
		Copied:  report.Copied(),
		Skipped: report.Skipped(),
	}
	for _, rel := range res.Skipped {
		opts.trace("kept existing file", "path", rel)
	}

	if err := ensureDirs(opts, root, templates.ScaffoldDirs); err != nil {
		return res, err
	}

	if !opts.SkipAliasLinking {
		linkAliases(opts, root, res)
	}
	if preserve && contains(res.Skipped, templates.ManifestFile) {
		summarizeManifest(opts, root, res)
	}
	checkRules(opts, root, res)

	if failed := report.Failed(); len(failed) > 0 {
		e := &Error{
			Kind:    KindFileCopyFailed,
			Message: fmt.Sprintf("%d of %d template files could not be written", len(failed), len(plan)),
			Path:    failed[0].Entry.Dst,
			Err:     failed[0].Err,
		}
		for _, f := range failed {
			res.Failed = append(res.Failed, f.Entry.Rel)
			e.Details = append(e.Details, fmt.Sprintf("%s: %v", f.Entry.Rel, f.Err))
		}
		return res, e
	}
	return res, nil
}

func ensureDirs(opts Options, root string, dirs []string) error {
	if err := materialize.EnsureDirectories(opts.FS, root, dirs); err != nil {
		path := root
		var de *materialize.DirError
		if errors.As(err, &de) {
			path = de.Path
		}
		return newError(KindDirectoryCreateFailed, path, errors.Unwrap(err), "creating directory %s", path)
	}
	for _, d := range dirs {
		opts.trace("ensured directory", "path", d)
	}
	return nil
}

func linkAliases(opts Options, root string, res *Result) {
	backend := linker.Select(opts.FS, root)
	res.Backend = backend.Name()
	res.Aliases = linker.LinkAliases(opts.FS, root, templates.CanonicalFile, templates.Aliases, backend)

	for _, a := range res.Aliases {
		if a.Status == linker.StatusFailed {
			msg := fmt.Sprintf("alias %s not created: %v", a.Alias, a.Err)
			res.Warnings = append(res.Warnings, msg)
			opts.trace("alias not created", "alias", a.Alias, "err", a.Err)
			continue
		}
		opts.trace("alias", "alias", a.Alias, "status", a.Status, "backend", res.Backend)
	}
}

func summarizeManifest(opts Options, root string, res *Result) {
	tmpl, err := fs.ReadFile(opts.Template.FS, templates.ManifestFile)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("reading template %s: %v", templates.ManifestFile, err))
		return
	}
	existing, err := opts.FS.ReadFile(filepath.Join(root, templates.ManifestFile))
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("reading %s: %v", templates.ManifestFile, err))
		return
	}
	sum, err := manifest.Summarize(tmpl, existing)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("comparing %s: %v", templates.ManifestFile, err))
		return
	}
	res.ManifestSummary = sum
	if sum.NeedsAttention() {
		for _, line := range sum.Lines() {
			opts.trace("package.json entry needs merging", "entry", line)
		}
	}
}

// checkRules validates whatever rules.yaml the project now has. A malformed
// file is reported, never rewritten.
func checkRules(opts Options, root string, res *Result) {
	data, err := opts.FS.ReadFile(filepath.Join(root, templates.CanonicalFile))
	if err != nil {
		return
	}
	vr, err := manifest.ValidateRules(data)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", templates.CanonicalFile, err))
		return
	}
	for _, msg := range vr.Messages() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s %s", templates.CanonicalFile, msg))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
