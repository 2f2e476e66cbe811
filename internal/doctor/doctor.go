// Package doctor checks a scaffolded project for missing scaffold
// directories, an invalid or outdated rules.yaml, and aliases that no longer
// resolve to it. With Fix set it creates what is missing and never touches
// what exists.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/Gitmaxd/ai-init/internal/linker"
	"github.com/Gitmaxd/ai-init/internal/manifest"
	"github.com/Gitmaxd/ai-init/internal/materialize"
	"github.com/Gitmaxd/ai-init/internal/platform"
	"github.com/Gitmaxd/ai-init/internal/templates"
)

// Status is the verdict for one check.
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
	StatusWarn    Status = "warn"
	StatusFail    Status = "fail"
	StatusFixed   Status = "fixed"
)

// Check is one line of the report.
type Check struct {
	Subject string
	Status  Status
	Detail  string
}

// Report collects every check for a project.
type Report struct {
	Root   string
	Checks []Check
}

// Healthy reports whether nothing is left to fix.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		switch c.Status {
		case StatusMissing, StatusWarn, StatusFail:
			return false
		}
	}
	return true
}

func (r *Report) add(subject string, status Status, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Subject: subject, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Options configures a doctor run.
type Options struct {
	// FS defaults to the host filesystem.
	FS platform.FS
	// Template supplies the reference rules.yaml; zero means embedded.
	Template templates.Root
	Fix      bool
}

// Run inspects the project at root. The error return is reserved for a root
// that cannot be inspected at all.
func Run(root string, opts Options) (*Report, error) {
	if opts.FS == nil {
		opts.FS = platform.OSFS{}
	}
	if opts.Template.IsZero() {
		opts.Template = templates.Embedded()
	}

	info, err := opts.FS.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	r := &Report{Root: root}
	checkDirs(r, opts)
	checkRules(r, opts)
	checkAliases(r, opts)
	return r, nil
}

func checkDirs(r *Report, opts Options) {
	for _, d := range templates.ScaffoldDirs {
		p := filepath.Join(r.Root, filepath.FromSlash(d))
		info, err := opts.FS.Stat(p)
		switch {
		case err == nil && info.IsDir():
			r.add(d+"/", StatusOK, "present")
		case err == nil:
			r.add(d+"/", StatusFail, "exists but is not a directory")
		case !errors.Is(err, fs.ErrNotExist):
			r.add(d+"/", StatusFail, "%v", err)
		case opts.Fix:
			if err := materialize.EnsureDirectories(opts.FS, r.Root, []string{d}); err != nil {
				r.add(d+"/", StatusFail, "%v", err)
				continue
			}
			r.add(d+"/", StatusFixed, "created")
		default:
			r.add(d+"/", StatusMissing, "does not exist")
		}
	}
}

func checkRules(r *Report, opts Options) {
	name := templates.CanonicalFile
	p := filepath.Join(r.Root, name)

	data, err := opts.FS.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		if !opts.Fix {
			r.add(name, StatusMissing, "does not exist")
			return
		}
		if _, err := materialize.CopyFile(opts.Template.FS, name, opts.FS, p, true); err != nil {
			r.add(name, StatusFail, "%v", err)
			return
		}
		r.add(name, StatusFixed, "copied from templates")
		return
	}
	if err != nil {
		r.add(name, StatusFail, "%v", err)
		return
	}

	vr, err := manifest.ValidateRules(data)
	if err != nil {
		r.add(name, StatusFail, "%v", err)
		return
	}
	if !vr.Valid {
		for _, msg := range vr.Messages() {
			r.add(name, StatusWarn, "%s", msg)
		}
		return
	}
	r.add(name, StatusOK, "valid")
	checkRulesVersion(r, opts, data)
}

// checkRulesVersion flags a project whose rules predate the template's.
func checkRulesVersion(r *Report, opts Options, data []byte) {
	ref, err := fs.ReadFile(opts.Template.FS, templates.CanonicalFile)
	if err != nil {
		return
	}
	want, err1 := manifest.ParseRules(ref)
	have, err2 := manifest.ParseRules(data)
	if err1 != nil || err2 != nil {
		return
	}
	wv, err1 := semver.NewVersion(want.Version)
	hv, err2 := semver.NewVersion(have.Version)
	if err1 != nil || err2 != nil {
		return
	}
	subject := path.Join(templates.CanonicalFile, "version")
	if hv.LessThan(wv) {
		r.add(subject, StatusWarn, "%s is older than the template's %s", hv, wv)
		return
	}
	r.add(subject, StatusOK, "%s", hv)
}

func checkAliases(r *Report, opts Options) {
	var missing []string
	for _, alias := range templates.Aliases {
		state, err := linker.Inspect(opts.FS, r.Root, templates.CanonicalFile, alias)
		switch {
		case err != nil:
			r.add(alias, StatusFail, "%v", err)
		case state == linker.StateMissing && opts.Fix:
			missing = append(missing, alias)
		case state == linker.StateMissing:
			r.add(alias, StatusMissing, "does not exist")
		case state == linker.StateDrifted:
			r.add(alias, StatusWarn, "differs from %s", templates.CanonicalFile)
		default:
			r.add(alias, StatusOK, "%s", state)
		}
	}
	if len(missing) == 0 {
		return
	}

	backend := linker.Select(opts.FS, r.Root)
	for _, res := range linker.LinkAliases(opts.FS, r.Root, templates.CanonicalFile, missing, backend) {
		switch res.Status {
		case linker.StatusLinked, linker.StatusCopied:
			r.add(res.Alias, StatusFixed, "%s", res.Status)
		case linker.StatusSkipped:
			r.add(res.Alias, StatusMissing, "no %s to link to", templates.CanonicalFile)
		case linker.StatusSkippedExists:
			r.add(res.Alias, StatusOK, "present")
		default:
			r.add(res.Alias, StatusFail, "%v", res.Err)
		}
	}
}
