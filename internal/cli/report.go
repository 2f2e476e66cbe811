package cli

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Gitmaxd/ai-init/internal/doctor"
	"github.com/Gitmaxd/ai-init/internal/installer"
	"github.com/Gitmaxd/ai-init/internal/linker"
	"github.com/Gitmaxd/ai-init/internal/naming"
	"github.com/Gitmaxd/ai-init/internal/output"
)

var printer = message.NewPrinter(language.English)

func printResult(w io.Writer, res *installer.Result) {
	for _, rel := range res.Copied {
		output.Printf(w, output.OK, "created %s", output.StyleNoun.Render(rel))
	}
	for _, rel := range res.Skipped {
		output.Printf(w, output.Skip, "kept existing %s", output.StyleNoun.Render(rel))
	}
	for _, rel := range res.Failed {
		output.Printf(w, output.Fail, "could not write %s", output.StyleNoun.Render(rel))
	}
	for _, a := range res.Aliases {
		switch a.Status {
		case linker.StatusLinked, linker.StatusCopied:
			output.Printf(w, output.OK, "%s %s", a.Status, output.StyleNoun.Render(a.Alias))
		case linker.StatusFailed:
			// reported with the warnings below
		default:
			output.Printf(w, output.Skip, "alias %s %s", a.Alias, a.Status)
		}
	}
	if sum := res.ManifestSummary; sum != nil && sum.NeedsAttention() {
		output.Printf(w, output.Warn, "existing package.json kept; merge by hand:")
		for _, line := range sum.Lines() {
			fmt.Fprintln(w, "       "+line)
		}
	}
	for _, warning := range res.Warnings {
		output.Printf(w, output.Warn, "%s", warning)
	}

	fmt.Fprintln(w, output.StyleHeading.Render(
		printer.Sprintf("%d files written, %d kept, %d failed", len(res.Copied), len(res.Skipped), len(res.Failed))))
}

func printDoctor(w io.Writer, r *doctor.Report) {
	fmt.Fprintln(w, output.StyleHeading.Render("Project check: "+r.Root))
	for _, c := range r.Checks {
		marker := output.OK
		switch c.Status {
		case doctor.StatusMissing:
			marker = output.Miss
		case doctor.StatusWarn:
			marker = output.Warn
		case doctor.StatusFail:
			marker = output.Fail
		case doctor.StatusFixed:
			marker = output.Fix
		}
		output.Printf(w, marker, "%s %s", output.StyleNoun.Render(c.Subject), output.StyleDim.Render(c.Detail))
	}
}

// reportError prints err for the user. Installer errors get their kind's
// message plus details, and the wrapped cause only when verbose.
func reportError(w io.Writer, err error, verbose bool) {
	var ie *installer.Error
	if !errors.As(err, &ie) {
		output.Printf(w, output.Fail, "%v", err)
		if verbose {
			fmt.Fprintf(w, "  (%T)\n", err)
		}
		return
	}

	output.Printf(w, output.Fail, "%s", ie.Message)
	switch ie.Kind {
	case installer.KindInvalidName:
		fmt.Fprint(w, naming.ErrorList(ie.Details))
	case installer.KindFileCopyFailed:
		for _, d := range ie.Details {
			fmt.Fprintln(w, "  - "+d)
		}
	}
	if verbose && ie.Err != nil {
		fmt.Fprintf(w, "  cause: %v\n", ie.Err)
	}
}
