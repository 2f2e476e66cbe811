package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitmaxd/ai-init/internal/config"
	"github.com/Gitmaxd/ai-init/internal/installer"
	"github.com/Gitmaxd/ai-init/internal/testutil"
)

// resetFlags restores every flag to its default so runs don't leak into
// each other through the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("AIINIT_HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCreateCommand(t *testing.T) {
	work := t.TempDir()

	code, out, errOut := execute(t, "create", "proj", "--dir", work)
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "rules.yaml")
	assert.Contains(t, out, "Next: cd proj")
	assert.Contains(t, out, "sh scripts/new-decision.sh")
	assert.FileExists(t, filepath.Join(work, "proj", "rules.yaml"))
}

func TestCreateCommandExitCodes(t *testing.T) {
	work := t.TempDir()
	testutil.WriteTree(t, work, map[string]string{"taken/notes.txt": "x"})

	code, _, errOut := execute(t, "create", "bad name!", "--dir", work)
	assert.Equal(t, ExitInvalidName, code)
	assert.Contains(t, errOut, "invalid project name")
	assert.Contains(t, errOut, "  - ")

	code, _, _ = execute(t, "create", "taken", "--dir", work)
	assert.Equal(t, ExitTargetError, code)

	code, _, _ = execute(t, "create", "x", "--dir", work, "--template-dir", filepath.Join(work, "none"))
	assert.Equal(t, ExitTemplateError, code)

	code, _, _ = execute(t, "create", "--dir", work)
	assert.Equal(t, ExitGeneralError, code, "missing argument is a usage error")
}

func TestAddCommandKeepsFiles(t *testing.T) {
	work := t.TempDir()
	testutil.WriteTree(t, work, map[string]string{"rules.yaml": "CUSTOM"})

	code, out, errOut := execute(t, "add", "--dir", work, "--skip-aliases")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "kept existing")

	data, err := os.ReadFile(filepath.Join(work, "rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM", string(data))
	assert.NoFileExists(t, filepath.Join(work, ".cursorrules"))
}

func TestVerboseFlagReachesInstaller(t *testing.T) {
	work := t.TempDir()

	code, _, errOut := execute(t, "create", "quiet", "--dir", work)
	require.Equal(t, ExitSuccess, code, errOut)
	assert.NotContains(t, errOut, "copied")

	code, _, errOut = execute(t, "create", "loud", "--dir", work, "-v")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, errOut, "copied")
	assert.True(t, config.Current().Verbose)
}

func TestDoctorCommand(t *testing.T) {
	work := t.TempDir()

	code, out, _ := execute(t, "doctor", "--dir", work)
	assert.Equal(t, ExitGeneralError, code)
	assert.Contains(t, out, "[MISS]")

	code, out, errOut := execute(t, "doctor", "--dir", work, "--fix")
	assert.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "[FIX ]")

	code, _, _ = execute(t, "doctor", "--dir", work)
	assert.Equal(t, ExitSuccess, code)
}

func TestConfigCommands(t *testing.T) {
	code, out, errOut := execute(t, "config", "set", "concurrency", "3")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "Set concurrency = 3")

	code, _, _ = execute(t, "config", "set", "concurrency", "many")
	assert.Equal(t, ExitGeneralError, code)

	code, out, _ = execute(t, "config", "list")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "skip_aliases = false")
}

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	code, out, _ := execute(t, "version", "--short")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1.2.3\n", out)

	_, out, _ = execute(t, "version", "--json")
	assert.Contains(t, out, `"commit": "abc123"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneralError},
		{installer.ErrInvalidName, ExitInvalidName},
		{installer.ErrDirectoryNotEmpty, ExitTargetError},
		{installer.ErrInvalidTarget, ExitTargetError},
		{installer.ErrTemplateNotFound, ExitTemplateError},
		{fmt.Errorf("wrapped: %w", installer.ErrDirectoryCreateFailed), ExitWriteError},
		{installer.ErrFileCopyFailed, ExitWriteError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
		assert.NotEqual(t, "Unknown", ExitCodeName(tt.want))
	}
}

func TestReportErrorVerbose(t *testing.T) {
	err := &installer.Error{
		Kind:    installer.KindFileCopyFailed,
		Message: "1 of 9 template files could not be written",
		Details: []string{"rules/workflow.md: permission denied"},
		Err:     os.ErrPermission,
	}

	var quiet bytes.Buffer
	reportError(&quiet, err, false)
	assert.Contains(t, quiet.String(), "rules/workflow.md: permission denied")
	assert.NotContains(t, quiet.String(), "cause:")

	var loud bytes.Buffer
	reportError(&loud, err, true)
	assert.Contains(t, loud.String(), "cause: permission denied")
}
