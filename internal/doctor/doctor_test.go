package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitmaxd/ai-init/internal/installer"
	"github.com/Gitmaxd/ai-init/internal/testutil"
)

func statusOf(r *Report, subject string) []Status {
	var out []Status
	for _, c := range r.Checks {
		if c.Subject == subject {
			out = append(out, c.Status)
		}
	}
	return out
}

func TestFreshProjectIsHealthy(t *testing.T) {
	root := t.TempDir()
	_, err := installer.AddToExisting(context.Background(), installer.Options{WorkDir: root})
	require.NoError(t, err)

	report, err := Run(root, Options{})
	require.NoError(t, err)
	assert.True(t, report.Healthy(), "%+v", report.Checks)
	assert.Equal(t, []Status{StatusOK}, statusOf(report, "rules.yaml/version"))
}

func TestEmptyDirectoryReportsMissing(t *testing.T) {
	root := t.TempDir()

	report, err := Run(root, Options{})
	require.NoError(t, err)
	assert.False(t, report.Healthy())
	assert.Equal(t, []Status{StatusMissing}, statusOf(report, "docs/decisions/"))
	assert.Equal(t, []Status{StatusMissing}, statusOf(report, "rules.yaml"))
	assert.Equal(t, []Status{StatusMissing}, statusOf(report, ".cursorrules"))
	assert.Empty(t, testutil.Snapshot(t, root), "a plain check writes nothing")
}

func TestFixCreatesWithoutOverwriting(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"rules.yaml":  "version: 1.0.0\nrules: []\n",
		".clinerules": "hand written",
	})

	report, err := Run(root, Options{Fix: true})
	require.NoError(t, err)

	assert.Equal(t, []Status{StatusFixed}, statusOf(report, "memory-bank/"))
	assert.Equal(t, []Status{StatusFixed}, statusOf(report, ".cursorrules"))
	assert.Equal(t, []Status{StatusWarn}, statusOf(report, ".clinerules"))

	data, err := os.ReadFile(filepath.Join(root, ".clinerules"))
	require.NoError(t, err)
	assert.Equal(t, "hand written", string(data))
	assert.DirExists(t, filepath.Join(root, "docs", "decisions"))

	again, err := Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusOK}, statusOf(again, ".cursorrules"))
}

func TestFixRestoresRulesFile(t *testing.T) {
	root := t.TempDir()

	report, err := Run(root, Options{Fix: true})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusFixed}, statusOf(report, "rules.yaml"))
	assert.FileExists(t, filepath.Join(root, "rules.yaml"))
	assert.Equal(t, []Status{StatusFixed}, statusOf(report, ".windsurfrules"))
	assert.True(t, report.Healthy())
}

func TestInvalidRulesWarn(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"rules.yaml": "rules:\n  - id: NOPE\n    description: x\n"})

	report, err := Run(root, Options{})
	require.NoError(t, err)
	statuses := statusOf(report, "rules.yaml")
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.Equal(t, StatusWarn, s)
	}
}

func TestOutdatedRulesVersion(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"rules.yaml": "version: 0.9.0\nrules: []\n"})

	report, err := Run(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusWarn}, statusOf(report, "rules.yaml/version"))
}

func TestRunRejectsFile(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"f": "x"})

	_, err := Run(filepath.Join(root, "f"), Options{})
	assert.Error(t, err)
	_, err = Run(filepath.Join(root, "missing"), Options{})
	assert.Error(t, err)
}
