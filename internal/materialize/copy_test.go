package materialize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitmaxd/ai-init/internal/platform"
	"github.com/Gitmaxd/ai-init/internal/testutil"
)

func templateFS() fstest.MapFS {
	return fstest.MapFS{
		"rules.yaml":              {Data: []byte("version: 1.0.0\n")},
		"memory-bank/progress.md": {Data: []byte("# Progress\n")},
		"rules/workflow.md":       {Data: []byte("# Workflow\n")},
		"scripts/new-decision.sh": {Data: []byte("#!/bin/sh\n")},
	}
}

func planFor(t *testing.T, root string) []Entry {
	t.Helper()
	plan, err := Plan([]string{
		"memory-bank/progress.md",
		"rules.yaml",
		"rules/workflow.md",
		"scripts/new-decision.sh",
	}, root)
	require.NoError(t, err)
	return plan
}

func TestCopyFileWritesContent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nested", "rules.yaml")

	copied, err := CopyFile(templateFS(), "rules.yaml", platform.OSFS{}, dst, false)
	require.NoError(t, err)
	assert.True(t, copied)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "version: 1.0.0\n", string(data))
}

func TestCopyFilePreserveSkipsExisting(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"rules.yaml": "CUSTOM"})

	copied, err := CopyFile(templateFS(), "rules.yaml", platform.OSFS{}, filepath.Join(root, "rules.yaml"), true)
	require.NoError(t, err)
	assert.False(t, copied)

	data, _ := os.ReadFile(filepath.Join(root, "rules.yaml"))
	assert.Equal(t, "CUSTOM", string(data))
}

func TestCopyFilePreserveTreatsDanglingLinkAsExisting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require developer mode on Windows")
	}
	root := t.TempDir()
	dst := filepath.Join(root, "rules.yaml")
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), dst))

	copied, err := CopyFile(templateFS(), "rules.yaml", platform.OSFS{}, dst, true)
	require.NoError(t, err)
	assert.False(t, copied)

	_, err = os.Stat(filepath.Join(root, "gone"))
	assert.True(t, os.IsNotExist(err), "must not write through the link")
}

func TestCopyFileOverwritesWithoutPreserve(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"rules.yaml": "old content that is longer"})

	copied, err := CopyFile(templateFS(), "rules.yaml", platform.OSFS{}, filepath.Join(root, "rules.yaml"), false)
	require.NoError(t, err)
	assert.True(t, copied)

	data, _ := os.ReadFile(filepath.Join(root, "rules.yaml"))
	assert.Equal(t, "version: 1.0.0\n", string(data))
}

func TestCopyFileRemovesPartialOutput(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "rules.yaml")

	fsys := testutil.NewFaultFS()
	fsys.FailWrite = func(string) error { return errors.New("disk full") }

	copied, err := CopyFile(templateFS(), "rules.yaml", fsys, dst, false)
	require.Error(t, err)
	assert.False(t, copied)
	assert.Contains(t, err.Error(), "disk full")

	_, statErr := os.Lstat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCopyFileMissingSource(t *testing.T) {
	_, err := CopyFile(templateFS(), "nope.md", platform.OSFS{}, filepath.Join(t.TempDir(), "nope.md"), false)
	assert.Error(t, err)
}

func TestCopyAllSequentialAndConcurrentAgree(t *testing.T) {
	for _, n := range []int{1, 4} {
		root := t.TempDir()
		plan := planFor(t, root)

		report := CopyAll(context.Background(), templateFS(), plan, CopyOptions{Concurrency: n})
		require.Len(t, report.Results, len(plan))
		assert.Equal(t, []string{
			"memory-bank/progress.md",
			"rules.yaml",
			"rules/workflow.md",
			"scripts/new-decision.sh",
		}, report.Copied(), "concurrency %d", n)
		assert.Empty(t, report.Skipped())
		assert.Empty(t, report.Failed())

		for i, res := range report.Results {
			assert.Equal(t, plan[i], res.Entry, "results stay in plan order")
		}
	}
}

func TestCopyAllCollectsFailuresAndContinues(t *testing.T) {
	root := t.TempDir()
	plan := planFor(t, root)

	fsys := testutil.NewFaultFS()
	fsys.FailOpen = func(p string) error {
		if filepath.Base(p) == "workflow.md" {
			return os.ErrPermission
		}
		return nil
	}

	report := CopyAll(context.Background(), templateFS(), plan, CopyOptions{FS: fsys})

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "rules/workflow.md", failed[0].Entry.Rel)
	assert.ErrorIs(t, failed[0].Err, os.ErrPermission)
	assert.Len(t, report.Copied(), 3)
}

func TestCopyAllPreserveReportsSkips(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"rules.yaml": "CUSTOM"})
	plan := planFor(t, root)

	report := CopyAll(context.Background(), templateFS(), plan, CopyOptions{Preserve: true})
	assert.Equal(t, []string{"rules.yaml"}, report.Skipped())
	assert.Len(t, report.Copied(), 3)

	data, _ := os.ReadFile(filepath.Join(root, "rules.yaml"))
	assert.Equal(t, "CUSTOM", string(data))
}

func TestCopyAllCanceledContext(t *testing.T) {
	root := t.TempDir()
	plan := planFor(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := CopyAll(ctx, templateFS(), plan, CopyOptions{})
	require.Len(t, report.Failed(), len(plan))
	for _, res := range report.Failed() {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
	assert.Empty(t, testutil.Snapshot(t, root))
}

func TestCopyAllTrace(t *testing.T) {
	root := t.TempDir()
	plan := planFor(t, root)

	var mu sync.Mutex
	var events []string
	trace := func(msg string, keyvals ...any) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, msg)
	}

	CopyAll(context.Background(), templateFS(), plan, CopyOptions{Trace: trace})
	assert.Len(t, events, len(plan))
	for _, e := range events {
		assert.Equal(t, "copied", e)
	}
}
