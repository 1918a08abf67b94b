// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlaneve/trellodown/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	_, statErr := os.Stat(filepath.Join(dir, indexDir, dbFile))
	assert.NoError(t, statErr)
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)
	b := &types.Board{ID: "b1", Name: "Product Board"}

	runID, err := s.BeginRun(b, true)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	att := &types.Attachment{ID: "a1", Name: "diagram.png", URL: "https://x/a1"}
	require.NoError(t, s.RecordAttachment(runID, "Roadmap", att, types.Outcome{
		AttachmentID: "a1", LocalPath: "out/attachments/Roadmap_diagram.png", Succeeded: true,
	}))
	require.NoError(t, s.RecordAttachment(runID, "Roadmap", &types.Attachment{ID: "a2", Name: "spec.pdf"}, types.Outcome{
		AttachmentID: "a2",
	}))

	require.NoError(t, s.FinishRun(runID, 5, 1, 1, 0))

	succeeded, failed, err := s.RunCounts(runID)
	require.NoError(t, err)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
}

func TestRunsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	b := &types.Board{ID: "b1", Name: "Board"}

	first, err := s.BeginRun(b, false)
	require.NoError(t, err)
	second, err := s.BeginRun(b, true)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	att := &types.Attachment{ID: "a1", Name: "x"}
	require.NoError(t, s.RecordAttachment(first, "Card", att, types.Outcome{Succeeded: true}))

	succeeded, failed, err := s.RunCounts(second)
	require.NoError(t, err)
	assert.Zero(t, succeeded)
	assert.Zero(t, failed)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening an existing database must not fail on schema bootstrap.
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	_, err = s2.BeginRun(&types.Board{ID: "b"}, false)
	assert.NoError(t, err)
}
