package uploads_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/ganot/procflow/internal/uploads"
)

func TestDisk_SaveStoresPayload(t *testing.T) {
	dir := t.TempDir()
	disk, err := uploads.NewDisk(dir)
	require.NoError(t, err)

	att, err := disk.Save(context.Background(), "quote.pdf", strings.NewReader("payload"))
	require.NoError(t, err)

	require.Equal(t, "quote.pdf", att.OriginalName)
	require.NotEqual(t, "quote.pdf", att.StoredName)
	require.True(t, strings.HasSuffix(att.StoredName, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, att.StoredName))
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))
}

func TestDisk_SaveGeneratesDistinctNames(t *testing.T) {
	disk, err := uploads.NewDisk(t.TempDir())
	require.NoError(t, err)

	a, err := disk.Save(context.Background(), "quote.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	b, err := disk.Save(context.Background(), "quote.pdf", strings.NewReader("two"))
	require.NoError(t, err)

	require.NotEqual(t, a.StoredName, b.StoredName)
}

func TestDisk_Remove(t *testing.T) {
	dir := t.TempDir()
	disk, err := uploads.NewDisk(dir)
	require.NoError(t, err)

	att, err := disk.Save(context.Background(), "quote.pdf", strings.NewReader("payload"))
	require.NoError(t, err)

	require.NoError(t, disk.Remove(context.Background(), att))
	_, statErr := os.Stat(filepath.Join(dir, att.StoredName))
	require.True(t, os.IsNotExist(statErr))

	// Removing an already-gone payload is not an error.
	require.NoError(t, disk.Remove(context.Background(), att))
}

func TestDisk_RemoveIgnoresPathTraversal(t *testing.T) {
	disk, err := uploads.NewDisk(t.TempDir())
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	att := process.Attachment{StoredName: "../" + filepath.Base(outside)}
	_ = disk.Remove(context.Background(), att)

	_, statErr := os.Stat(outside)
	require.NoError(t, statErr)
}
