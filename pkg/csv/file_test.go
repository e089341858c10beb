package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-dev/tabular/pkg/compression"
	"github.com/tabular-dev/tabular/pkg/taberrors"
	"github.com/tabular-dev/tabular/pkg/testutil"
)

func TestFileRoundTripPlain(t *testing.T) {
	tbl := mixedTable(t)
	path := filepath.Join(t.TempDir(), "data.csv")

	require.NoError(t, WriteFile(path, tbl, WriteOptions{}))

	back, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

func TestFileRoundTripCompressed(t *testing.T) {
	tbl := buildLargeTable(t, 2000)

	for _, ext := range []string{".gz", ".zst", ".lz4", ".sz"} {
		path := filepath.Join(t.TempDir(), "data.csv"+ext)
		require.NoError(t, WriteFile(path, tbl, WriteOptions{}), ext)

		// The file on disk must actually be compressed.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, compression.None, compression.DetectAlgorithm(raw), ext)

		back, err := ReadFile(path, ReadOptions{})
		require.NoError(t, err, ext)
		testutil.RequireTablesEqual(t, tbl, back)
	}
}

func TestReadFileDetectsCompressionWithoutExtension(t *testing.T) {
	tbl := mixedTable(t)
	data, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)
	compressed, err := compression.Compress(compression.Gzip, data)
	require.NoError(t, err)

	// Extension says plain CSV; magic bytes say gzip.
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, compressed, 0o644))

	back, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"), ReadOptions{})
	require.Error(t, err)
	assert.True(t, taberrors.IsType(err, taberrors.ErrorTypeFile))
}
