package csv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabular-dev/tabular/pkg/frame"
	"github.com/tabular-dev/tabular/pkg/testutil"
)

func TestRoundTripMixedTypes(t *testing.T) {
	tbl := mixedTable(t)

	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)

	back, err := Read(out, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

func TestRoundTripQuotedStrings(t *testing.T) {
	tbl, err := frame.NewTable(
		frame.NewStringColumn("s", []string{`a "b" c`, "x,y", "lines\nhere", "plain", ""},
			[]bool{false, false, false, false, true}),
		// 3e9 keeps the column Int64 on re-read; integer text always
		// parses at the narrowest width that holds every value.
		frame.NewInt64Column("n", []int64{1, 2, 3000000000, 4, 5}, nil),
	)
	require.NoError(t, err)

	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)

	back, err := Read(out, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

// Integer text carries no width marker, so a column holds its width
// through a round trip only when some value actually needs it; otherwise
// re-reading settles on the narrower type with the same values.
func TestRoundTripIntegerWidths(t *testing.T) {
	wide, err := frame.NewTable(
		frame.NewInt64Column("n", []int64{1, 2, 3000000000}, nil),
	)
	require.NoError(t, err)

	out, err := Write(wide, WriteOptions{})
	require.NoError(t, err)
	back, err := Read(out, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, wide, back)

	small, err := frame.NewTable(
		frame.NewInt64Column("n", []int64{6, 7, 8}, nil),
	)
	require.NoError(t, err)

	out, err = Write(small, WriteOptions{})
	require.NoError(t, err)
	back, err = Read(out, ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, []frame.Type{frame.Int32}, back.Types())
	col := back.ColumnAt(0).(*frame.Int32Column)
	for i, want := range []int32{6, 7, 8} {
		got, ok := col.Int32(i)
		require.True(t, ok, "row %d unexpectedly NA", i)
		require.Equal(t, want, got, "row %d", i)
	}
}

// Leading-zero integral tokens never parse as numbers, so their text
// survives a round trip unchanged.
func TestRoundTripLeadingZeroText(t *testing.T) {
	tbl, err := frame.NewTable(
		frame.NewStringColumn("code", []string{"007", "+01", "042", "0"}, nil),
	)
	require.NoError(t, err)

	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, "code\n007\n+01\n042\n0\n", string(out))

	back, err := Read(out, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

func TestRoundTripFloatsKeepType(t *testing.T) {
	tbl, err := frame.NewTable(
		frame.NewFloat64Column("f", []float64{0, 1, 2.5, -1e-9, 6.02e23}, nil),
	)
	require.NoError(t, err)

	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)

	back, err := Read(out, ReadOptions{})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, back)
}

// buildLargeTable produces a table exercising every column type with NAs
// scattered through each column.
func buildLargeTable(t *testing.T, n int) *frame.Table {
	t.Helper()

	ids := make([]int32, n)
	flags := make([]bool, n)
	flagNA := make([]bool, n)
	vals := make([]float64, n)
	valNA := make([]bool, n)
	labels := make([]string, n)
	labelNA := make([]bool, n)

	words := []string{"alpha", "beta,gamma", `q"q`, "delta", "eps\nilon", "zeta"}
	for i := 0; i < n; i++ {
		ids[i] = int32(i)
		flags[i] = i%2 == 1
		flagNA[i] = i%5 == 0
		vals[i] = float64(i) * 0.5
		valNA[i] = i%11 == 0
		labels[i] = words[i%len(words)]
		labelNA[i] = i%13 == 0
	}

	tbl, err := frame.NewTable(
		frame.NewInt32Column("id", ids, nil),
		frame.NewBoolColumn("flag", flags, flagNA),
		frame.NewFloat64Column("value", vals, valNA),
		frame.NewStringColumn("label", labels, labelNA),
	)
	require.NoError(t, err)
	return tbl
}

// A prime row count guarantees rows straddle every chunk boundary layout.
func TestRoundTripLargePrimeRowCount(t *testing.T) {
	if testing.Short() {
		t.Skip("large round trip skipped in short mode")
	}
	const rows = 999983

	tbl := buildLargeTable(t, rows)
	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)

	for _, threads := range []int{1, 4, 13} {
		back, err := Read(out, ReadOptions{Threads: threads})
		require.NoError(t, err, "threads=%d", threads)
		require.Equal(t, rows, back.NumRows(), "threads=%d", threads)
		testutil.RequireTablesEqual(t, tbl, back)
	}
}

// The parsed table must not depend on where chunk boundaries land, even
// when quoted fields containing delimiters and newlines straddle them.
func TestReadChunkingIndependence(t *testing.T) {
	tbl := buildLargeTable(t, 5000)
	out, err := Write(tbl, WriteOptions{})
	require.NoError(t, err)

	reference, err := Read(out, ReadOptions{Threads: 1})
	require.NoError(t, err)
	testutil.RequireTablesEqual(t, tbl, reference)

	for _, opt := range []ReadOptions{
		{Threads: 2, minChunkBytes: 512},
		{Threads: 8, minChunkBytes: 1024},
		{Threads: 64, minChunkBytes: 256},
	} {
		back, err := Read(out, opt)
		require.NoError(t, err, "threads=%d minChunk=%d", opt.Threads, opt.minChunkBytes)
		testutil.RequireTablesEqual(t, reference, back)
	}
}
