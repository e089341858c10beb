// Package testutil provides shared testing helpers.
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/tabular-dev/tabular/pkg/frame"
)

// TestLogger creates a logger that writes to the test output.
// The logger is cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// RequireTablesEqual fails the test when the two tables differ in shape,
// column names, column types, NA positions, or values.
func RequireTablesEqual(t *testing.T, expected, actual *frame.Table) {
	t.Helper()
	if expected.Equal(actual) {
		return
	}
	t.Fatalf("tables differ:\nexpected: %d rows, cols %v types %v\nactual:   %d rows, cols %v types %v",
		expected.NumRows(), expected.Names(), expected.Types(),
		actual.NumRows(), actual.Names(), actual.Types())
}
