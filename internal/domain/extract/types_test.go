package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	want := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)

	// Month abbreviation casing does not matter.
	for _, in := range []string{"30-Sep-2024", "30-SEP-2024", "30-sep-2024"} {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"2024-09-30", "30/09/2024", "30-September-2024", "", "32-Sep-2024"} {
		_, err := ParsePeriod(in)
		assert.Error(t, err, in)
	}
}

func TestAppendDebugIsAdditive(t *testing.T) {
	var e ResultEnvelope

	e.AppendDebug("first problem")
	e.AppendDebug("second problem")
	e.AppendDebug("")

	assert.Equal(t, "first problem | second problem", e.Debug)
}

func TestTableRoundTrip(t *testing.T) {
	cols := []string{"A", "B", "C"}
	rows := [][]any{{1, "two", 3.0}, {4, "five", 6.0}}

	table, err := shape(cols, Result{Rows: rows})
	require.NoError(t, err)

	// Re-reading named fields yields the original values in order.
	for i, row := range table.Rows {
		byName := make(map[string]any, len(cols))
		for j, c := range table.Columns {
			byName[c] = row[j]
		}
		for j, c := range cols {
			assert.Equal(t, rows[i][j], byName[c])
		}
	}
}

func TestShapeRejectsArityMismatch(t *testing.T) {
	_, err := shape([]string{"A", "B"}, Result{Rows: [][]any{{1, 2, 3}}})
	assert.Error(t, err)
}

func TestSingleDayRangeIsValid(t *testing.T) {
	s := newTestService(&fakeExecutor{}, &fakeGate{})
	req := validRequest()
	req.StartPeriod = "30-Sep-2024"
	req.EndPeriod = "30-Sep-2024"

	out := s.Read(context.Background(), req)
	assert.NotContains(t, out.Debug, "Invalid period range")
}
