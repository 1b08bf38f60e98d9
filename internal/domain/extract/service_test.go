package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/pkg/logger"
)

type fakeExecutor struct {
	calls    int
	lastSQL  string
	lastArgs []any
	result   Result
	err      error
}

func (f *fakeExecutor) Query(_ context.Context, _ catalog.DataSource, sql string, args ...any) (Result, error) {
	f.calls++
	f.lastSQL = sql
	f.lastArgs = args
	return f.result, f.err
}

type fakeGate struct {
	calls int
	err   error
}

func (f *fakeGate) Check(context.Context, catalog.DataGroup) error {
	f.calls++
	return f.err
}

func newTestService(exec *fakeExecutor, gate *fakeGate) *Service {
	return NewService(catalog.NewRegistry(), exec, gate, nil, logger.Default())
}

func validRequest() QueryRequest {
	return QueryRequest{
		Group:       catalog.GroupMSP,
		Source:      catalog.SourceBSIS,
		Type:        "01",
		FilterCode:  "MSP042",
		StartPeriod: "01-Sep-2024",
		EndPeriod:   "30-Sep-2024",
	}
}

func TestReadGateFailureSkipsExecution(t *testing.T) {
	exec := &fakeExecutor{}
	gate := &fakeGate{err: errors.New("Invalid license. Please validate your license.")}
	s := newTestService(exec, gate)

	out := s.Read(context.Background(), validRequest())

	assert.Contains(t, out.Debug, "Invalid license. Please validate your license.")
	assert.True(t, out.Table.Empty())
	assert.Equal(t, 0, exec.calls, "executor must not run when the gate fails")
	assert.Equal(t, 1, gate.calls)
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QueryRequest)
		want   string
	}{
		{"unknown group", func(r *QueryRequest) { r.Group = "XYZ" }, "Invalid data group: XYZ"},
		{"unknown source", func(r *QueryRequest) { r.Source = "ORACLE" }, "Invalid data source: ORACLE"},
		{"bad start date", func(r *QueryRequest) { r.StartPeriod = "2024-09-01" },
			"Invalid start_period: 2024-09-01. Expected format: DD-MMM-YYYY"},
		{"bad end date", func(r *QueryRequest) { r.EndPeriod = "31-XXX-2024" },
			"Invalid end_period: 31-XXX-2024. Expected format: DD-MMM-YYYY"},
		{"inverted range", func(r *QueryRequest) { r.StartPeriod = "01-Oct-2024" }, "Invalid period range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			s := newTestService(exec, &fakeGate{})
			req := validRequest()
			tt.mutate(&req)

			out := s.Read(context.Background(), req)

			assert.Contains(t, out.Debug, tt.want)
			assert.True(t, out.Table.Empty())
			assert.Equal(t, 0, exec.calls)
		})
	}
}

func TestReadNoHandlerForReservedGroup(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})
	req := validRequest()
	req.Group = "NPS"

	out := s.Read(context.Background(), req)

	assert.Contains(t, out.Debug, "No handler found for data group: NPS")
	assert.Equal(t, 0, exec.calls)
}

func TestReadFailClosedUnknownType(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})
	req := validRequest()
	req.Group = catalog.GroupITRS
	req.Type = "99"

	out := s.Read(context.Background(), req)

	assert.Contains(t, out.Debug, "Invalid data type: 99.")
	assert.True(t, out.Table.Empty())
	assert.Equal(t, 0, exec.calls, "fail-closed catalogs must not execute a query")
}

func TestReadFailOpenFallback(t *testing.T) {
	exec := &fakeExecutor{result: Result{
		Columns: []string{"institutioncode", "reportingdate", "amount"},
		Rows:    [][]any{{"MSP042", "2024-09-30", 100}},
	}}
	s := newTestService(exec, &fakeGate{})
	req := validRequest()
	req.Type = "99"

	out := s.Read(context.Background(), req)

	assert.Equal(t, 1, exec.calls)
	assert.True(t, strings.HasPrefix(exec.lastSQL, "SELECT * FROM bsis_dev.msp2_99"))
	// Fallback reports take their column names from the result set.
	assert.Equal(t, []string{"institutioncode", "reportingdate", "amount"}, out.Table.Columns)
	assert.Empty(t, out.Debug)
}

func TestReadEmptyResultIsNotAnError(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})

	out := s.Read(context.Background(), validRequest())

	assert.Equal(t, 1, exec.calls)
	assert.True(t, out.Table.Empty())
	assert.Equal(t, "No data found for the given parameters.", out.Info)
	assert.Contains(t, out.Debug, emptyResultNote)
	assert.NotContains(t, out.Debug, "Error")
}

func TestReadShapesAndIsIdempotent(t *testing.T) {
	rows := [][]any{
		{"MSP042", "2024-09-30", 1, "Cash", 100.0},
		{"MSP042", "2024-09-30", 2, "Loans", 250.0},
	}
	exec := &fakeExecutor{result: Result{Rows: rows}}
	s := newTestService(exec, &fakeGate{})

	first := s.Read(context.Background(), validRequest())
	second := s.Read(context.Background(), validRequest())

	require.Empty(t, first.Debug)
	assert.Equal(t, []string{"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"},
		first.Table.Columns)
	assert.Equal(t, rows, first.Table.Rows)
	assert.Equal(t, "Query executed successfully for 01.", first.Info)
	assert.Equal(t, first, second)
}

func TestReadArityMismatchIsCaught(t *testing.T) {
	exec := &fakeExecutor{result: Result{Rows: [][]any{{"only", "four", "values", 4}}}}
	s := newTestService(exec, &fakeGate{})

	out := s.Read(context.Background(), validRequest())

	assert.True(t, out.Table.Empty())
	assert.Contains(t, out.Debug, "Error fetching MSP data:")
	assert.Contains(t, out.Debug, "4 values for 5 columns")
}

func TestReadConnectivityErrorInDebug(t *testing.T) {
	exec := &fakeExecutor{err: apperror.NewConnectivity("BSIS", errors.New("dial tcp: refused"))}
	s := newTestService(exec, &fakeGate{})

	out := s.Read(context.Background(), validRequest())

	assert.True(t, out.Table.Empty())
	assert.Contains(t, out.Debug, "Error fetching MSP data:")
	assert.Contains(t, out.Debug, "unreachable")
}

func TestReadMacroFrequency(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})
	req := QueryRequest{
		Group:       catalog.GroupMacro,
		Source:      catalog.SourceDWH,
		Type:        "CPI",
		FilterCode:  "MONTHLY",
		StartPeriod: "31-Jan-2024",
		EndPeriod:   "31-Dec-2024",
	}

	out := s.Read(context.Background(), req)

	require.Equal(t, 1, exec.calls)
	require.Len(t, exec.lastArgs, 3)
	assert.Equal(t, "M", exec.lastArgs[2])
	assert.NotContains(t, out.Debug, "Invalid")

	req.FilterCode = "WEEKLY"
	out = s.Read(context.Background(), req)
	assert.Contains(t, out.Debug, "Invalid data frequency: WEEKLY.")
	assert.Equal(t, 1, exec.calls)
}

func TestReadSourceNotAllowedForGroup(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})
	req := validRequest()
	req.Source = catalog.SourceDWH // valid globally, not for MSP

	out := s.Read(context.Background(), req)

	assert.Contains(t, out.Debug, "Invalid data source: DWH.")
	assert.Equal(t, 0, exec.calls)
}

func TestReadProfile(t *testing.T) {
	exec := &fakeExecutor{result: Result{Rows: [][]any{make([]any, 38)}}}
	s := newTestService(exec, &fakeGate{})

	out := s.ReadProfile(context.Background(), ProfileRequest{
		Group: catalog.GroupBank, Source: catalog.SourceBSIS, FilterCode: "B001",
	})

	require.Empty(t, out.Debug)
	assert.Equal(t, 1, exec.calls)
	assert.Contains(t, exec.lastSQL, "bsis_dev.institution")
	assert.Len(t, out.Table.Columns, 38)
	assert.Equal(t, "Profile retrieved successfully for BANK.", out.Info)
}

func TestReadProfileValidation(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestService(exec, &fakeGate{})

	out := s.ReadProfile(context.Background(), ProfileRequest{
		Group: "BANK", Source: "DWH", FilterCode: "*",
	})
	assert.Contains(t, out.Debug, "Invalid data source: DWH")

	out = s.ReadProfile(context.Background(), ProfileRequest{
		Group: "UNKNOWN", Source: "BSIS", FilterCode: "*",
	})
	assert.Contains(t, out.Debug, "Invalid data group: UNKNOWN")
	assert.Equal(t, 0, exec.calls)

	// Reserved profile groups pass validation but have no register yet.
	out = s.ReadProfile(context.Background(), ProfileRequest{
		Group: "FUNDS", Source: "BSIS", FilterCode: "*",
	})
	assert.Contains(t, out.Debug, "No column mapping found")
	assert.Equal(t, 0, exec.calls)
}
