package extract

import (
	"context"
	"time"

	"langodata/internal/domain/catalog"
)

// Result is one query's materialized outcome. Columns carries the result-set
// field names for queries whose descriptor registers none (the generic
// SELECT * fallback).
type Result struct {
	Columns []string
	Rows    [][]any
}

// Executor runs a rendered query against the named data source. It must
// return a distinguishable error for connectivity loss versus SQL errors so
// the dispatcher can say which one happened.
type Executor interface {
	Query(ctx context.Context, source catalog.DataSource, sql string, args ...any) (Result, error)
}

// Gate is the environment precondition check (license validity plus user
// authentication) run before any catalog or database work. A non-nil error
// aborts the call with the error text surfaced verbatim.
type Gate interface {
	Check(ctx context.Context, group catalog.DataGroup) error
}

// AuditEntry describes one executed extraction for the audit trail.
type AuditEntry struct {
	Group      catalog.DataGroup
	Source     catalog.DataSource
	Type       string
	FilterCode string
	SQL        string
	RowCount   int
	Duration   time.Duration
}

// Auditor records executed extractions. Recording is best-effort and must
// not fail the call.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry)
}
