// Package extract implements the query dispatcher: it resolves a caller's
// request against the report catalogs, renders and executes the query, and
// shapes the rows into the uniform result envelope. All failures are
// normalized into the envelope's debug text; nothing escapes past Read or
// ReadProfile.
package extract

import (
	"fmt"
	"strings"
	"time"

	"langodata/internal/domain/catalog"
)

// PeriodFormat is the date text format accepted at the boundary, e.g.
// "30-Sep-2024". Month abbreviations are matched case-insensitively.
const PeriodFormat = "02-Jan-2006"

// QueryRequest carries one data-retrieval call's parameters. For the
// macroeconomic group FilterCode carries the series frequency instead of an
// institution code.
type QueryRequest struct {
	Group       catalog.DataGroup
	Source      catalog.DataSource
	Type        string
	FilterCode  string
	StartPeriod string
	EndPeriod   string
}

// ProfileRequest carries an institution-register read.
type ProfileRequest struct {
	Group      catalog.DataGroup
	Source     catalog.DataSource
	FilterCode string
}

// Table is an ordered set of rows with named columns. The zero value is a
// valid empty table.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// ResultEnvelope is the uniform return shape of every call. Debug text is
// additive; dispatch stages append to it and never overwrite it.
type ResultEnvelope struct {
	Info  string `json:"info"`
	Debug string `json:"debug"`
	Table Table  `json:"table"`
}

// AppendDebug appends a diagnostic note, preserving any existing text.
func (e *ResultEnvelope) AppendDebug(msg string) {
	if msg == "" {
		return
	}
	if e.Debug != "" {
		e.Debug += " | "
	}
	e.Debug += msg
}

// ParsePeriod parses a period bound, accepting any casing of the month
// abbreviation.
func ParsePeriod(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) == 3 && len(parts[1]) == 3 {
		m := parts[1]
		parts[1] = strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
		value = strings.Join(parts, "-")
	}
	ts, err := time.Parse(PeriodFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse period %q: %w", value, err)
	}
	return ts, nil
}
