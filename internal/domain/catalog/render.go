package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"langodata/internal/core/apperror"
)

// Wildcard means "no institution filter" in a request's filter code.
const Wildcard = "*"

// defaultFilterColumn is the column an unqualified {cond} token binds to.
const defaultFilterColumn = "institutioncode"

// RenderInput carries the per-request values substituted into a descriptor's
// SQL template.
type RenderInput struct {
	Source      DataSource
	FilterCode  string
	StartPeriod time.Time
	EndPeriod   time.Time
	Frequency   string
}

// Query is a rendered SQL statement with its bound arguments.
type Query struct {
	SQL  string
	Args []any
}

// tokenPattern matches the placeholder tokens a SQL template may carry:
// {table}, {schema}, {start}, {end}, {freq}, {cond} and {cond:<column>}.
var tokenPattern = regexp.MustCompile(`\{(table|schema|start|end|freq|cond(?::[A-Za-z0-9_.]+)?)\}`)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// Render substitutes the descriptor's template tokens with the request
// values. Date bounds and the institution filter become bound parameters;
// only the table name and the wildcard tautology are spliced as text, and
// the table name is checked against a strict identifier pattern first.
func (c *Catalog) Render(d Descriptor, in RenderInput) (Query, error) {
	schema := c.Schema(in.Source, d.Type)
	table := schema + d.Table
	if !tableNamePattern.MatchString(table) {
		return Query{}, apperror.NewValidation(fmt.Sprintf("invalid table name %q for data type %s", table, d.Type))
	}

	var args []any
	var renderErr error
	sql := tokenPattern.ReplaceAllStringFunc(d.SQL, func(tok string) string {
		name := tok[1 : len(tok)-1]
		switch {
		case name == "table":
			return table
		case name == "schema":
			return schema
		case name == "start":
			args = append(args, in.StartPeriod)
			return fmt.Sprintf("$%d", len(args))
		case name == "end":
			args = append(args, in.EndPeriod)
			return fmt.Sprintf("$%d", len(args))
		case name == "freq":
			args = append(args, in.Frequency)
			return fmt.Sprintf("$%d", len(args))
		case strings.HasPrefix(name, "cond"):
			column := defaultFilterColumn
			if i := strings.IndexByte(name, ':'); i >= 0 {
				column = name[i+1:]
			}
			if in.FilterCode == Wildcard {
				return "1=1"
			}
			args = append(args, in.FilterCode)
			return fmt.Sprintf("%s = $%d", column, len(args))
		default:
			renderErr = fmt.Errorf("unknown template token %s", tok)
			return tok
		}
	})
	if renderErr != nil {
		return Query{}, apperror.NewInternal(fmt.Errorf("render query template: %w", renderErr))
	}
	return Query{SQL: sql, Args: args}, nil
}
