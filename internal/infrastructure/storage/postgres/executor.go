package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/internal/domain/extract"
	"langodata/pkg/logger"
)

var tracer = otel.Tracer("langodata/storage/postgres")

// Executor runs rendered catalog queries against the source pools. It
// materializes the full result set before returning; the connection is
// released on every exit path by the pool.
type Executor struct {
	sources *SourceSet
	log     *logger.Logger
}

// NewExecutor creates the query executor.
func NewExecutor(sources *SourceSet, log *logger.Logger) *Executor {
	return &Executor{sources: sources, log: log.WithComponent("executor")}
}

// Query implements extract.Executor.
func (e *Executor) Query(ctx context.Context, source catalog.DataSource, sql string, args ...any) (extract.Result, error) {
	ctx, span := tracer.Start(ctx, "postgres.query",
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.source", string(source)),
		))
	defer span.End()

	pool, err := e.sources.Get(source)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return extract.Result{}, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return extract.Result{}, classify(source, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var out [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return extract.Result{}, classify(source, err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return extract.Result{}, classify(source, err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(out)))
	return extract.Result{Columns: columns, Rows: out}, nil
}

// classify distinguishes a lost data source from a SQL fault so the
// dispatcher's debug text says which one happened.
func classify(source catalog.DataSource, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.NewDatabase("query failed: "+pgErr.Message, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) {
		return apperror.NewConnectivity(string(source), err)
	}
	return apperror.NewDatabase("query failed", err)
}
