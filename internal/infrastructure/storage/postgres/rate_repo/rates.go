// Package rate_repo provides the PostgreSQL implementation of the rates
// repository.
package rate_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"langodata/internal/domain/catalog"
	"langodata/internal/domain/rates"
	"langodata/internal/infrastructure/storage/postgres"
)

// RateRepo implements rates.Repository against the BSIS source.
type RateRepo struct {
	sources *postgres.SourceSet
	builder squirrel.StatementBuilderType
}

// NewRateRepo creates a new rate repository.
func NewRateRepo(sources *postgres.SourceSet) *RateRepo {
	return &RateRepo{
		sources: sources,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByPeriod returns the rate quotations inside an inclusive period.
func (r *RateRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]rates.Rate, error) {
	pool, err := r.sources.Get(catalog.SourceBSIS)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.builder.
		Select(
			"row_number() OVER (ORDER BY a.cu_code) AS sno",
			"a.ra_date AS reporting_date",
			"a.cu_code AS currency",
			"b.cu_desc AS description",
			"a.ra_srate AS tzs_rate",
			"a.ra_drate AS usd_rate",
		).
		From("bsis_dev.itrs_fi_rate a").
		Join("bsis_dev.itrs_fi_curr b ON a.cu_code = b.cu_code").
		Where(squirrel.Expr("a.ra_date BETWEEN ? AND ?", start, end)).
		OrderBy("a.cu_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rates query: %w", err)
	}

	var out []rates.Rate
	if err := pgxscan.Select(ctx, pool.Unwrap(), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return out, nil
}
