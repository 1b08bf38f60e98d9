// Package submission_repo provides the PostgreSQL implementation of the
// submissions repository.
package submission_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"langodata/internal/domain/catalog"
	"langodata/internal/domain/submissions"
	"langodata/internal/infrastructure/storage/postgres"
)

// SubmissionRepo implements submissions.Repository.
type SubmissionRepo struct {
	sources *postgres.SourceSet
	builder squirrel.StatementBuilderType
}

// NewSubmissionRepo creates a new submission repository.
func NewSubmissionRepo(sources *postgres.SourceSet) *SubmissionRepo {
	return &SubmissionRepo{
		sources: sources,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func tableFor(status submissions.Status) (string, error) {
	switch status {
	case submissions.StatusSubmitted:
		return "bsis_dev.bsis_submission_submitted", nil
	case submissions.StatusDeleted:
		return "bsis_dev.bsis_submission_deleted", nil
	default:
		return "", fmt.Errorf("unknown submission status %q", status)
	}
}

// List returns the submissions matching the filter, newest first.
func (r *SubmissionRepo) List(ctx context.Context, source catalog.DataSource, f submissions.Filter) ([]submissions.Submission, error) {
	pool, err := r.sources.Get(source)
	if err != nil {
		return nil, err
	}
	table, err := tableFor(f.Status)
	if err != nil {
		return nil, err
	}

	builder := r.builder.
		Select(
			"institutioncode",
			"upper(submissionname) AS submissionname",
			"reportingdate",
			"authorizeddate",
			"upper(submittedby) AS submittedby",
			"upper(authorizedby) AS authorizedby",
		).
		From(table).
		Where(squirrel.Expr("reportingdate::date BETWEEN ? AND ?", f.Start, f.End)).
		OrderBy("reportingdate DESC", "institutioncode")
	if f.InstitutionCode != "" && f.InstitutionCode != catalog.Wildcard {
		builder = builder.Where(squirrel.Eq{"institutioncode": f.InstitutionCode})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submissions query: %w", err)
	}

	var out []submissions.Submission
	if err := pgxscan.Select(ctx, pool.Unwrap(), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}
