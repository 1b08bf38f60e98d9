// Package submissions exposes the return-submission status views as a typed
// read model.
package submissions

import (
	"context"
	"time"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/pkg/logger"
)

// Status selects which submission view to read.
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusDeleted   Status = "DELETED"
)

// Submission is one return filed (or deleted) by an institution.
type Submission struct {
	InstitutionCode string     `db:"institutioncode" json:"institution_code"`
	SubmissionName  string     `db:"submissionname" json:"submission_name"`
	ReportingDate   time.Time  `db:"reportingdate" json:"reporting_date"`
	AuthorizedDate  *time.Time `db:"authorizeddate" json:"authorized_date,omitempty"`
	SubmittedBy     string     `db:"submittedby" json:"submitted_by"`
	AuthorizedBy    string     `db:"authorizedby" json:"authorized_by"`
}

// Filter narrows a submission listing. An empty InstitutionCode means all
// institutions.
type Filter struct {
	Status          Status
	InstitutionCode string
	Start           time.Time
	End             time.Time
}

// Repository loads submissions from a data source.
type Repository interface {
	List(ctx context.Context, source catalog.DataSource, f Filter) ([]Submission, error)
}

// Service validates and serves submission listings.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates the submissions service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("submissions")}
}

// List returns the submissions matching the filter.
func (s *Service) List(ctx context.Context, source catalog.DataSource, f Filter) ([]Submission, error) {
	if f.Status != StatusSubmitted && f.Status != StatusDeleted {
		return nil, apperror.NewValidation("status must be SUBMITTED or DELETED")
	}
	if source != catalog.SourceBSIS && source != catalog.SourceEDI {
		return nil, apperror.NewValidation("source must be BSIS or EDI")
	}
	if f.Start.After(f.End) {
		return nil, apperror.NewValidation("start period is after end period")
	}

	out, err := s.repo.List(ctx, source, f)
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("submissions listed", "status", f.Status, "count", len(out))
	return out, nil
}
