// Package rates exposes the ITRS currency-rate reference data as a typed
// read model, for callers that want parsed values rather than the generic
// report table.
package rates

import (
	"context"
	"time"

	"langodata/internal/core/apperror"
	"langodata/internal/core/types"
	"langodata/pkg/logger"
)

// Rate is one currency's rate quotation on a reporting date.
type Rate struct {
	SNo           int64       `db:"sno" json:"sno"`
	ReportingDate time.Time   `db:"reporting_date" json:"reporting_date"`
	Currency      string      `db:"currency" json:"currency"`
	Description   string      `db:"description" json:"description"`
	TZSRate       types.Rate  `db:"tzs_rate" json:"tzs_rate"`
	USDRate       types.Rate  `db:"usd_rate" json:"usd_rate"`
}

// Repository loads rate quotations.
type Repository interface {
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Rate, error)
}

// Service validates and serves rate lookups.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates the rates service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("rates")}
}

// List returns the quotations inside an inclusive period.
func (s *Service) List(ctx context.Context, start, end time.Time) ([]Rate, error) {
	if start.After(end) {
		return nil, apperror.NewValidation("start period is after end period")
	}
	out, err := s.repo.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("rates listed", "count", len(out))
	return out, nil
}
