package submissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langodata/internal/domain/catalog"
	"langodata/pkg/logger"
)

type fakeRepo struct {
	items []Submission
	calls int
}

func (f *fakeRepo) List(context.Context, catalog.DataSource, Filter) ([]Submission, error) {
	f.calls++
	return f.items, nil
}

func TestListValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.Default())
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), catalog.SourceBSIS, Filter{Status: "LATE", Start: start, End: end})
	assert.Error(t, err)

	_, err = svc.List(context.Background(), catalog.SourceDWH, Filter{Status: StatusSubmitted, Start: start, End: end})
	assert.Error(t, err)

	_, err = svc.List(context.Background(), catalog.SourceBSIS, Filter{Status: StatusSubmitted, Start: end, End: start})
	assert.Error(t, err)

	assert.Equal(t, 0, repo.calls)
}

func TestList(t *testing.T) {
	repo := &fakeRepo{items: []Submission{
		{InstitutionCode: "B001", SubmissionName: "MSP2_01"},
	}}
	svc := NewService(repo, logger.Default())

	got, err := svc.List(context.Background(), catalog.SourceBSIS, Filter{
		Status: StatusDeleted,
		Start:  time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, repo.calls)
}
