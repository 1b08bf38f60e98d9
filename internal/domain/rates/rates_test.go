package rates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langodata/internal/core/types"
	"langodata/pkg/logger"
)

type fakeRepo struct {
	items []Rate
	calls int
}

func (f *fakeRepo) ListByPeriod(context.Context, time.Time, time.Time) ([]Rate, error) {
	f.calls++
	return f.items, nil
}

func TestListRejectsInvertedRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.Default())

	_, err := svc.List(context.Background(),
		time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
	assert.Equal(t, 0, repo.calls)
}

func TestList(t *testing.T) {
	repo := &fakeRepo{items: []Rate{
		{SNo: 1, Currency: "USD", TZSRate: types.MustAmount("2510.55")},
	}}
	svc := NewService(repo, logger.Default())

	got, err := svc.List(context.Background(),
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "USD", got[0].Currency)
	assert.True(t, got[0].TZSRate.Equal(types.MustAmount("2510.55")))
}
