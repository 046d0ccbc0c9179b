package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/sales_tracker/models"
)

type stubLister struct {
	got   []models.ProgressType
	items map[models.ProgressType][]models.ProjectListItem
	err   error
}

func (s *stubLister) List(_ context.Context, progressType models.ProgressType) ([]models.ProjectListItem, error) {
	s.got = append(s.got, progressType)
	return s.items[progressType], s.err
}

func listItem(value float64, prospect models.ProspectType, progress models.ProgressType) models.ProjectListItem {
	return models.ProjectListItem{Project: project(value, prospect, progress)}
}

func TestDashboardStatsSummaryMatchesFilter(t *testing.T) {
	lister := &stubLister{items: map[models.ProgressType][]models.ProjectListItem{
		"": {
			listItem(100, models.ProspectHot, models.ProgressWin),
			listItem(50, models.ProspectHot, models.ProgressLoss),
			listItem(30, models.ProspectNormal, models.ProgressWin),
		},
		models.ProgressWin: {
			listItem(100, models.ProspectHot, models.ProgressWin),
			listItem(30, models.ProspectNormal, models.ProgressWin),
		},
	}}
	svc := NewDashboardService(lister)

	all, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 180.0, all.Summary.TotalValue)
	require.NotNil(t, all.Summary.HotWinPct)
	assert.Equal(t, 50, *all.Summary.HotWinPct)
	assert.Len(t, all.Projects, 3)

	wins, err := svc.Stats(context.Background(), "Win")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressWin, wins.ProgressType)
	assert.Equal(t, 130.0, wins.Summary.TotalValue)
	assert.Equal(t, 2, wins.Summary.TotalCount)
	assert.Equal(t, 0, wins.Summary.LoseCount)
	require.NotNil(t, wins.Summary.HotWinPct)
	assert.Equal(t, 100, *wins.Summary.HotWinPct)
}

func TestDashboardStatsIgnoresUnknownFilter(t *testing.T) {
	lister := &stubLister{items: map[models.ProgressType][]models.ProjectListItem{}}
	svc := NewDashboardService(lister)

	stats, err := svc.Stats(context.Background(), "Archived")
	require.NoError(t, err)
	assert.Equal(t, []models.ProgressType{""}, lister.got)
	assert.Equal(t, models.ProgressType(""), stats.ProgressType)
	assert.Nil(t, stats.Summary.HotWinPct)
}

func TestDashboardStatsPropagatesErrors(t *testing.T) {
	svc := NewDashboardService(&stubLister{err: errors.New("down")})
	_, err := svc.Stats(context.Background(), "")
	assert.Error(t, err)
}

func TestNextRunAt(t *testing.T) {
	loc := time.UTC
	before := time.Date(2024, 1, 31, 6, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 31, 7, 0, 0, 0, loc), nextRunAt(before, 7, 0, 0))

	at := time.Date(2024, 1, 31, 7, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 2, 1, 7, 0, 0, 0, loc), nextRunAt(at, 7, 0, 0))

	after := time.Date(2024, 12, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 1, 1, 7, 0, 0, 0, loc), nextRunAt(after, 7, 0, 0))
}

func TestScheduleDailyTaskAtStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{}, 1)
	ScheduleDailyTaskAt(ctx, 0, 0, 0, func(context.Context) { ran <- struct{}{} })
	cancel()

	select {
	case <-ran:
		t.Fatal("task should not run after cancellation")
	case <-time.After(50 * time.Millisecond):
	}
}
