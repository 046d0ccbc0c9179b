package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/sales_tracker/models"
)

func project(value float64, prospect models.ProspectType, progress models.ProgressType) models.Project {
	return models.Project{Value: value, Prospect: prospect, ProgressType: progress}
}

func intPtr(v int) *int { return &v }

func TestSummarizePipelineEmpty(t *testing.T) {
	got := SummarizePipeline(nil)
	assert.Equal(t, models.MetricsSummary{}, got)
	assert.Nil(t, got.HotWinPct)

	got = SummarizePipeline([]models.Project{})
	assert.Nil(t, got.HotWinPct)
	assert.Zero(t, got.TotalCount)
}

func TestSummarizePipelineMixed(t *testing.T) {
	projects := []models.Project{
		project(100, models.ProspectHot, models.ProgressWin),
		project(50, models.ProspectHot, models.ProgressLoss),
		project(30, models.ProspectNormal, models.ProgressWin),
	}

	got := SummarizePipeline(projects)
	assert.Equal(t, models.MetricsSummary{
		TotalValue:  180,
		TotalCount:  3,
		HotCount:    2,
		HotWinCount: 1,
		HotWinPct:   intPtr(50),
		WinCount:    2,
		LoseCount:   1,
	}, got)
}

func TestSummarizePipelineZeroPercentIsNotNil(t *testing.T) {
	got := SummarizePipeline([]models.Project{
		project(10, models.ProspectHot, models.ProgressTender),
		project(10, models.ProspectNormal, models.ProgressWin),
	})
	require.NotNil(t, got.HotWinPct)
	assert.Equal(t, 0, *got.HotWinPct)
}

func TestSummarizePipelineNoHotLeadsIsNil(t *testing.T) {
	got := SummarizePipeline([]models.Project{
		project(10, models.ProspectNormal, models.ProgressWin),
		project(20, models.ProspectNormal, models.ProgressBudgetary),
	})
	assert.Nil(t, got.HotWinPct)
	assert.Equal(t, 1, got.WinCount)
	assert.Equal(t, 30.0, got.TotalValue)
}

func TestSummarizePipelineRounding(t *testing.T) {
	tests := []struct {
		name   string
		hot    int
		hotWin int
		want   int
	}{
		{name: "one third rounds down", hot: 3, hotWin: 1, want: 33},
		{name: "two thirds rounds up", hot: 3, hotWin: 2, want: 67},
		{name: "one eighth rounds half up", hot: 8, hotWin: 1, want: 13},
		{name: "all won", hot: 4, hotWin: 4, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var projects []models.Project
			for i := 0; i < tt.hot; i++ {
				progress := models.ProgressTender
				if i < tt.hotWin {
					progress = models.ProgressWin
				}
				projects = append(projects, project(1, models.ProspectHot, progress))
			}
			got := SummarizePipeline(projects)
			require.NotNil(t, got.HotWinPct)
			assert.Equal(t, tt.want, *got.HotWinPct)
		})
	}
}

func TestSummarizePipelineIdempotentAndDoesNotMutate(t *testing.T) {
	projects := []models.Project{
		project(100, models.ProspectHot, models.ProgressWin),
		project(5, models.ProspectNormal, models.ProgressLoss),
	}
	snapshot := append([]models.Project(nil), projects...)

	first := SummarizePipeline(projects)
	second := SummarizePipeline(projects)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, projects)
}

func TestSummarizePipelineHotWinMonotonic(t *testing.T) {
	base := [][]models.Project{
		{project(1, models.ProspectHot, models.ProgressLoss)},
		{project(1, models.ProspectNormal, models.ProgressWin)},
		{project(1, models.ProspectHot, models.ProgressWin), project(1, models.ProspectHot, models.ProgressTender)},
		{project(1, models.ProspectHot, models.ProgressWin)},
	}
	for _, projects := range base {
		before := SummarizePipeline(projects)
		after := SummarizePipeline(append(append([]models.Project(nil), projects...),
			project(1, models.ProspectHot, models.ProgressWin)))

		require.NotNil(t, after.HotWinPct)
		if before.HotWinPct != nil {
			assert.GreaterOrEqual(t, *after.HotWinPct, *before.HotWinPct)
		}
	}
}

func TestSummarizePipelineConcurrentCallers(t *testing.T) {
	projects := []models.Project{
		project(100, models.ProspectHot, models.ProgressWin),
		project(50, models.ProspectHot, models.ProgressLoss),
	}
	want := SummarizePipeline(projects)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, SummarizePipeline(projects))
		}()
	}
	wg.Wait()
}
