package service

import (
	"context"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// ProjectLister 看板依赖的项目列表
type ProjectLister interface {
	List(ctx context.Context, progressType models.ProgressType) ([]models.ProjectListItem, error)
}

// DashboardService 数据看板
type DashboardService struct {
	projects ProjectLister
}

// NewDashboardService 创建看板服务
func NewDashboardService(projects ProjectLister) *DashboardService {
	return &DashboardService{projects: projects}
}

// Stats 当前筛选下的项目列表和汇总，汇总与列表使用同一批数据
func (s *DashboardService) Stats(ctx context.Context, rawProgressType string) (*models.DashboardStatsResponse, error) {
	filter := ParseProgressFilter(rawProgressType)
	items, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(items))
	for i := range items {
		projects[i] = items[i].Project
	}

	return &models.DashboardStatsResponse{
		ProgressType: filter,
		Summary:      SummarizePipeline(projects),
		Projects:     items,
	}, nil
}

// LogDailySnapshot 记录全部项目的漏斗快照
func (s *DashboardService) LogDailySnapshot(ctx context.Context) {
	stats, err := s.Stats(ctx, "")
	if err != nil {
		utils.LogError(err, nil, "生成每日漏斗快照失败")
		return
	}

	event := utils.Logger.Info().
		Float64("totalValue", stats.Summary.TotalValue).
		Int("totalCount", stats.Summary.TotalCount).
		Int("hotCount", stats.Summary.HotCount).
		Int("winCount", stats.Summary.WinCount).
		Int("loseCount", stats.Summary.LoseCount)
	if stats.Summary.HotWinPct != nil {
		event = event.Int("hotWinPct", *stats.Summary.HotWinPct)
	}
	event.Msg("每日漏斗快照")
}
