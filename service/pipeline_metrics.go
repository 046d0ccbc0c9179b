package service

import (
	"math"

	"github.com/BerniceZTT/sales_tracker/models"
)

// SummarizePipeline 汇总当前筛选下的项目指标，不修改入参
func SummarizePipeline(projects []models.Project) models.MetricsSummary {
	var summary models.MetricsSummary
	for i := range projects {
		p := &projects[i]
		summary.TotalValue += p.Value
		summary.TotalCount++

		hot := p.Prospect == models.ProspectHot
		if hot {
			summary.HotCount++
		}
		switch p.ProgressType {
		case models.ProgressWin:
			summary.WinCount++
			if hot {
				summary.HotWinCount++
			}
		case models.ProgressLoss:
			summary.LoseCount++
		}
	}

	// 没有热门线索时赢单率未定义，保持 nil
	if summary.HotCount > 0 {
		pct := int(math.Round(float64(summary.HotWinCount) / float64(summary.HotCount) * 100))
		summary.HotWinPct = &pct
	}
	return summary
}
