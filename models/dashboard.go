package models

// MetricsSummary 销售漏斗汇总，HotWinPct 为 nil 表示没有热门线索（区别于 0%）
type MetricsSummary struct {
	TotalValue  float64 `json:"totalValue"`  // 总金额
	TotalCount  int     `json:"totalCount"`  // 项目数量
	HotCount    int     `json:"hotCount"`    // 热门线索数量
	HotWinCount int     `json:"hotWinCount"` // 热门线索中赢单数量
	HotWinPct   *int    `json:"hotWinPct"`   // 热门线索赢单率（四舍五入到整数）
	WinCount    int     `json:"winCount"`    // 赢单数量
	LoseCount   int     `json:"loseCount"`   // 输单数量
}

// 数据看板响应结构
type DashboardStatsResponse struct {
	ProgressType ProgressType      `json:"progressType,omitempty"` // 当前筛选
	Summary      MetricsSummary    `json:"summary"`
	Projects     []ProjectListItem `json:"projects"`
}
