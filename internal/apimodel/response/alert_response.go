package response

import (
	"github.com/shopspring/decimal"

	"expmon/internal/entity"
)

// AlertHistoryResponse 告警历史
type AlertHistoryResponse struct {
	Count  int                   `json:"count"`
	Alerts []*entity.AlertRecord `json:"alerts"`
}

// AlertStatsResponse 告警统计
type AlertStatsResponse struct {
	TotalAlerts      int             `json:"total_alerts"`
	TotalValueAtRisk decimal.Decimal `json:"total_value_at_risk"`
	HistoryCap       int             `json:"history_cap"`
}

// FromAlertStatistics 转换告警统计
func FromAlertStatistics(stats entity.AlertStatistics, historyCap int) *AlertStatsResponse {
	return &AlertStatsResponse{
		TotalAlerts:      stats.TotalAlerts,
		TotalValueAtRisk: stats.TotalValueAtRisk,
		HistoryCap:       historyCap,
	}
}

// ManualCheckResponse 手动检查结果
type ManualCheckResponse struct {
	AlertsRaised int    `json:"alerts_raised"`
	Message      string `json:"message"`
}

// RecipesResponse 菜谱推荐
type RecipesResponse struct {
	ProductName string                    `json:"product_name,omitempty"`
	Recipes     []entity.RecipeSuggestion `json:"recipes"`
}
