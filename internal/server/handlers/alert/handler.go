package alert

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"expmon/internal/apimodel/response"
	"expmon/internal/business/alert"
	"expmon/internal/business/monitor"
	"expmon/pkg/ginx"
)

// DefaultHistoryLimit 历史查询默认条数
const DefaultHistoryLimit = 10

// AlertHandler 告警 HTTP 处理器
type AlertHandler struct {
	alertService *alert.Service
	checker      *monitor.Checker
}

// NewAlertHandler 创建告警处理器实例
func NewAlertHandler(alertService *alert.Service, checker *monitor.Checker) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		checker:      checker,
	}
}

// History 最近的告警
// GET /api/v1/alerts/history?limit=10
func (h *AlertHandler) History(c *gin.Context) {
	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ginx.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	alerts := h.alertService.History(limit)
	ginx.Success(c, &response.AlertHistoryResponse{
		Count:  len(alerts),
		Alerts: alerts,
	})
}

// Stats 告警统计（仅统计保留窗口）
// GET /api/v1/alerts/stats
func (h *AlertHandler) Stats(c *gin.Context) {
	ginx.Success(c, response.FromAlertStatistics(h.alertService.Statistics(), h.alertService.HistoryCap()))
}

// Check 手动触发过期检查
// POST /api/v1/alerts/check
func (h *AlertHandler) Check(c *gin.Context) {
	raised, err := h.checker.RunManualCheck(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, &response.ManualCheckResponse{
		AlertsRaised: raised,
		Message:      fmt.Sprintf("Expiration check completed, %d alert(s) raised", raised),
	})
}
