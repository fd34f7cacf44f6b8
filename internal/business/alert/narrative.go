package alert

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
	"expmon/pkg/logger"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	urgentActions = []string{
		"Use products in today's meals",
		"Prepare recipes using these ingredients",
		"Consider donating if quantities are large",
		"Remove expired items from inventory",
	}
	planningActions = []string{
		"Schedule meals using these products",
		"Check if products can be frozen",
		"Consider bulk cooking and meal prep",
		"Review ordering patterns to reduce waste",
	}
)

// Summary 按告警类型生成摘要
func Summary(t entity.AlertType, count int, value decimal.Decimal) string {
	switch t {
	case entity.AlertTypeTomorrow:
		return fmt.Sprintf("🚨 URGENT: %d product(s) expiring tomorrow! Total value at risk: $%s", count, value.StringFixed(2))
	case entity.AlertTypeSevenDays:
		return fmt.Sprintf("⚠️ WARNING: %d product(s) expiring within 7 days. Total value at risk: $%s", count, value.StringFixed(2))
	default:
		return fmt.Sprintf("📦 %d product(s) require attention", count)
	}
}

// statusIcon 按剩余天数标记紧急程度
func statusIcon(days int) string {
	switch {
	case days < 0:
		return "💀"
	case days == 0:
		return "🔴"
	case days == 1:
		return "🟠"
	default:
		return "🟡"
	}
}

// logNarrative 输出告警明细：商品、菜谱、建议操作
func logNarrative(ctx context.Context, log logger.Logger, rec *entity.AlertRecord) {
	level := "WARNING"
	actions := planningActions
	if rec.Type.IsUrgent() {
		level = "URGENT"
		actions = urgentActions
	}

	log.Infof(ctx, "[AlertService] %s EXPIRATION ALERT: %d product(s), total value at risk $%s, sent at %s",
		level, len(rec.Products), rec.TotalValueAtRisk.StringFixed(2), rec.CreatedAt.Format(timeLayout))

	for _, p := range rec.Products {
		log.Infof(ctx, "[AlertService] %s %s (%s) | Expires: %s (%d days) | Quantity: %d units | Value: $%s",
			statusIcon(p.DaysUntilExpiration), p.Name, p.Category, p.ExpirationDate.Format("2006-01-02"),
			p.DaysUntilExpiration, p.Quantity, p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))).StringFixed(2))
	}

	for _, r := range rec.Recipes {
		log.Infof(ctx, "[AlertService] Suggested recipe: %s (%s, %s) - %s", r.Name, r.CookTime, r.Difficulty, r.Description)
	}

	for _, a := range actions {
		log.Infof(ctx, "[AlertService] Recommended action: %s", a)
	}
}
