package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType 告警类型
// 新类型直接声明常量即可，聚合算法不依赖具体取值
type AlertType string

const (
	AlertTypeTomorrow  AlertType = "TOMORROW"   // 明天过期（紧急）
	AlertTypeSevenDays AlertType = "SEVEN_DAYS" // 7 天内过期（计划）
)

// IsUrgent 是否紧急告警
func (t AlertType) IsUrgent() bool {
	return t == AlertTypeTomorrow
}

// AlertRecord 过期告警记录（创建后不可变）
type AlertRecord struct {
	ID               string             `json:"id"`
	Type             AlertType          `json:"alert_type"`
	CreatedAt        time.Time          `json:"timestamp"`
	Products         []ProductSnapshot  `json:"products"`
	Recipes          []RecipeSuggestion `json:"suggested_recipes"`
	TotalValueAtRisk decimal.Decimal    `json:"total_value_at_risk"`
	Message          string             `json:"message"`
}

// ProductSnapshot 告警时刻的商品快照，与库存中的商品解耦
type ProductSnapshot struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	ExpirationDate      time.Time       `json:"expiration_date"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	DaysUntilExpiration int             `json:"days_until_expiration"`
}

// NewProductSnapshot 基于 today 生成快照
func NewProductSnapshot(p *Product, today time.Time) ProductSnapshot {
	return ProductSnapshot{
		ID:                  p.ID,
		Name:                p.Name,
		Category:            p.Category,
		ExpirationDate:      p.ExpirationDate,
		Quantity:            p.Quantity,
		Price:               p.Price,
		DaysUntilExpiration: p.DaysUntilExpiration(today),
	}
}

// AlertStatistics 告警统计（仅覆盖当前保留的历史窗口）
type AlertStatistics struct {
	TotalAlerts      int             `json:"total_alerts"`
	TotalValueAtRisk decimal.Decimal `json:"total_value_at_risk"`
}
