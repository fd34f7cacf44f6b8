package response

import (
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
)

const dateLayout = "2006-01-02"

// ProductResponse 商品响应（DTO）
type ProductResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	ExpirationDate      string          `json:"expiration_date"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	TotalValue          decimal.Decimal `json:"total_value"`
	DaysUntilExpiration int             `json:"days_until_expiration"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// FromProductEntity 从领域对象转换为响应 DTO
func FromProductEntity(p *entity.Product, today time.Time) *ProductResponse {
	return &ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Category:            p.Category,
		ExpirationDate:      p.ExpirationDate.Format(dateLayout),
		Quantity:            p.Quantity,
		Price:               p.Price,
		TotalValue:          p.TotalValue(),
		DaysUntilExpiration: p.DaysUntilExpiration(today),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// FromProductEntities 批量转换
func FromProductEntities(products []*entity.Product, today time.Time) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProductEntity(p, today))
	}
	return out
}

// ExpiringProductsResponse 按窗口查询的商品列表
type ExpiringProductsResponse struct {
	Days       int                `json:"days"`
	Count      int                `json:"count"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Products   []*ProductResponse `json:"products"`
}

// FromExpiringProducts 转换并汇总货值
func FromExpiringProducts(days int, products []*entity.Product, today time.Time) *ExpiringProductsResponse {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.TotalValue())
	}
	return &ExpiringProductsResponse{
		Days:       days,
		Count:      len(products),
		TotalValue: total,
		Products:   FromProductEntities(products, today),
	}
}
