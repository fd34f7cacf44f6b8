package request

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/business/inventory"
)

// DateLayout 请求/响应中的日期格式
const DateLayout = "2006-01-02"

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name           string          `json:"name" binding:"required,min=2,max=100" example:"Fresh Milk"`
	Category       string          `json:"category" binding:"required,max=50" example:"Dairy"`
	ExpirationDate string          `json:"expiration_date" binding:"required,datetime=2006-01-02" example:"2026-10-17"`
	Quantity       int             `json:"quantity" binding:"required,min=1" example:"50"`
	Price          decimal.Decimal `json:"price" example:"3.99"`
}

// ToInput 转换为服务层参数
func (r *ProductRequest) ToInput() (*inventory.ProductInput, error) {
	exp, err := time.Parse(DateLayout, r.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("expiration_date must be YYYY-MM-DD: %w", err)
	}
	return &inventory.ProductInput{
		Name:           r.Name,
		Category:       r.Category,
		ExpirationDate: exp,
		Quantity:       r.Quantity,
		Price:          r.Price,
	}, nil
}

// SuggestRecipesRequest 批量菜谱推荐请求
type SuggestRecipesRequest struct {
	ProductNames []string `json:"product_names" binding:"required,min=1,dive,required" example:"Fresh Milk,Gala Apples"`
}
