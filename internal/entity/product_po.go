package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductPO 商品持久化模型（GORM）
type ProductPO struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string          `gorm:"column:name;type:varchar(100);not null;index:idx_name"`
	Category       string          `gorm:"column:category;type:varchar(50);not null;index:idx_category"`
	ExpirationDate datatypes.Date  `gorm:"column:expiration_date;not null;index:idx_expiration_date"`
	Quantity       int             `gorm:"column:quantity;not null"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (ProductPO) TableName() string {
	return "products"
}

// ToPO 领域对象转换为 GORM 模型
func (p *Product) ToPO() *ProductPO {
	return &ProductPO{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		ExpirationDate: datatypes.Date(DateOf(p.ExpirationDate)),
		Quantity:       p.Quantity,
		Price:          p.Price,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToDomain GORM 模型转换为领域对象
func (po *ProductPO) ToDomain() *Product {
	return &Product{
		ID:             po.ID,
		Name:           po.Name,
		Category:       po.Category,
		ExpirationDate: DateOf(time.Time(po.ExpirationDate)),
		Quantity:       po.Quantity,
		Price:          po.Price,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}
