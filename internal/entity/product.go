package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// 错误定义
var (
	ErrInvalidName           = errors.New("product name must be between 2 and 100 characters")
	ErrInvalidCategory       = errors.New("category is required and must not exceed 50 characters")
	ErrInvalidExpirationDate = errors.New("expiration date is required")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrInvalidPrice          = errors.New("price must be greater than 0")
	ErrInvalidPricePrecision = errors.New("price must have at most 8 integer digits and 2 decimal places")
)

var maxPrice = decimal.New(1, 8) // 8 位整数

// Product 库存商品（领域对象）
type Product struct {
	ID             int64           // 商品ID
	Name           string          // 商品名称
	Category       string          // 分类
	ExpirationDate time.Time       // 过期日期（UTC 零点，不含时间）
	Quantity       int             // 数量
	Price          decimal.Decimal // 单价
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProduct 创建商品（工厂方法，执行业务规则校验）
func NewProduct(name, category string, expirationDate time.Time, quantity int, price decimal.Decimal) (*Product, error) {
	p := &Product{
		Name:           strings.TrimSpace(name),
		Category:       strings.TrimSpace(category),
		ExpirationDate: DateOf(expirationDate),
		Quantity:       quantity,
		Price:          price,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Validate 校验创建/更新时的不变量
func (p *Product) Validate() error {
	if n := utf8.RuneCountInString(p.Name); n < 2 || n > 100 {
		return ErrInvalidName
	}
	if n := utf8.RuneCountInString(p.Category); n == 0 || n > 50 {
		return ErrInvalidCategory
	}
	if p.ExpirationDate.IsZero() {
		return ErrInvalidExpirationDate
	}
	if p.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if !p.Price.Equal(p.Price.Round(2)) {
		return ErrInvalidPricePrecision
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return ErrInvalidPricePrecision
	}
	return nil
}

// Apply 用新值覆盖可编辑字段（领域行为）
func (p *Product) Apply(src *Product) {
	p.Name = src.Name
	p.Category = src.Category
	p.ExpirationDate = src.ExpirationDate
	p.Quantity = src.Quantity
	p.Price = src.Price
	p.UpdatedAt = time.Now()
}

// TotalValue 单个商品的货值 price×quantity
func (p *Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// DaysUntilExpiration 距过期天数（负数表示已过期）
func (p *Product) DaysUntilExpiration(today time.Time) int {
	return DaysBetween(today, p.ExpirationDate)
}

// Clone 深拷贝
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

// DateOf 取 t 所在时区的日历日期，统一表示为 UTC 零点
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween 两个日历日期之间的天数差 to - from
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
