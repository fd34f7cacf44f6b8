package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
	"expmon/internal/repo/rpproduct"
	"expmon/pkg/errorutil"
)

// MaxWindowDays 按天查询的最大窗口
const MaxWindowDays = 365

// ProductInput 创建/更新商品参数
type ProductInput struct {
	Name           string
	Category       string
	ExpirationDate time.Time
	Quantity       int
	Price          decimal.Decimal
}

// ExpiringSummary 窗口内过期商品的数量与货值
type ExpiringSummary struct {
	Days       int             `json:"days"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ProductService 商品服务，负责商品 CRUD 与查询编排
type ProductService struct {
	repo  rpproduct.ProductRepository
	query *QueryService
}

// NewProductService 创建商品服务实例
func NewProductService(repo rpproduct.ProductRepository, query *QueryService) *ProductService {
	return &ProductService{
		repo:  repo,
		query: query,
	}
}

// ListProducts 查询全部商品
func (s *ProductService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.repo.List(ctx)
}

// GetProduct 查询商品
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, in *ProductInput) (*entity.Product, error) {
	product, err := entity.NewProduct(in.Name, in.Category, in.ExpirationDate, in.Quantity, in.Price)
	if err != nil {
		return nil, errorutil.Validation(err.Error(), err)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("save product failed: %w", err)
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in *ProductInput) (*entity.Product, error) {
	candidate, err := entity.NewProduct(in.Name, in.Category, in.ExpirationDate, in.Quantity, in.Price)
	if err != nil {
		return nil, errorutil.Validation(err.Error(), err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Apply(candidate)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update product failed: %w", err)
	}
	return existing, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SearchProducts 名称搜索
func (s *ProductService) SearchProducts(ctx context.Context, name string) ([]*entity.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errorutil.Validation("name is required", nil)
	}
	return s.repo.SearchByName(ctx, name)
}

// ListByCategory 按分类查询
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

// ListExpiringWithin 查询 days 天内过期的商品
func (s *ProductService) ListExpiringWithin(ctx context.Context, days int) ([]*entity.Product, error) {
	if err := checkWindow(days); err != nil {
		return nil, err
	}
	return s.query.FindExpiringWithin(ctx, days)
}

// ListExpiringTomorrow 查询明天过期的商品
func (s *ProductService) ListExpiringTomorrow(ctx context.Context) ([]*entity.Product, error) {
	return s.query.FindExpiringTomorrow(ctx)
}

// ListExpired 查询已过期商品
func (s *ProductService) ListExpired(ctx context.Context) ([]*entity.Product, error) {
	return s.query.FindExpired(ctx)
}

// SummarizeExpiringWithin 统计 days 天内过期商品的数量与货值
func (s *ProductService) SummarizeExpiringWithin(ctx context.Context, days int) (*ExpiringSummary, error) {
	products, err := s.ListExpiringWithin(ctx, days)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.TotalValue())
	}
	return &ExpiringSummary{
		Days:       days,
		Count:      len(products),
		TotalValue: total,
	}, nil
}

// checkWindow 校验查询窗口
func checkWindow(days int) error {
	if days < 0 || days > MaxWindowDays {
		return errorutil.Validation(fmt.Sprintf("days must be within 0-%d", MaxWindowDays), nil)
	}
	return nil
}

// Today 当前日历日期
func (s *ProductService) Today() time.Time {
	return s.query.Today()
}
