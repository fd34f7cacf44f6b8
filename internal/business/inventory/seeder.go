package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
	"expmon/internal/repo/rpproduct"
	"expmon/pkg/logger"
)

type demoProduct struct {
	name     string
	category string
	offset   int // 相对今天的天数
	quantity int
	price    string
}

// demoProducts 演示数据：明天过期、7 天内过期、保质期充足、已过期四类
var demoProducts = []demoProduct{
	{"Fresh Milk", "Dairy", 1, 50, "3.99"},
	{"Ground Beef", "Meat", 1, 10, "6.99"},
	{"Salmon Fillet", "Seafood", 1, 8, "12.99"},

	{"Whole Wheat Bread", "Bakery", 2, 30, "2.49"},
	{"Fresh Lettuce", "Vegetables", 2, 40, "1.99"},
	{"Strawberries", "Fruits", 2, 20, "5.99"},

	{"Greek Yogurt", "Dairy", 3, 25, "1.99"},
	{"Aged Cheddar Cheese", "Dairy", 4, 15, "5.99"},
	{"Gala Apples", "Fruits", 5, 100, "4.99"},
	{"Ripe Bananas", "Fruits", 5, 80, "2.99"},
	{"Chicken Breast", "Meat", 6, 20, "8.99"},
	{"Roma Tomatoes", "Vegetables", 6, 60, "3.49"},
	{"Large Eggs", "Dairy", 7, 24, "3.49"},
	{"Fresh Spinach", "Vegetables", 7, 30, "2.99"},
	{"Pork Chops", "Meat", 7, 12, "7.99"},
	{"Bell Peppers", "Vegetables", 7, 25, "3.99"},

	{"Orange Juice", "Beverages", 14, 35, "4.49"},
	{"Whole Grain Pasta", "Pantry", 30, 100, "1.99"},
	{"Basmati Rice", "Pantry", 365, 50, "3.99"},
	{"Olive Oil", "Pantry", 180, 12, "8.99"},

	{"Expired Yogurt", "Dairy", -2, 5, "1.99"},
	{"Old Bread", "Bakery", -1, 8, "2.49"},
}

// Seeder 演示数据初始化
type Seeder struct {
	repo   rpproduct.ProductRepository
	query  *QueryService
	logger logger.Logger
}

// NewSeeder 创建演示数据初始化器
func NewSeeder(repo rpproduct.ProductRepository, query *QueryService, log logger.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		query:  query,
		logger: log,
	}
}

// Seed 库存为空时写入演示数据，返回写入条数
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products failed: %w", err)
	}
	if count > 0 {
		s.logger.Infof(ctx, "[Seeder] Inventory already contains %d products", count)
		return 0, nil
	}

	s.logger.Infof(ctx, "[Seeder] Initializing inventory with demo data...")

	products, err := buildDemoProducts(s.query.Today())
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateBatch(ctx, products); err != nil {
		return 0, fmt.Errorf("save demo products failed: %w", err)
	}

	s.logSummary(ctx, len(products))
	return len(products), nil
}

// logSummary 输出各类别数量
func (s *Seeder) logSummary(ctx context.Context, total int) {
	tomorrow, err1 := s.query.FindExpiringTomorrow(ctx)
	week, err2 := s.query.FindExpiringWithin(ctx, 7)
	expired, err3 := s.query.FindExpired(ctx)
	if err1 != nil || err2 != nil || err3 != nil {
		s.logger.Warnf(ctx, "[Seeder] Created %d demo products, summary unavailable", total)
		return
	}

	s.logger.Infof(ctx, "[Seeder] Created %d demo products: expiring tomorrow=%d, within 7 days=%d, expired=%d, good shelf life=%d",
		total, len(tomorrow), len(week), len(expired), total-len(week)-len(expired))
}

func buildDemoProducts(today time.Time) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(demoProducts))
	for _, d := range demoProducts {
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			return nil, fmt.Errorf("invalid demo price %q: %w", d.price, err)
		}
		products = append(products, &entity.Product{
			Name:           d.name,
			Category:       d.category,
			ExpirationDate: today.AddDate(0, 0, d.offset),
			Quantity:       d.quantity,
			Price:          price,
		})
	}
	return products, nil
}
