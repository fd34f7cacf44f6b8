package rpproduct

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"expmon/internal/entity"
	"expmon/pkg/errorutil"
)

// MemoryRepository 内存商品仓储（本地运行与测试）
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]*entity.Product
	nextID   int64
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products: make(map[int64]*entity.Product),
	}
}

// FindByExpirationDate 查询指定日期过期的商品
func (r *MemoryRepository) FindByExpirationDate(ctx context.Context, date time.Time) ([]*entity.Product, error) {
	day := entity.DateOf(date)
	return r.filter(func(p *entity.Product) bool {
		return p.ExpirationDate.Equal(day)
	}, byID), nil
}

// FindByExpirationBetween 查询区间内过期的商品（闭区间，升序）
func (r *MemoryRepository) FindByExpirationBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	start, end := entity.DateOf(from), entity.DateOf(to)
	return r.filter(func(p *entity.Product) bool {
		return !p.ExpirationDate.Before(start) && !p.ExpirationDate.After(end)
	}, byExpiration), nil
}

// FindByExpirationBefore 查询已过期商品
func (r *MemoryRepository) FindByExpirationBefore(ctx context.Context, date time.Time) ([]*entity.Product, error) {
	day := entity.DateOf(date)
	return r.filter(func(p *entity.Product) bool {
		return p.ExpirationDate.Before(day)
	}, byExpiration), nil
}

// Create 创建商品
func (r *MemoryRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(product)
	return nil
}

// CreateBatch 批量创建
func (r *MemoryRepository) CreateBatch(ctx context.Context, products []*entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range products {
		r.insertLocked(p)
	}
	return nil
}

// GetByID 根据 ID 查询
func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errorutil.NotFound("product not found with id: %d", id)
	}
	return p.Clone(), nil
}

// Update 更新商品
func (r *MemoryRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return errorutil.NotFound("product not found with id: %d", product.ID)
	}
	stored := product.Clone()
	stored.UpdatedAt = time.Now()
	r.products[product.ID] = stored
	return nil
}

// Delete 删除商品
func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errorutil.NotFound("product not found with id: %d", id)
	}
	delete(r.products, id)
	return nil
}

// List 查询全部商品
func (r *MemoryRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true }, byID), nil
}

// SearchByName 名称模糊搜索
func (r *MemoryRepository) SearchByName(ctx context.Context, keyword string) ([]*entity.Product, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	return r.filter(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw)
	}, byID), nil
}

// ListByCategory 按分类查询
func (r *MemoryRepository) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool {
		return p.Category == category
	}, byID), nil
}

// Count 商品总数
func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *MemoryRepository) insertLocked(product *entity.Product) {
	r.nextID++
	product.ID = r.nextID
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
		product.UpdatedAt = product.CreatedAt
	}
	r.products[product.ID] = product.Clone()
}

// filter 读锁下过滤并返回副本
func (r *MemoryRepository) filter(match func(*entity.Product) bool, less func(a, b *entity.Product) bool) []*entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Product, 0)
	for _, p := range r.products {
		if match(p) {
			result = append(result, p.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func byID(a, b *entity.Product) bool {
	return a.ID < b.ID
}

func byExpiration(a, b *entity.Product) bool {
	if a.ExpirationDate.Equal(b.ExpirationDate) {
		return a.ID < b.ID
	}
	return a.ExpirationDate.Before(b.ExpirationDate)
}
