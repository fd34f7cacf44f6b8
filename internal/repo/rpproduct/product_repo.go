package rpproduct

import (
	"context"
	"time"

	"expmon/internal/entity"
)

// ProductRepository 商品仓储接口
// 实现：ProductRepositoryImpl（MySQL）、MemoryRepository（内存）
type ProductRepository interface {
	// FindByExpirationDate 过期日期等于 date
	FindByExpirationDate(ctx context.Context, date time.Time) ([]*entity.Product, error)

	// FindByExpirationBetween 过期日期位于 [from, to]，按过期日期升序
	FindByExpirationBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error)

	// FindByExpirationBefore 过期日期严格早于 date
	FindByExpirationBefore(ctx context.Context, date time.Time) ([]*entity.Product, error)

	// Create 创建商品，回填 ID
	Create(ctx context.Context, product *entity.Product) error

	// CreateBatch 批量创建
	CreateBatch(ctx context.Context, products []*entity.Product) error

	// GetByID 根据 ID 查询，不存在返回 NotFound
	GetByID(ctx context.Context, id int64) (*entity.Product, error)

	// Update 更新商品，不存在返回 NotFound
	Update(ctx context.Context, product *entity.Product) error

	// Delete 删除商品，不存在返回 NotFound
	Delete(ctx context.Context, id int64) error

	// List 全部商品，按 ID 升序
	List(ctx context.Context) ([]*entity.Product, error)

	// SearchByName 名称包含 keyword（忽略大小写）
	SearchByName(ctx context.Context, keyword string) ([]*entity.Product, error)

	// ListByCategory 按分类查询
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)

	// Count 商品总数
	Count(ctx context.Context) (int64, error)
}
