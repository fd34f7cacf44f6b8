package rpproduct

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"expmon/internal/entity"
	"expmon/pkg/errorutil"
)

const dateLayout = "2006-01-02"

// ProductRepositoryImpl 商品仓储实现（MySQL）
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// FindByExpirationDate 查询指定日期过期的商品
func (r *ProductRepositoryImpl) FindByExpirationDate(ctx context.Context, date time.Time) ([]*entity.Product, error) {
	return r.find(ctx, "find by expiration date", func(q *gorm.DB) *gorm.DB {
		return q.Where("expiration_date = ?", date.Format(dateLayout)).Order("id ASC")
	})
}

// FindByExpirationBetween 查询区间内过期的商品（闭区间，升序）
func (r *ProductRepositoryImpl) FindByExpirationBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	return r.find(ctx, "find by expiration range", func(q *gorm.DB) *gorm.DB {
		return q.Where("expiration_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
			Order("expiration_date ASC, id ASC")
	})
}

// FindByExpirationBefore 查询已过期商品
func (r *ProductRepositoryImpl) FindByExpirationBefore(ctx context.Context, date time.Time) ([]*entity.Product, error) {
	return r.find(ctx, "find expired", func(q *gorm.DB) *gorm.DB {
		return q.Where("expiration_date < ?", date.Format(dateLayout)).Order("expiration_date ASC, id ASC")
	})
}

// Create 创建商品
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	po := product.ToPO()
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return errorutil.TransientStore("create", err)
	}
	product.ID = po.ID
	return nil
}

// CreateBatch 批量创建（单事务）
func (r *ProductRepositoryImpl) CreateBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	pos := make([]*entity.ProductPO, 0, len(products))
	for _, p := range products {
		pos = append(pos, p.ToPO())
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&pos).Error
	})
	if err != nil {
		return errorutil.TransientStore("create batch", err)
	}

	for i, po := range pos {
		products[i].ID = po.ID
	}
	return nil
}

// GetByID 根据 ID 查询
func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var po entity.ProductPO
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorutil.NotFound("product not found with id: %d", id)
		}
		return nil, errorutil.TransientStore("get by id", err)
	}
	return po.ToDomain(), nil
}

// Update 更新商品
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	po := product.ToPO()
	result := r.db.WithContext(ctx).
		Model(&entity.ProductPO{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":            po.Name,
			"category":        po.Category,
			"expiration_date": po.ExpirationDate,
			"quantity":        po.Quantity,
			"price":           po.Price,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return errorutil.TransientStore("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errorutil.NotFound("product not found with id: %d", product.ID)
	}
	return nil
}

// Delete 删除商品
func (r *ProductRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ProductPO{})
	if result.Error != nil {
		return errorutil.TransientStore("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errorutil.NotFound("product not found with id: %d", id)
	}
	return nil
}

// List 查询全部商品
func (r *ProductRepositoryImpl) List(ctx context.Context) ([]*entity.Product, error) {
	return r.find(ctx, "list", func(q *gorm.DB) *gorm.DB {
		return q.Order("id ASC")
	})
}

// SearchByName 名称模糊搜索
func (r *ProductRepositoryImpl) SearchByName(ctx context.Context, keyword string) ([]*entity.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	return r.find(ctx, "search by name", func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(name) LIKE ?", pattern).Order("id ASC")
	})
}

// ListByCategory 按分类查询
func (r *ProductRepositoryImpl) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.find(ctx, "list by category", func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category).Order("id ASC")
	})
}

// Count 商品总数
func (r *ProductRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.ProductPO{}).Count(&total).Error; err != nil {
		return 0, errorutil.TransientStore("count", err)
	}
	return total, nil
}

// find 执行查询并转换为领域对象
func (r *ProductRepositoryImpl) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*entity.Product, error) {
	var pos []entity.ProductPO
	if err := scope(r.db.WithContext(ctx).Model(&entity.ProductPO{})).Find(&pos).Error; err != nil {
		return nil, errorutil.TransientStore(op, err)
	}

	products := make([]*entity.Product, 0, len(pos))
	for i := range pos {
		products = append(products, pos[i].ToDomain())
	}
	return products, nil
}
