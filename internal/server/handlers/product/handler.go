package product

import (
	"strconv"

	"expmon/internal/business/inventory"
	"expmon/pkg/errorutil"
)

// ProductHandler 商品 HTTP 处理器
type ProductHandler struct {
	productService *inventory.ProductService
}

// NewProductHandler 创建商品处理器实例
func NewProductHandler(productService *inventory.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errorutil.Validation("id must be a positive integer", err)
	}
	return id, nil
}
