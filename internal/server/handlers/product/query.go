package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"expmon/internal/apimodel/response"
	"expmon/internal/business/inventory"
	"expmon/pkg/ginx"
)

// Search 按名称搜索
// GET /api/v1/products/search?name=milk
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Request.Context(), c.Query("name"))
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntities(products, h.productService.Today()))
}

// ByCategory 按分类查询
// GET /api/v1/products/category/:category
func (h *ProductHandler) ByCategory(c *gin.Context) {
	products, err := h.productService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntities(products, h.productService.Today()))
}

// ExpiringInDays 查询 days 天内过期的商品
// GET /api/v1/products/expiring-in-days/:days
func (h *ProductHandler) ExpiringInDays(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 0 || days > inventory.MaxWindowDays {
		ginx.BadRequest(c, "days must be an integer within 0-365")
		return
	}

	products, err := h.productService.ListExpiringWithin(c.Request.Context(), days)
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromExpiringProducts(days, products, h.productService.Today()))
}

// ExpiringTomorrow 明天过期的商品
// GET /api/v1/products/expiring-tomorrow
func (h *ProductHandler) ExpiringTomorrow(c *gin.Context) {
	products, err := h.productService.ListExpiringTomorrow(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromExpiringProducts(1, products, h.productService.Today()))
}

// Expired 已过期商品
// GET /api/v1/products/expired
func (h *ProductHandler) Expired(c *gin.Context) {
	products, err := h.productService.ListExpired(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntities(products, h.productService.Today()))
}
