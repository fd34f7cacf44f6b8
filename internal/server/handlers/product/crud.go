package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expmon/internal/apimodel/request"
	"expmon/internal/apimodel/response"
	"expmon/pkg/ginx"
)

// List 商品列表
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntities(products, h.productService.Today()))
}

// Get 商品详情
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntity(product, h.productService.Today()))
}

// Create 创建商品
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	input, err := req.ToInput()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Created(c, response.FromProductEntity(product, h.productService.Today()))
}

// Update 更新商品
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	input, err := req.ToInput()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		ginx.HandleError(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntity(product, h.productService.Today()))
}

// Delete 删除商品
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		ginx.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
