package recipe

import (
	"strings"

	"github.com/gin-gonic/gin"

	"expmon/internal/apimodel/request"
	"expmon/internal/apimodel/response"
	"expmon/internal/business/recipe"
	"expmon/pkg/ginx"
)

// RecipeHandler 菜谱 HTTP 处理器
type RecipeHandler struct {
	matcher *recipe.Matcher
}

// NewRecipeHandler 创建菜谱处理器实例
func NewRecipeHandler(matcher *recipe.Matcher) *RecipeHandler {
	return &RecipeHandler{
		matcher: matcher,
	}
}

// Suggest 单个商品的菜谱推荐
// GET /api/v1/recipes/:productName
func (h *RecipeHandler) Suggest(c *gin.Context) {
	name := c.Param("productName")
	if strings.TrimSpace(name) == "" {
		ginx.BadRequest(c, "productName is required")
		return
	}

	ginx.Success(c, &response.RecipesResponse{
		ProductName: name,
		Recipes:     h.matcher.Suggest(name),
	})
}

// SuggestForMany 批量推荐（去重，最多 5 条）
// POST /api/v1/recipes/suggest
func (h *RecipeHandler) SuggestForMany(c *gin.Context) {
	var req request.SuggestRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ginx.Success(c, &response.RecipesResponse{
		Recipes: h.matcher.SuggestForMany(req.ProductNames),
	})
}
