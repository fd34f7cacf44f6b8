package recipe

import (
	"fmt"
	"strings"

	"expmon/internal/entity"
)

// DefaultMaxSuggestions 批量推荐的默认上限
const DefaultMaxSuggestions = 5

// keywordGroup 关键字分组，命中后路由到 target 对应的菜谱集合
type keywordGroup struct {
	name     string
	keywords []string
	target   string
}

// 分组按 meat -> vegetable -> fruit -> dairy 顺序检测
var defaultGroups = []keywordGroup{
	{name: "meat", keywords: []string{"chicken", "beef", "pork", "meat", "turkey", "lamb"}, target: "chicken"},
	{name: "vegetable", keywords: []string{"lettuce", "tomato", "spinach", "pepper", "carrot", "onion", "broccoli"}, target: "tomatoes"},
	{name: "fruit", keywords: []string{"apple", "banana", "berry", "orange", "grape", "strawberry"}, target: "apples"},
	{name: "dairy", keywords: []string{"milk", "cheese", "yogurt", "cream", "butter"}, target: "milk"},
}

// Matcher 菜谱匹配器
type Matcher struct {
	catalog *Catalog
	groups  []keywordGroup
	max     int
}

// NewMatcher 创建匹配器，max<=0 时使用默认上限
func NewMatcher(catalog *Catalog, max int) *Matcher {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}
	return &Matcher{
		catalog: catalog,
		groups:  defaultGroups,
		max:     max,
	}
}

// Suggest 为单个商品推荐菜谱，结果非空
// 依次尝试：精确匹配、子串匹配、关键字分组、通用兜底
func (m *Matcher) Suggest(productName string) []entity.RecipeSuggestion {
	name := normalize(productName)

	// 1. 精确匹配
	if recipes, ok := m.catalog.Lookup(name); ok {
		return tag(recipes, productName)
	}

	// 2. 子串匹配，按目录顺序取第一个
	for _, e := range m.catalog.entries {
		if strings.Contains(name, e.Key) || strings.Contains(e.Key, name) {
			return tag(e.Recipes, productName)
		}
	}

	// 3. 关键字分组
	for _, g := range m.groups {
		if containsAny(name, g.keywords) {
			if recipes, ok := m.catalog.Lookup(g.target); ok {
				return tag(recipes, productName)
			}
		}
	}

	// 4. 通用兜底
	return generic(productName)
}

// SuggestForMany 批量推荐：按菜谱名去重（先到先得），最多返回 max 条
func (m *Matcher) SuggestForMany(productNames []string) []entity.RecipeSuggestion {
	out := make([]entity.RecipeSuggestion, 0, m.max)
	seen := make(map[string]struct{})
	for _, n := range productNames {
		for _, s := range m.Suggest(n) {
			if _, ok := seen[s.Name]; ok {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, s)
			if len(out) == m.max {
				return out
			}
		}
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func tag(recipes []entity.RecipeSuggestion, productName string) []entity.RecipeSuggestion {
	out := make([]entity.RecipeSuggestion, 0, len(recipes))
	for _, s := range recipes {
		out = append(out, s.For(productName))
	}
	return out
}

func generic(productName string) []entity.RecipeSuggestion {
	lower := strings.ToLower(productName)
	return []entity.RecipeSuggestion{
		{
			Name:        "Quick Stir Fry",
			Description: fmt.Sprintf("Simple stir fry using %s", productName),
			Ingredients: []string{lower, "vegetables", "oil", "seasonings"},
			CookTime:    "15 minutes",
			Difficulty:  entity.DifficultyEasy,
			ForProduct:  productName,
		},
		{
			Name:        "Simple Soup",
			Description: fmt.Sprintf("Comforting soup featuring %s", productName),
			Ingredients: []string{lower, "broth", "vegetables", "herbs"},
			CookTime:    "30 minutes",
			Difficulty:  entity.DifficultyEasy,
			ForProduct:  productName,
		},
	}
}
