package entity

// Difficulty 菜谱难度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// RecipeSuggestion 菜谱建议
type RecipeSuggestion struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Ingredients []string   `json:"ingredients"`
	CookTime    string     `json:"cook_time"`
	Difficulty  Difficulty `json:"difficulty"`
	ForProduct  string     `json:"for_product,omitempty"`
}

// For 复制一份并标记触发的商品名
func (r RecipeSuggestion) For(productName string) RecipeSuggestion {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.ForProduct = productName
	return c
}
