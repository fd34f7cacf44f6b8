package recipe

import (
	"expmon/internal/entity"
)

// Entry 目录条目：关键字 -> 菜谱集合
type Entry struct {
	Key     string
	Recipes []entity.RecipeSuggestion
}

// Catalog 菜谱目录
// 构造后只读；条目顺序即子串匹配的优先级
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog 按给定顺序创建目录，重复关键字以先出现者为准
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.index[e.Key]; ok {
			continue
		}
		c.index[e.Key] = len(c.entries)
		c.entries = append(c.entries, Entry{
			Key:     e.Key,
			Recipes: append([]entity.RecipeSuggestion(nil), e.Recipes...),
		})
	}
	return c
}

// Lookup 精确查找
func (c *Catalog) Lookup(key string) ([]entity.RecipeSuggestion, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.entries[i].Recipes, true
}

// Keys 按插入顺序返回关键字
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Len 条目数
func (c *Catalog) Len() int {
	return len(c.entries)
}

func r(name, desc string, ingredients []string, cookTime string, difficulty entity.Difficulty) entity.RecipeSuggestion {
	return entity.RecipeSuggestion{
		Name:        name,
		Description: desc,
		Ingredients: ingredients,
		CookTime:    cookTime,
		Difficulty:  difficulty,
	}
}

const (
	easy   = entity.DifficultyEasy
	medium = entity.DifficultyMedium
)

// DefaultCatalog 内置菜谱目录
func DefaultCatalog() *Catalog {
	return NewCatalog([]Entry{
		{Key: "milk", Recipes: []entity.RecipeSuggestion{
			r("Creamy Pancakes", "Fluffy pancakes perfect for breakfast",
				[]string{"milk", "flour", "eggs", "sugar", "baking powder"}, "20 minutes", easy),
			r("Milk Rice Pudding", "Comforting dessert with warm spices",
				[]string{"milk", "rice", "sugar", "vanilla", "cinnamon"}, "45 minutes", easy),
			r("White Sauce Pasta", "Creamy pasta with rich white sauce",
				[]string{"milk", "pasta", "butter", "flour", "cheese"}, "25 minutes", medium),
		}},
		{Key: "cheese", Recipes: []entity.RecipeSuggestion{
			r("Cheese Quesadillas", "Quick and delicious Mexican-style quesadillas",
				[]string{"cheese", "tortillas", "onions", "peppers"}, "15 minutes", easy),
			r("Mac and Cheese", "Classic comfort food with creamy cheese sauce",
				[]string{"cheese", "pasta", "milk", "butter", "flour"}, "30 minutes", medium),
			r("Cheese Omelette", "Perfect breakfast with melted cheese",
				[]string{"cheese", "eggs", "butter", "herbs"}, "10 minutes", easy),
		}},
		{Key: "yogurt", Recipes: []entity.RecipeSuggestion{
			r("Yogurt Smoothie Bowl", "Healthy breakfast bowl with fresh toppings",
				[]string{"yogurt", "berries", "granola", "honey"}, "5 minutes", easy),
			r("Yogurt Marinated Chicken", "Tender chicken with yogurt marinade",
				[]string{"yogurt", "chicken", "spices", "garlic", "lemon"}, "45 minutes", medium),
		}},
		{Key: "chicken", Recipes: []entity.RecipeSuggestion{
			r("Chicken Stir Fry", "Quick and healthy stir-fry with fresh vegetables",
				[]string{"chicken", "vegetables", "soy sauce", "garlic", "ginger"}, "20 minutes", easy),
			r("Chicken Curry", "Aromatic curry with rich coconut sauce",
				[]string{"chicken", "coconut milk", "curry powder", "onions", "tomatoes"}, "40 minutes", medium),
			r("Grilled Chicken Salad", "Healthy salad with grilled chicken breast",
				[]string{"chicken", "lettuce", "tomatoes", "cucumber", "dressing"}, "25 minutes", easy),
		}},
		{Key: "beef", Recipes: []entity.RecipeSuggestion{
			r("Beef Tacos", "Classic tacos with seasoned ground beef",
				[]string{"ground beef", "taco shells", "lettuce", "cheese", "tomatoes"}, "20 minutes", easy),
			r("Beef Stew", "Hearty stew perfect for cold days",
				[]string{"beef", "potatoes", "carrots", "onions", "broth"}, "2 hours", medium),
		}},
		{Key: "tomatoes", Recipes: []entity.RecipeSuggestion{
			r("Caprese Salad", "Fresh Italian salad with ripe tomatoes",
				[]string{"tomatoes", "mozzarella", "basil", "olive oil"}, "10 minutes", easy),
			r("Tomato Pasta Sauce", "Homemade pasta sauce with fresh tomatoes",
				[]string{"tomatoes", "garlic", "onions", "herbs", "olive oil"}, "30 minutes", easy),
			r("Stuffed Tomatoes", "Baked tomatoes stuffed with savory filling",
				[]string{"tomatoes", "rice", "herbs", "cheese"}, "45 minutes", medium),
		}},
		{Key: "lettuce", Recipes: []entity.RecipeSuggestion{
			r("Caesar Salad", "Classic Caesar salad with crispy lettuce",
				[]string{"lettuce", "croutons", "parmesan", "caesar dressing"}, "10 minutes", easy),
			r("Lettuce Wraps", "Healthy wraps using lettuce as shells",
				[]string{"lettuce", "ground meat", "vegetables", "sauce"}, "15 minutes", easy),
		}},
		{Key: "apples", Recipes: []entity.RecipeSuggestion{
			r("Apple Pie", "Classic American apple pie with flaky crust",
				[]string{"apples", "pie crust", "sugar", "cinnamon", "butter"}, "1 hour", medium),
			r("Apple Crisp", "Warm dessert with crunchy oat topping",
				[]string{"apples", "oats", "brown sugar", "butter", "cinnamon"}, "45 minutes", easy),
			r("Apple Sauce", "Homemade applesauce perfect as side or snack",
				[]string{"apples", "sugar", "cinnamon", "lemon juice"}, "25 minutes", easy),
		}},
		{Key: "bananas", Recipes: []entity.RecipeSuggestion{
			r("Banana Bread", "Moist banana bread perfect for overripe bananas",
				[]string{"bananas", "flour", "sugar", "eggs", "butter"}, "1 hour", easy),
			r("Banana Smoothie", "Creamy smoothie with natural sweetness",
				[]string{"bananas", "milk", "honey", "ice"}, "5 minutes", easy),
		}},
		{Key: "bread", Recipes: []entity.RecipeSuggestion{
			r("French Toast", "Perfect breakfast using day-old bread",
				[]string{"bread", "eggs", "milk", "cinnamon", "vanilla"}, "15 minutes", easy),
			r("Bread Pudding", "Comforting dessert that uses stale bread",
				[]string{"bread", "milk", "eggs", "sugar", "vanilla"}, "45 minutes", easy),
		}},
		{Key: "eggs", Recipes: []entity.RecipeSuggestion{
			r("Scrambled Eggs", "Creamy scrambled eggs for any meal",
				[]string{"eggs", "butter", "milk", "salt", "pepper"}, "5 minutes", easy),
			r("Egg Fried Rice", "Quick fried rice with scrambled eggs",
				[]string{"eggs", "rice", "vegetables", "soy sauce"}, "15 minutes", easy),
		}},
	})
}
