package models

import "time"

// RecipeIngredient ингредиент рецепта в развёрнутом виде.
type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Recipe представление рецепта для чтения.
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           Profile            `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	PubDate          time.Time          `json:"pub_date"`
}

// RecipeShort укороченное представление: избранное, корзина, подписки.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeRow строка таблицы recipes без связей.
type RecipeRow struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int
	PubDate     time.Time
}

// Short урезает строку до короткого представления.
func (r RecipeRow) Short() RecipeShort {
	return RecipeShort{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// IngredientAmount пара (ингредиент, количество) во входных данных.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int   `json:"amount" validate:"gte=1,lte=32000"`
}

// RecipeInput представление рецепта для записи: только идентификаторы.
type RecipeInput struct {
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64            `json:"tags" validate:"required,min=1"`
	Image       string             `json:"image"`
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time" validate:"gte=1,lte=32000"`
}

// RecipeFilter параметры выборки списка рецептов.
type RecipeFilter struct {
	AuthorID      int64
	TagSlugs      []string
	OnlyFavorited bool
	OnlyInCart    bool
	ViewerID      int64
	Limit         int
	Offset        int
}

// RecipeWrite данные, которые пишет хранилище при создании/изменении.
type RecipeWrite struct {
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int
	Tags        []int64
	Ingredients []IngredientAmount
}

// ShoppingItem строка агрегированного списка покупок.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Page страница результатов.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Mark вид отметки рецепта пользователем.
type Mark string

const (
	MarkFavorite     Mark = "favorites"
	MarkShoppingCart Mark = "shopping_cart"
)

// ShoppingFile готовый к скачиванию список покупок.
type ShoppingFile struct {
	Filename string
	Body     []byte
}
