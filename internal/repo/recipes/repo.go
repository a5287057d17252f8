// Package recipes хранит рецепты, их состав, теги и отметки пользователей
// (избранное и корзина покупок).
package recipes

import (
	"database/sql"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

const (
	recipesTable     = "recipes"
	ingredientsTable = "recipe_ingredients"
	tagsTable        = "recipe_tags"
)

var recipeColumns = []string{
	"r.id", "r.author_id", "r.name", "r.image", "r.text", "r.cooking_time", "r.pub_date",
}

// Store хранилище рецептов.
type Store struct {
	db *repo.DB
}

func New(db *repo.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (models.RecipeRow, error) {
	var r models.RecipeRow
	err := row.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.PubDate)
	return r, err
}

func scanRecipes(rows *sql.Rows) ([]models.RecipeRow, error) {
	defer rows.Close()

	var out []models.RecipeRow
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
