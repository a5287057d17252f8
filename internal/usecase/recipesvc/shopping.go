package recipesvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sir_venger/foodgram/internal/models"
)

// ShoppingList собирает текстовый список покупок по корзине пользователя.
func (s *Recipes) ShoppingList(ctx context.Context, user models.User) (models.ShoppingFile, error) {
	size, err := s.Recipes.CartSize(ctx, user.ID)
	if err != nil {
		return models.ShoppingFile{}, err
	}
	if size == 0 {
		return models.ShoppingFile{}, models.ErrEmptyCart
	}

	items, err := s.Recipes.ShoppingList(ctx, user.ID)
	if err != nil {
		return models.ShoppingFile{}, err
	}

	return models.ShoppingFile{
		Filename: user.Username + "_shopping_list.txt",
		Body:     []byte(renderShoppingList(user, items, s.Now())),
	}, nil
}

func renderShoppingList(user models.User, items []models.ShoppingItem, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Список покупок для: %s\n\n", user.FullName())
	fmt.Fprintf(&b, "Дата: %s\n\n", now.Format(time.DateOnly))
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s) - %d", it.Name, it.MeasurementUnit, it.Amount)
	}
	fmt.Fprintf(&b, "\n\nFoodgram (%d)", now.Year())
	return b.String()
}
