package recipesvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/usecase/validate"
)

// checkInput собирает все ошибки ввода в одну *models.ValidationError.
// Картинка декодируется, если передана; requireImage требует её наличия.
func (s *Recipes) checkInput(ctx context.Context, in models.RecipeInput, requireImage bool) (*models.Image, error) {
	verr := &models.ValidationError{}
	if err := validate.Struct(in); err != nil {
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		verr = ve
	}

	ingredientIDs := make([]int64, 0, len(in.Ingredients))
	seen := make(map[int64]bool, len(in.Ingredients))
	for _, item := range in.Ingredients {
		if seen[item.ID] {
			verr.Add("ingredients", fmt.Sprintf("Ingredient %d is listed more than once.", item.ID))
			continue
		}
		seen[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	if len(ingredientIDs) > 0 {
		found, err := s.Catalog.IngredientsByIDs(ctx, ingredientIDs)
		if err != nil {
			return nil, err
		}
		if missing := missingIDs(ingredientIDs, ingredientKeys(found)); len(missing) > 0 {
			verr.Add("ingredients", fmt.Sprintf("Unknown ingredients: %v.", missing))
		}
	}

	tagIDs := make([]int64, 0, len(in.Tags))
	seenTag := make(map[int64]bool, len(in.Tags))
	for _, id := range in.Tags {
		if seenTag[id] {
			verr.Add("tags", fmt.Sprintf("Tag %d is listed more than once.", id))
			continue
		}
		seenTag[id] = true
		tagIDs = append(tagIDs, id)
	}
	if len(tagIDs) > 0 {
		found, err := s.Catalog.TagsByIDs(ctx, tagIDs)
		if err != nil {
			return nil, err
		}
		if missing := missingIDs(tagIDs, tagKeys(found)); len(missing) > 0 {
			verr.Add("tags", fmt.Sprintf("Unknown tags: %v.", missing))
		}
	}

	var img *models.Image
	switch {
	case in.Image != "":
		decoded, err := s.Media.Decode(in.Image)
		if err != nil {
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			for field, msgs := range ve.Fields {
				for _, m := range msgs {
					verr.Add(field, m)
				}
			}
		} else {
			img = &decoded
		}
	case requireImage:
		verr.Add("image", "This field is required.")
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func ingredientKeys(list []models.Ingredient) map[int64]bool {
	out := make(map[int64]bool, len(list))
	for _, i := range list {
		out[i.ID] = true
	}
	return out
}

func tagKeys(list []models.Tag) map[int64]bool {
	out := make(map[int64]bool, len(list))
	for _, t := range list {
		out[t.ID] = true
	}
	return out
}

func missingIDs(want []int64, have map[int64]bool) []int64 {
	var out []int64
	for _, id := range want {
		if !have[id] {
			out = append(out, id)
		}
	}
	return out
}

// writeOf данные для хранилища из проверенного ввода.
func writeOf(authorID int64, in models.RecipeInput) models.RecipeWrite {
	return models.RecipeWrite{
		AuthorID:    authorID,
		Name:        in.Name,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Tags:        in.Tags,
		Ingredients: in.Ingredients,
	}
}
