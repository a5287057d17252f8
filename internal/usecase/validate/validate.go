// Package validate проверяет входные структуры по тегам validate и переводит
// ошибки go-playground/validator в models.ValidationError с ключами из json-тегов.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sir_venger/foodgram/internal/models"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	colorRe    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		mustRegister("username", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return usernameRe.MatchString(s) && !strings.EqualFold(s, "me")
		})
		mustRegister("hexcolor6", func(fl validator.FieldLevel) bool {
			return colorRe.MatchString(fl.Field().String())
		})
		mustRegister("slug", func(fl validator.FieldLevel) bool {
			return slugRe.MatchString(fl.Field().String())
		})
	})
	return v
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Struct проверяет s. Нарушения возвращаются как *models.ValidationError.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &models.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldKey(fe.Namespace()), message(fe))
	}
	return out
}

// fieldKey отрезает имя структуры и индексы: "RecipeInput.ingredients[0].amount" -> "ingredients".
func fieldKey(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this list has no more than %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this list has at least %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "username":
		return "Enter a valid username. Letters, digits and @/./+/-/_ only; \"me\" is reserved."
	case "hexcolor6":
		return "Enter a color in #RRGGBB format."
	case "slug":
		return "Enter a valid slug."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
