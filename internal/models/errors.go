package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotExists          = errors.New("does not exist")
	ErrSelfSubscribe      = errors.New("cannot subscribe to yourself")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrUnauthorized       = errors.New("authentication credentials were not provided or are invalid")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrEmptyCart          = errors.New("shopping cart is empty")
	ErrNoMediaNode        = errors.New("no media node ready")
)

// ValidationError собирает ошибки валидации по полям запроса.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создаёт ошибку с одним сообщением для поля.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add добавляет сообщение к полю.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty сообщает, что ошибок не накоплено.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err возвращает nil, если ошибок нет. Удобно в конце валидации.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// DuplicateError нарушение уникальности по конкретному полю.
// errors.Is(err, ErrAlreadyExists) для неё истинно.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrAlreadyExists.Error()
	}
	return e.Field + " " + ErrAlreadyExists.Error()
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrAlreadyExists
}
