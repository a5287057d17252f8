// Package mediasvc принимает картинки рецептов из data URL и раскладывает их по хранилищу:
// локальный каталог или медиа-узлы.
package mediasvc

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sir_venger/foodgram/internal/models"
)

type (
	// Backend место хранения файлов.
	Backend interface {
		Put(ctx context.Context, name string, img models.Image) (models.MediaObject, error)
		// Delete удаляет файл по его публичному адресу.
		Delete(ctx context.Context, location string) error
	}

	// Service операции над картинками рецептов.
	Service interface {
		Decode(dataURL string) (models.Image, error)
		Save(ctx context.Context, img models.Image) (models.MediaObject, error)
		Remove(ctx context.Context, location string) error
		AddNodes(nodes ...string)
	}
)

type Deps struct {
	Backend  Backend
	MaxBytes int64
	// Router задан только для backend на медиа-узлах.
	Router *Router
}

type Media struct {
	Deps
}

// New конструирует сервис картинок.
func New(deps Deps) *Media {
	return &Media{Deps: deps}
}

var _ Service = (*Media)(nil)

// Save сохраняет картинку под новым именем recipes/<uuid>.<ext>.
func (m *Media) Save(ctx context.Context, img models.Image) (models.MediaObject, error) {
	name := fmt.Sprintf("recipes/%s.%s", uuid.NewString(), img.Ext)
	obj, err := m.Backend.Put(ctx, name, img)
	if err != nil {
		return models.MediaObject{}, fmt.Errorf("store image: %w", err)
	}
	return obj, nil
}

// Remove удаляет ранее сохранённую картинку.
func (m *Media) Remove(ctx context.Context, location string) error {
	if location == "" {
		return nil
	}
	return m.Backend.Delete(ctx, location)
}

// AddNodes добавляет медиа-узлы в маршрутизатор без удаления существующих.
func (m *Media) AddNodes(nodes ...string) {
	if m.Router == nil || len(nodes) == 0 {
		return
	}
	m.Router.Add(nodes...)
}
