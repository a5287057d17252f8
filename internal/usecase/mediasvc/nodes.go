package mediasvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/mediaclient"
	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// NodeStore хранит картинки на медиа-узлах, выбирая узел через Router.
type NodeStore struct {
	Router *Router
	Client mediaclient.Client
}

func NewNodeStore(r *Router, cli mediaclient.Client) *NodeStore {
	return &NodeStore{Router: r, Client: cli}
}

func (s *NodeStore) Put(ctx context.Context, name string, img models.Image) (models.MediaObject, error) {
	node, err := s.Router.Pick(ctx)
	if err != nil {
		return models.MediaObject{}, err
	}

	st, err := s.Client.Put(ctx, node, mediaclient.PutRequest{
		Name:        name,
		Data:        img.Data,
		ContentType: img.ContentType,
	})
	if err != nil {
		return models.MediaObject{}, err
	}

	return models.MediaObject{
		Name:        name,
		Size:        st.Size,
		Sha256:      st.Sha256,
		ContentType: img.ContentType,
		Location:    fmt.Sprintf(mediaproto.FilesPathFormat, node, name),
	}, nil
}

func (s *NodeStore) Delete(ctx context.Context, location string) error {
	node, name, ok := s.Router.Owner(location)
	if !ok {
		return fmt.Errorf("location %q does not belong to a known media node", location)
	}
	err := s.Client.Delete(ctx, node, name)
	if errors.Is(err, mediaclient.ErrNotFound) {
		return nil
	}
	return err
}
