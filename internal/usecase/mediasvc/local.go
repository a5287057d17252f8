package mediasvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sir_venger/foodgram/internal/models"
)

// LocalStore хранит картинки в каталоге, который REST-сервер раздаёт по PublicURL.
type LocalStore struct {
	Dir       string
	PublicURL string
}

func NewLocalStore(dir, publicURL string) *LocalStore {
	return &LocalStore{Dir: dir, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStore) Put(_ context.Context, name string, img models.Image) (models.MediaObject, error) {
	dst := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return models.MediaObject{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return models.MediaObject{}, err
	}
	if _, err := tmp.Write(img.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return models.MediaObject{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return models.MediaObject{}, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return models.MediaObject{}, err
	}

	sum := sha256.Sum256(img.Data)
	return models.MediaObject{
		Name:        name,
		Size:        int64(len(img.Data)),
		Sha256:      hex.EncodeToString(sum[:]),
		ContentType: img.ContentType,
		Location:    s.PublicURL + "/" + name,
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, location string) error {
	name, ok := strings.CutPrefix(location, s.PublicURL+"/")
	if !ok || name == "" {
		return fmt.Errorf("location %q is not managed by local media store", location)
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")

	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
