// Package mediaclient HTTP-клиент медиа-узла.
package mediaclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// ErrNotFound узел не знает такого файла.
var ErrNotFound = errors.New("media file not found")

type PutRequest struct {
	Name        string
	Data        []byte
	ContentType string
}

// Stat размер и контрольная сумма записанного файла.
type Stat struct {
	Size   int64
	Sha256 string
}

type Client interface {
	// Put кладёт файл на узел, узел сверяет контрольную сумму
	Put(ctx context.Context, baseURL string, req PutRequest) (Stat, error)
	Delete(ctx context.Context, baseURL, name string) error
	Health(ctx context.Context, baseURL string) (mediaproto.Health, error)
}

type httpClient struct {
	c *http.Client
}

// New создаёт HTTP-клиент по умолчанию.
func New() Client {
	return &httpClient{
		c: &http.Client{Timeout: 30 * time.Second},
	}
}

func fileURL(baseURL, name string) string {
	return fmt.Sprintf(mediaproto.FilesPathFormat, strings.TrimRight(baseURL, "/"), strings.TrimLeft(name, "/"))
}

func (h *httpClient) Put(ctx context.Context, baseURL string, req PutRequest) (Stat, error) {
	sum := sha256.Sum256(req.Data)
	st := Stat{Size: int64(len(req.Data)), Sha256: hex.EncodeToString(sum[:])}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, fileURL(baseURL, req.Name), bytes.NewReader(req.Data))
	if err != nil {
		return Stat{}, err
	}
	httpReq.ContentLength = st.Size
	httpReq.Header.Set(mediaproto.HeaderChecksum, st.Sha256)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return Stat{}, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return Stat{}, fmt.Errorf("media PUT %s failed: %s", req.Name, resp.Status)
	}
	return st, nil
}

func (h *httpClient) Delete(ctx context.Context, baseURL, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fileURL(baseURL, name), nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	}
	return fmt.Errorf("media DELETE %s failed: %s", name, resp.Status)
}

func (h *httpClient) Health(ctx context.Context, baseURL string) (mediaproto.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+mediaproto.HealthPath, nil)
	if err != nil {
		return mediaproto.Health{}, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return mediaproto.Health{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mediaproto.Health{}, fmt.Errorf("health check failed: %s", resp.Status)
	}

	var payload mediaproto.Health
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mediaproto.Health{}, err
	}
	return payload, nil
}
