package mediahttp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// insertFile принимает PUT: пишет во временный файл и переименовывает после проверок.
func (a *Server) insertFile(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireFileRequest(w, r)
	if !ok {
		return
	}

	if r.ContentLength > a.maxBytes {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	body := http.MaxBytesReader(w, r.Body, a.maxBytes)

	if err := os.MkdirAll(a.tmpDir, 0o755); err != nil {
		a.fail(w, r, err)
		return
	}
	tmp, err := os.CreateTemp(a.tmpDir, "upload-*")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	h := sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(tmp, h), body)
	closeErr := tmp.Close()
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(copyErr, &tooLarge):
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	case copyErr != nil:
		http.Error(w, copyErr.Error(), http.StatusBadRequest)
		return
	}
	if closeErr != nil {
		a.fail(w, r, closeErr)
		return
	}

	if r.ContentLength >= 0 && n != r.ContentLength {
		http.Error(w, "size mismatch", http.StatusBadRequest)
		return
	}
	got := hex.EncodeToString(h.Sum(nil))
	if exp := r.Header.Get(mediaproto.HeaderChecksum); exp != "" && exp != got {
		http.Error(w, "sha256 mismatch", http.StatusConflict)
		return
	}

	if err := os.MkdirAll(filepath.Dir(req.path), 0o755); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := os.Rename(tmp.Name(), req.path); err != nil {
		a.fail(w, r, err)
		return
	}
	committed = true

	a.log.Debug("media file stored", zap.String("name", req.name), zap.Int64("size", n))
	w.Header().Set(mediaproto.HeaderChecksum, got)
	w.Header().Set(mediaproto.HeaderSize, strconv.FormatInt(n, 10))
	w.WriteHeader(http.StatusCreated)
}
