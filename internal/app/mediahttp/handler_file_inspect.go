package mediahttp

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// inspectFile отвечает на HEAD размером и контрольной суммой файла.
func (a *Server) inspectFile(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireFileRequest(w, r)
	if !ok {
		return
	}

	f, err := os.Open(req.path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set(mediaproto.HeaderSize, strconv.FormatInt(info.Size(), 10))
	w.Header().Set(mediaproto.HeaderChecksum, hex.EncodeToString(h.Sum(nil)))
	w.WriteHeader(http.StatusOK)
}
