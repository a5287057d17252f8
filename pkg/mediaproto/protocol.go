// Package mediaproto описывает HTTP-протокол между REST-сервисом и медиа-узлами.
package mediaproto

// Параметры протокола медиа-узлов.
const (
	// FilesPathFormat base URL, имя файла (может содержать '/').
	FilesPathFormat = "%s/files/%s"
	FilesPrefix     = "/files/"
	HealthPath      = "/health"
	GCPath          = "/admin/gc"

	HeaderChecksum = "X-Checksum-Sha256"
	HeaderSize     = "X-Size"
)

// Health ответ GET /health.
type Health struct {
	OK         bool  `json:"ok"`
	TotalBytes int64 `json:"total_bytes"`
	Files      int64 `json:"files"`
}
