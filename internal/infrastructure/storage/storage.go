// Package storage guarda los archivos adjuntos en disco local o en S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Storage guarda el contenido bajo key y devuelve la URL pública del archivo. Delete de una
// clave inexistente no es error.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Type backend de almacenamiento.
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config configuración del backend.
type Config struct {
	Type         Type
	LocalPath    string // local: directorio servido en PublicPrefix
	PublicPrefix string // local: prefijo de URL, por defecto /uploads
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// New crea el backend según la configuración.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStorage(cfg.LocalPath, cfg.PublicPrefix)
	case TypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("tipo de almacenamiento desconocido: %s", cfg.Type)
	}
}

// Key arma la clave de un archivo subido: YYYY-MM-DD/<milisegundos>_<nombre saneado>.
func Key(now time.Time, filename string) string {
	now = now.UTC()
	return now.Format("2006-01-02") + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + SanitizeFilename(filename)
}

// SanitizeFilename normaliza a NFC y reemplaza por "_" todo carácter que no sea letra ASCII,
// dígito, "_", ".", "-", espacio o letra tailandesa (U+0E01..U+0E59).
func SanitizeFilename(name string) string {
	name = norm.NFC.String(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if allowedRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	case r >= 0x0E01 && r <= 0x0E59:
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}

// ContentType deduce el tipo MIME por extensión.
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func joinURL(prefix, key string) string {
	return path.Join("/", prefix, key)
}
