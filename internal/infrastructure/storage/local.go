package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage guarda los archivos en el sistema de archivos local.
type LocalStorage struct {
	basePath     string
	publicPrefix string
}

// NewLocalStorage crea el directorio base si no existe.
func NewLocalStorage(basePath, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de adjuntos: %w", err)
	}
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStorage{basePath: basePath, publicPrefix: publicPrefix}, nil
}

// BasePath directorio raíz de los adjuntos.
func (s *LocalStorage) BasePath() string { return s.basePath }

// Save escribe el archivo en basePath/key.
func (s *LocalStorage) Save(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio: %w", err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	return joinURL(s.publicPrefix, key), nil
}

// Delete borra basePath/key.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}
