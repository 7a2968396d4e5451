package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DocumentPersister = (*FilePersister)(nil)

// FilePersister guarda el documento en un archivo JSON. Save escribe un temporal en el mismo
// directorio y lo renombra, así un lector nunca ve un archivo a medio escribir.
type FilePersister struct {
	path string
}

// NewFilePersister construye el persister. El directorio se crea en el primer Save, así que
// solo leer no toca el disco.
func NewFilePersister(path string) (*FilePersister, error) {
	if path == "" {
		return nil, errors.New("ruta del documento vacía")
	}
	return &FilePersister{path: path}, nil
}

// Path ruta del archivo del documento.
func (p *FilePersister) Path() string { return p.path }

// Load lee el archivo. Devuelve (nil, nil) si no existe.
func (p *FilePersister) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer documento: %w", err)
	}
	return data, nil
}

// Save reemplaza el archivo completo.
func (p *FilePersister) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de datos: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir documento: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sincronizar documento: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrar documento: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("reemplazar documento: %w", err)
	}
	return nil
}
