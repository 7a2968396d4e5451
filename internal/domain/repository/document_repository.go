package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// DocumentPersister guarda y lee el documento completo serializado. Cada Save reemplaza el
// documento entero; nunca hay escrituras parciales.
type DocumentPersister interface {
	// Load devuelve (nil, nil) si todavía no existe un documento guardado.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// RecordRepository puerto sobre una colección de registros de negocio.
type RecordRepository interface {
	List(collection string) ([]entity.Record, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(collection, id string) (entity.Record, error)
	// Prepend agrega al inicio (los más nuevos primero).
	Prepend(collection string, r entity.Record) error
	Append(collection string, r entity.Record) error
	// Replace sustituye el registro con el mismo id. Devuelve domain.ErrNotFound si no existe.
	Replace(collection string, r entity.Record) error
}

// AuditRepository bitácora de solo inserción, la entrada más nueva primero.
type AuditRepository interface {
	// Add inserta la entrada al inicio.
	Add(entry entity.Record) error
	List() ([]entity.Record, error)
}

// Repos conjunto de repositorios atados a una misma vista del documento.
type Repos struct {
	Users   UserRepository
	Records RecordRepository
	Audit   AuditRepository
}
