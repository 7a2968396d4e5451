package ports

import (
	"context"
	"io"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner unidad de trabajo sobre el documento del CRM.
// Run serializa las escrituras: fn lee, modifica y, si termina sin error, el documento se
// persiste completo una sola vez. View ejecuta fn sobre una instantánea de solo lectura.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
	View(ctx context.Context, fn func(repos repository.Repos) error) error
}

// FileStorage puerto de salida para el contenido de los adjuntos (disco local, S3).
// Save devuelve la URL con la que el cliente descarga el archivo.
type FileStorage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
