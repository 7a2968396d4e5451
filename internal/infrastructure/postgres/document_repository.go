package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DocumentPersister = (*DocumentRepo)(nil)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS crm_documents (
		id         TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// DocumentRepo guarda el documento completo del CRM en una fila JSONB. Cada Save es un upsert
// atómico de la fila entera, equivalente al reemplazo del archivo en el backend local.
type DocumentRepo struct {
	pool *pgxpool.Pool
	id   string
}

// NewDocumentRepository construye el adaptador; id identifica la fila del documento.
func NewDocumentRepository(pool *pgxpool.Pool, id string) *DocumentRepo {
	return &DocumentRepo{pool: pool, id: id}
}

// Migrate crea la tabla si no existe.
func (r *DocumentRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("migrate crm_documents: %w", err)
	}
	return nil
}

// Load devuelve (nil, nil) si la fila no existe.
func (r *DocumentRepo) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := r.pool.QueryRow(ctx, `SELECT body::text FROM crm_documents WHERE id = $1`, r.id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return body, nil
}

// Save reemplaza el documento completo.
func (r *DocumentRepo) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO crm_documents (id, body, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
	if _, err := r.pool.Exec(ctx, query, r.id, string(data)); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}
