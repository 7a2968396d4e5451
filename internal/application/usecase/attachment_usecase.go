package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/storage"
)

// UploadFile archivo recibido en una subida. Open se llama una sola vez.
type UploadFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadLimits límites de una subida.
type UploadLimits struct {
	MaxFiles int
	MaxBytes int64
}

// AttachmentUseCase adjuntos de archivos a cualquier registro.
type AttachmentUseCase struct {
	*RecordUseCase
	files  ports.FileStorage
	limits UploadLimits
}

// NewAttachmentUseCase construye el servicio de adjuntos.
func NewAttachmentUseCase(tx ports.TxRunner, files ports.FileStorage, limits UploadLimits) *AttachmentUseCase {
	return &AttachmentUseCase{
		RecordUseCase: NewRecordUseCase(entity.AttachmentSchema, tx),
		files:         files,
		limits:        limits,
	}
}

// Upload guarda el contenido de cada archivo, agrega un registro de adjunto por archivo al
// final de la colección y audita una sola entrada con la cantidad. Si algo falla, los archivos
// ya guardados se borran.
func (uc *AttachmentUseCase) Upload(ctx context.Context, s entity.Session, entityName, entityID string, files []UploadFile) ([]entity.Record, error) {
	if uc.limits.MaxFiles > 0 && len(files) > uc.limits.MaxFiles {
		return nil, fmt.Errorf("%w: máximo %d archivos", domain.ErrInvalidInput, uc.limits.MaxFiles)
	}
	for _, f := range files {
		if uc.limits.MaxBytes > 0 && f.Size > uc.limits.MaxBytes {
			return nil, fmt.Errorf("%w: %s supera %d bytes", domain.ErrInvalidInput, f.Filename, uc.limits.MaxBytes)
		}
	}

	now := uc.now()
	records := make([]entity.Record, 0, len(files))
	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := storage.Key(now, f.Filename)
		url, err := uc.store(ctx, key, f)
		if err != nil {
			return nil, errors.Join(err, uc.discard(ctx, keys))
		}
		keys = append(keys, key)
		records = append(records, entity.Record{
			entity.FieldID:         entity.NewID(),
			"entity":               optional(entityName),
			"entity_id":            optional(entityID),
			"filename":             f.Filename,
			"url":                  url,
			entity.FieldUploadedBy: s.UserID,
			entity.FieldTeam:       s.Team,
			entity.FieldZone:       s.Zone,
			entity.FieldCreatedAt:  entity.Timestamp(now),
		})
	}

	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		for _, rec := range records {
			if err := r.Records.Append(entity.CollectionAttachments, rec); err != nil {
				return err
			}
		}
		detail := map[string]any{"count": len(records)}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionUpload, entity.KindFile, entityID, detail, now))
	})
	if err != nil {
		// Sin registro de adjunto los archivos quedarían huérfanos.
		return nil, errors.Join(err, uc.discard(ctx, keys))
	}
	return records, nil
}

// ListFor devuelve los adjuntos visibles, opcionalmente de un registro (entity, entity_id).
func (uc *AttachmentUseCase) ListFor(ctx context.Context, s entity.Session, entityName, entityID string, q access.Query) ([]entity.Record, error) {
	list, err := uc.List(ctx, s, q)
	if err != nil {
		return nil, err
	}
	if entityName == "" && entityID == "" {
		return list, nil
	}
	out := make([]entity.Record, 0, len(list))
	for _, r := range list {
		if entityName != "" && r.String("entity") != entityName {
			continue
		}
		if entityID != "" && r.String("entity_id") != entityID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (uc *AttachmentUseCase) store(ctx context.Context, key string, f UploadFile) (string, error) {
	body, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("abrir %s: %w", f.Filename, err)
	}
	defer body.Close()
	url, err := uc.files.Save(ctx, key, body, storage.ContentType(f.Filename))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return url, nil
}

// discard borra los archivos ya guardados de una subida que no se registró. Usa un contexto
// que sobrevive a la cancelación del request.
func (uc *AttachmentUseCase) discard(ctx context.Context, keys []string) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, key := range keys {
		if err := uc.files.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func optional(v string) any {
	if v == "" {
		return nil
	}
	return v
}
