package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// RecordUseCase servicio genérico de una colección de negocio (empresas, contactos, negocios,
// actividades, adjuntos, auditoría). Las particularidades de cada entidad vienen del Schema.
type RecordUseCase struct {
	schema entity.Schema
	tx     ports.TxRunner
	now    func() time.Time
}

// NewRecordUseCase construye el servicio para el esquema dado.
func NewRecordUseCase(schema entity.Schema, tx ports.TxRunner) *RecordUseCase {
	return &RecordUseCase{schema: schema, tx: tx, now: time.Now}
}

// Schema esquema de la colección.
func (uc *RecordUseCase) Schema() entity.Schema { return uc.schema }

// List devuelve los registros visibles para la sesión que cumplen la consulta, en el orden
// de la colección.
func (uc *RecordUseCase) List(ctx context.Context, s entity.Session, q access.Query) ([]entity.Record, error) {
	var out []entity.Record
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		list, err := r.Records.List(uc.schema.Collection)
		if err != nil {
			return err
		}
		out = access.Filter(list, s, q)
		return nil
	})
	return out, err
}

// GetByID devuelve el registro si existe y la sesión lo puede ver; si no, ErrNotFound.
func (uc *RecordUseCase) GetByID(ctx context.Context, s entity.Session, id string) (entity.Record, error) {
	var rec entity.Record
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		rec, err = uc.visible(r, s, id)
		return err
	})
	return rec, err
}

// Create estampa id, created_at y propietario de la sesión, aplica los valores por defecto del
// esquema, mezcla los campos del cliente encima (pueden pisar lo estampado salvo id y los campos
// Stamped), lo agrega al inicio de la colección y lo audita.
func (uc *RecordUseCase) Create(ctx context.Context, s entity.Session, fields entity.Record) (entity.Record, error) {
	now := uc.now()
	stamp := entity.Record{
		entity.FieldID:        entity.NewID(),
		entity.FieldCreatedAt: entity.Timestamp(now),
		entity.FieldOwnerID:   s.UserID,
		entity.FieldTeam:      s.Team,
		entity.FieldZone:      s.Zone,
	}
	rec := entity.Record{}
	if uc.schema.Defaults != nil {
		rec = uc.schema.Defaults()
	}
	rec = rec.Merge(stamp).Merge(fields)
	rec[entity.FieldID] = stamp[entity.FieldID]
	for _, k := range uc.schema.Stamped {
		rec[k] = stamp[k]
	}
	if uc.schema.OnCreate != nil {
		uc.schema.OnCreate(rec)
	}

	var detail map[string]any
	if uc.schema.AuditDetail != nil {
		detail = uc.schema.AuditDetail(rec)
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Records.Prepend(uc.schema.Collection, rec); err != nil {
			return err
		}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionCreate, uc.schema.Kind, rec.ID(), detail, now))
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update mezcla patch sobre el registro, fija updated_at y lo audita. El id no se puede
// cambiar. Un registro inexistente o no visible para la sesión es ErrNotFound.
func (uc *RecordUseCase) Update(ctx context.Context, s entity.Session, id string, patch entity.Record) (entity.Record, error) {
	now := uc.now()
	var next entity.Record
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		prev, err := uc.visible(r, s, id)
		if err != nil {
			return err
		}
		next = prev.Merge(patch)
		next[entity.FieldID] = prev.ID()
		next[entity.FieldUpdatedAt] = entity.Timestamp(now)
		if uc.schema.OnUpdate != nil {
			uc.schema.OnUpdate(prev, next)
		}
		if err := r.Records.Replace(uc.schema.Collection, next); err != nil {
			return err
		}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionUpdate, uc.schema.Kind, prev.ID(), nil, now))
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (uc *RecordUseCase) visible(r repository.Repos, s entity.Session, id string) (entity.Record, error) {
	rec, err := r.Records.GetByID(uc.schema.Collection, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || !access.CanSee(s, rec) {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}
