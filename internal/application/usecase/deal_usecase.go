package usecase

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DealUseCase servicio de negocios: el CRUD genérico más el cambio de etapa.
type DealUseCase struct {
	*RecordUseCase
}

// NewDealUseCase construye el servicio de negocios.
func NewDealUseCase(tx ports.TxRunner) *DealUseCase {
	return &DealUseCase{RecordUseCase: NewRecordUseCase(entity.DealSchema, tx)}
}

// Move cambia la etapa del negocio. Cualquier etapa puede pasar a cualquier otra.
// Devuelve ErrNotFound si el negocio no existe o no es visible, y ErrInvalidStage si stage
// no es una de las seis etapas; en ambos casos el negocio queda igual.
func (uc *DealUseCase) Move(ctx context.Context, s entity.Session, id string, stage any) (entity.Record, error) {
	now := uc.now()
	var next entity.Record
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		prev, err := uc.visible(r, s, id)
		if err != nil {
			return err
		}
		if !entity.IsValidStage(stage) {
			return domain.ErrInvalidStage
		}
		next = prev.Merge(entity.Record{
			entity.FieldStage:     stage,
			entity.FieldUpdatedAt: entity.Timestamp(now),
		})
		if err := r.Records.Replace(entity.CollectionDeals, next); err != nil {
			return err
		}
		detail := map[string]any{"stage": stage}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionMove, entity.KindDeal, prev.ID(), detail, now))
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
