// Package analytics contiene los indicadores del embudo de ventas.
package analytics

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// KPIUseCase calcula los KPI sobre los negocios visibles para la sesión.
type KPIUseCase struct {
	deals *usecase.DealUseCase
}

// NewKPIUseCase construye el caso de uso.
func NewKPIUseCase(deals *usecase.DealUseCase) *KPIUseCase {
	return &KPIUseCase{deals: deals}
}

// GetKPI aplica visibilidad y consulta, y agrega el resultado.
func (uc *KPIUseCase) GetKPI(ctx context.Context, s entity.Session, q access.Query) (*dto.KPIResponse, error) {
	deals, err := uc.deals.List(ctx, s, q)
	if err != nil {
		return nil, err
	}
	return Summarize(deals), nil
}

// Summarize agrega una lista de negocios ya filtrada. Las sumas se hacen con decimal para no
// acumular error de punto flotante; byStage lista siempre las seis etapas.
func Summarize(deals []entity.Record) *dto.KPIResponse {
	counts := make(map[string]int, len(entity.Stages))
	estSum := decimal.Zero
	wonSum := decimal.Zero
	wonCount := 0
	for _, d := range deals {
		stage := d.String(entity.FieldStage)
		counts[stage]++
		v := Value(d[entity.FieldValue])
		estSum = estSum.Add(v)
		if stage == entity.StageWon {
			wonCount++
			wonSum = wonSum.Add(v)
		}
	}

	byStage := make([]dto.StageCount, 0, len(entity.Stages))
	for _, st := range entity.Stages {
		byStage = append(byStage, dto.StageCount{Stage: st, Count: counts[st]})
	}
	est, _ := estSum.Float64()
	won, _ := wonSum.Float64()
	return &dto.KPIResponse{
		Total:    len(deals),
		WonCount: wonCount,
		EstSum:   est,
		WonSum:   won,
		ByStage:  byStage,
	}
}

// Value interpreta el valor de un negocio como número: números y texto numérico tal cual,
// true como 1 y cualquier otra cosa (vacío, null, texto no numérico) como 0.
func Value(v any) decimal.Decimal {
	switch x := v.(type) {
	case json.Number:
		return parse(x.String())
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		return parse(x)
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
	}
	return decimal.Zero
}

func parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
