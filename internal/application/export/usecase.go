package export

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// KPIReportGenerator puerto de salida para el reporte de KPI en PDF.
type KPIReportGenerator interface {
	GenerateKPIReport(ctx context.Context, author string, kpi *dto.KPIResponse, generatedAt time.Time) ([]byte, error)
}

// ExportUseCase descargas con el mismo filtro de visibilidad y consulta que los listados.
type ExportUseCase struct {
	tx     ports.TxRunner
	kpi    *analytics.KPIUseCase
	report KPIReportGenerator
}

// NewExportUseCase construye el caso de uso. report puede ser nil si no se exporta PDF.
func NewExportUseCase(tx ports.TxRunner, kpi *analytics.KPIUseCase, report KPIReportGenerator) *ExportUseCase {
	return &ExportUseCase{tx: tx, kpi: kpi, report: report}
}

// CSV exporta la entidad indicada. Devuelve domain.ErrUnknownEntity si el nombre no es
// deals, companies, contacts, activities ni audit.
func (uc *ExportUseCase) CSV(ctx context.Context, s entity.Session, name string, q access.Query, format Format) ([]byte, error) {
	schema, err := entity.ExportSchema(name)
	if err != nil {
		return nil, err
	}
	rows, err := usecase.NewRecordUseCase(schema, uc.tx).List(ctx, s, q)
	if err != nil {
		return nil, err
	}
	return RenderCSV(rows, schema.Columns, format)
}

// KPIReport genera el PDF con los KPI de la sesión.
func (uc *ExportUseCase) KPIReport(ctx context.Context, s entity.Session, q access.Query) ([]byte, error) {
	kpi, err := uc.kpi.GetKPI(ctx, s, q)
	if err != nil {
		return nil, err
	}
	author := s.Name
	if author == "" {
		author = s.Email
	}
	return uc.report.GenerateKPIReport(ctx, author, kpi, time.Now())
}
