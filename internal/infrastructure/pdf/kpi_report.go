// Package pdf genera el reporte de KPI del embudo de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + usuario  │  fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Negocios | Ganados | Valor estimado | Valor ganado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Etapa | Negocios | % del total                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// KPIReportGenerator implementa export.KPIReportGenerator usando Maroto v2.
type KPIReportGenerator struct{}

// NewKPIReportGenerator construye el generador.
func NewKPIReportGenerator() *KPIReportGenerator { return &KPIReportGenerator{} }

// GenerateKPIReport genera el PDF y devuelve sus bytes.
func (g *KPIReportGenerator) GenerateKPIReport(
	_ context.Context,
	author string,
	kpi *dto.KPIResponse,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de KPI", true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(author, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(kpi))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(stageRows(kpi)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(author string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("KPI DEL EMBUDO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(author, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(kpi *dto.KPIResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Negocios", fmt.Sprintf("%d", kpi.Total)),
		cell("Ganados", fmt.Sprintf("%d", kpi.WonCount)),
		cell("Valor estimado", formatMoney(kpi.EstSum)),
		cell("Valor ganado", formatMoney(kpi.WonSum)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Etapa", 6, align.Left),
		h("Negocios", 3, align.Right),
		h("% del total", 3, align.Right),
	)
}

func stageRows(kpi *dto.KPIResponse) []core.Row {
	rows := make([]core.Row, 0, len(kpi.ByStage))
	for _, sc := range kpi.ByStage {
		pct := "0%"
		if kpi.Total > 0 {
			pct = decimal.NewFromInt(int64(sc.Count)*100).
				Div(decimal.NewFromInt(int64(kpi.Total))).
				StringFixed(1) + "%"
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(sc.Stage, props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", sc.Count), props.Text{Size: 9, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(pct, props.Text{Size: 9, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con comas de miles. Ej: 1234567.5 → "1,234,567.50"
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
