package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/export"
)

// ExportHandler descargas CSV y PDF.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// CSV godoc
// @Summary      Exportar entidad a CSV
// @Description  Celdas como literales JSON; con format=rfc4180, CSV estándar.
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Param        entity  path   string  true   "deals, companies, contacts, activities o audit"
// @Param        format  query  string  false  "rfc4180"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/{entity}.csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	name := c.Params("entity")
	out, err := h.uc.CSV(c.UserContext(), GetSession(c), name, parseQuery(c), export.ParseFormat(c.Query("format")))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.csv", name))
	return c.Send(out)
}

// KPIReport godoc
// @Summary      Reporte de KPI en PDF
// @Tags         export
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /api/export/kpi.pdf [get]
func (h *ExportHandler) KPIReport(c *fiber.Ctx) error {
	out, err := h.uc.KPIReport(c.UserContext(), GetSession(c), parseQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=kpi.pdf")
	return c.Send(out)
}
