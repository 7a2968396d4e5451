package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/analytics"
)

// KPIHandler indicadores del embudo de ventas.
type KPIHandler struct {
	uc *analytics.KPIUseCase
}

// NewKPIHandler construye el handler.
func NewKPIHandler(uc *analytics.KPIUseCase) *KPIHandler {
	return &KPIHandler{uc: uc}
}

// Get godoc
// @Summary      KPI de negocios visibles
// @Tags         kpi
// @Produce      json
// @Security     BearerAuth
// @Param        q      query  string  false  "Búsqueda libre"
// @Param        stage  query  string  false  "Etapa"
// @Param        owner  query  string  false  "owner_id"
// @Param        team   query  string  false  "Equipo"
// @Param        month  query  string  false  "YYYY-MM"
// @Success      200  {object}  dto.Response{data=dto.KPIResponse}
// @Router       /api/kpi [get]
func (h *KPIHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetKPI(c.UserContext(), GetSession(c), parseQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
