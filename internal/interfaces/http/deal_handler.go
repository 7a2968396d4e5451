package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// DealHandler CRUD de negocios más el cambio de etapa.
type DealHandler struct {
	*RecordHandler
	uc *usecase.DealUseCase
}

// NewDealHandler construye el handler de negocios.
func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{RecordHandler: NewRecordHandler(uc.RecordUseCase), uc: uc}
}

// Move godoc
// @Summary      Mover negocio de etapa
// @Tags         deals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del negocio"
// @Param        body  body  object  true  "{stage}"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/move [post]
func (h *DealHandler) Move(c *fiber.Ctx) error {
	body, err := parseRecord(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido: se espera un objeto JSON")
	}
	out, err := h.uc.Move(c.UserContext(), GetSession(c), c.Params("id"), body[entity.FieldStage])
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
