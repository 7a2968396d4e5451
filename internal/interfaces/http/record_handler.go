package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// RecordHandler CRUD genérico de empresas, contactos, negocios, actividades y auditoría.
// Los registros viajan como objetos JSON libres: los campos que el servidor no conoce se
// guardan y se devuelven tal cual.
type RecordHandler struct {
	uc *usecase.RecordUseCase
	// filterDealID habilita el filtro deal_id (actividades).
	filterDealID bool
}

// NewRecordHandler construye el handler para la colección del caso de uso.
func NewRecordHandler(uc *usecase.RecordUseCase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

// WithDealIDFilter habilita el parámetro deal_id en el listado.
func (h *RecordHandler) WithDealIDFilter() *RecordHandler {
	h.filterDealID = true
	return h
}

// List godoc
// @Summary      Listar registros visibles
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        q      query  string  false  "Búsqueda libre"
// @Param        stage  query  string  false  "Etapa"
// @Param        owner  query  string  false  "owner_id"
// @Param        team   query  string  false  "Equipo"
// @Param        month  query  string  false  "YYYY-MM de created_at"
// @Success      200    {object}  dto.Response
// @Router       /api/companies [get]
// @Router       /api/contacts [get]
// @Router       /api/deals [get]
// @Router       /api/activities [get]
// @Router       /api/audit [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	q := parseQuery(c)
	if h.filterDealID {
		q.DealID = c.Query("deal_id")
	}
	out, err := h.uc.List(c.UserContext(), GetSession(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear registro
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  object  true  "Campos del registro"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	fields, err := parseRecord(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido: se espera un objeto JSON")
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), fields)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Actualizar registro
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  object  true  "Campos a modificar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *RecordHandler) Update(c *fiber.Ctx) error {
	patch, err := parseRecord(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido: se espera un objeto JSON")
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), c.Params("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
