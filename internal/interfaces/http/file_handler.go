package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// FileHandler subida y listado de adjuntos.
type FileHandler struct {
	uc *usecase.AttachmentUseCase
}

// NewFileHandler construye el handler de adjuntos.
func NewFileHandler(uc *usecase.AttachmentUseCase) *FileHandler {
	return &FileHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir archivos
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        files      formData  file    true   "Archivos (hasta 10, 25MB c/u)"
// @Param        entity     formData  string  false  "Entidad a la que se adjuntan"
// @Param        entity_id  formData  string  false  "ID del registro"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/files [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "INVALID_BODY", "se espera multipart/form-data")
	}
	headers := form.File["files"]
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, usecase.UploadFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	out, err := h.uc.Upload(c.UserContext(), GetSession(c), formValue(form, "entity"), formValue(form, "entity_id"), files)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "files": out})
}

// List godoc
// @Summary      Listar adjuntos visibles
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        entity     query  string  false  "Entidad"
// @Param        entity_id  query  string  false  "ID del registro"
// @Success      200  {object}  dto.Response
// @Router       /api/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListFor(c.UserContext(), GetSession(c), c.Query("entity"), c.Query("entity_id"), parseQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
