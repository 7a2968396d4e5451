package http

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// errorStatus relaciona cada error de dominio con su status y código.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidCredentials, fiber.StatusBadRequest, "INVALID_CREDENTIALS"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidStage, fiber.StatusBadRequest, "INVALID_STAGE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnknownEntity, fiber.StatusNotFound, "UNKNOWN_ENTITY"},
	{domain.ErrIO, fiber.StatusInternalServerError, "IO_ERROR"},
}

// writeError responde con el sobre de error. Los errores sin mapeo son 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Error: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Error: msg})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.Response{OK: true, Data: data})
}

// parseRecord interpreta el cuerpo como objeto JSON conservando los números tal cual.
// Un cuerpo vacío es un objeto vacío.
func parseRecord(c *fiber.Ctx) (entity.Record, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return entity.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rec entity.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return entity.Record{}, nil
	}
	return rec, nil
}

// parseQuery filtros comunes de los listados.
func parseQuery(c *fiber.Ctx) access.Query {
	return access.Query{
		Q:     c.Query("q"),
		Stage: c.Query("stage"),
		Owner: c.Query("owner"),
		Team:  c.Query("team"),
		Month: c.Query("month"),
	}
}
