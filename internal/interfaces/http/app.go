package http

import (
	"errors"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name string
	// BodyLimit tamaño máximo del cuerpo; debe alcanzar para una subida completa.
	BodyLimit int
	// UploadDir directorio servido en /uploads; vacío si los adjuntos no son locales.
	UploadDir string
	// SwaggerFile ruta del swagger.json servido en /docs; vacío lo desactiva.
	SwaggerFile string
	Log         zerolog.Logger
}

// NewApp construye la aplicación Fiber con middlewares, /health, estáticos y la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
		// Params, query y form se guardan en el documento: no pueden apuntar a buffers del pool.
		Immutable: true,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log))
	app.Use(cors.New())

	if cfg.SwaggerFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "CRM API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.OKResponse{OK: true})
	})
	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	Router(app, deps)
	return app
}

// errorHandler errores que escapan de los handlers (rutas inexistentes, cuerpo demasiado
// grande, pánicos recuperados) con el mismo sobre {ok:false,error}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
}
