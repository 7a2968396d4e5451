package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/export"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	CompanyUC    *usecase.RecordUseCase
	ContactUC    *usecase.RecordUseCase
	DealUC       *usecase.DealUseCase
	ActivityUC   *usecase.RecordUseCase
	AuditUC      *usecase.RecordUseCase
	AttachmentUC *usecase.AttachmentUseCase
	KPIUC        *analytics.KPIUseCase
	ExportUC     *export.ExportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/me", authHandler.Me)
	protected.Post("/me/password", authHandler.ChangePassword)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)

	registerRecords(protected.Group("/companies"), NewRecordHandler(deps.CompanyUC))
	registerRecords(protected.Group("/contacts"), NewRecordHandler(deps.ContactUC))
	registerRecords(protected.Group("/activities"), NewRecordHandler(deps.ActivityUC).WithDealIDFilter())

	// Deals: CRUD + cambio de etapa
	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.DealUC)
	registerRecords(deals, dealHandler.RecordHandler)
	deals.Post("/:id/move", dealHandler.Move)

	// Auditoría (solo lectura, mismo filtro de visibilidad)
	auditHandler := NewRecordHandler(deps.AuditUC)
	protected.Get("/audit", auditHandler.List)

	// Adjuntos
	fileHandler := NewFileHandler(deps.AttachmentUC)
	protected.Post("/files", fileHandler.Upload)
	protected.Get("/files", fileHandler.List)

	// KPI y exportaciones
	protected.Get("/kpi", NewKPIHandler(deps.KPIUC).Get)
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export/kpi.pdf", exportHandler.KPIReport)
	protected.Get("/export/:entity.csv", exportHandler.CSV)
}

func registerRecords(g fiber.Router, h *RecordHandler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
}
