package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/export"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/jsonstore"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Documento: PostgreSQL (una fila JSONB) si hay DATABASE_URL/DB_HOST; si no, archivo JSON.
	var persister repository.DocumentPersister
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		docRepo := postgres.NewDocumentRepository(pool, cfg.DB.DocumentID)
		if err := docRepo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración de crm_documents")
		}
		persister = docRepo
		log.Info().Str("document_id", cfg.DB.DocumentID).Msg("documento en PostgreSQL")
	} else {
		filePersister, err := jsonstore.NewFilePersister(cfg.Storage.DBFile)
		if err != nil {
			log.Fatal().Err(err).Msg("archivo de datos")
		}
		persister = filePersister
		log.Info().Str("path", cfg.Storage.DBFile).Msg("documento en archivo JSON")
	}

	store := jsonstore.Open(ctx, persister, log.Component("jsonstore"))
	txRunner := jsonstore.NewTxRunner(store)

	authUC := auth.NewAuthUseCase(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seeded, err := authUC.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar admin")
	}
	if seeded {
		log.Info().Str("email", cfg.Admin.Email).Msg("admin inicial creado")
	}

	fileStorage, err := storage.New(ctx, storage.Config{
		Type:         storage.Type(cfg.Storage.Type),
		LocalPath:    cfg.Storage.UploadDir,
		S3Bucket:     cfg.Storage.S3Bucket,
		S3Region:     cfg.Storage.S3Region,
		AWSAccessKey: cfg.Storage.AWSAccessKey,
		AWSSecretKey: cfg.Storage.AWSSecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de adjuntos")
	}
	uploadDir := ""
	if storage.Type(cfg.Storage.Type) != storage.TypeS3 {
		uploadDir = cfg.Storage.UploadDir
	}

	userUC := usecase.NewUserUseCase(txRunner)
	companyUC := usecase.NewRecordUseCase(entity.CompanySchema, txRunner)
	contactUC := usecase.NewRecordUseCase(entity.ContactSchema, txRunner)
	activityUC := usecase.NewRecordUseCase(entity.ActivitySchema, txRunner)
	auditUC := usecase.NewRecordUseCase(entity.AuditSchema, txRunner)
	dealUC := usecase.NewDealUseCase(txRunner)
	attachmentUC := usecase.NewAttachmentUseCase(txRunner, fileStorage, usecase.UploadLimits{
		MaxFiles: cfg.Upload.MaxFiles,
		MaxBytes: cfg.Upload.MaxBytes,
	})
	kpiUC := analytics.NewKPIUseCase(dealUC)

	// PDF: reporte de KPI
	exportUC := export.NewExportUseCase(txRunner, kpiUC, infrapdf.NewKPIReportGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		BodyLimit:   cfg.Upload.MaxFiles*int(cfg.Upload.MaxBytes) + 1<<20,
		UploadDir:   uploadDir,
		SwaggerFile: "./docs/swagger.json",
		Log:         log.Component("http"),
	}, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		CompanyUC:    companyUC,
		ContactUC:    contactUC,
		DealUC:       dealUC,
		ActivityUC:   activityUC,
		AuditUC:      auditUC,
		AttachmentUC: attachmentUC,
		KPIUC:        kpiUC,
		ExportUC:     exportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
