// export escribe el CSV de una entidad (o el reporte de KPI en PDF) leyendo el documento
// persistido, con alcance de admin.
//
// Uso: go run ./cmd/export --entity deals [--format rfc4180] [--charset windows1252] [--out deals.csv]
// Lee la misma configuración que cmd/api (DB_FILE o DATABASE_URL).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/export"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/jsonstore"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// kpiEntity nombre especial que genera el PDF de KPI en lugar de un CSV.
const kpiEntity = "kpi"

func main() {
	entityName := pflag.StringP("entity", "e", entity.CollectionDeals, "deals, companies, contacts, activities, audit o kpi")
	format := pflag.StringP("format", "f", "", "formato de celdas: json (por defecto) o rfc4180")
	charset := pflag.StringP("charset", "c", "utf-8", "utf-8, latin1 o windows1252")
	outPath := pflag.StringP("out", "o", "", "archivo de salida (por defecto stdout)")
	team := pflag.String("team", "", "filtrar por equipo")
	month := pflag.String("month", "", "filtrar por mes YYYY-MM")
	pflag.Parse()

	enc, err := encodingFor(*charset)
	if err != nil {
		fail(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(fmt.Errorf("cargar configuración: %w", err))
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Out: os.Stderr})

	ctx := context.Background()
	persister, closeFn, err := openPersister(ctx, cfg)
	if err != nil {
		fail(err)
	}
	defer closeFn()

	// Solo lectura: un documento ausente o ilegible es un error, nunca un CSV vacío.
	store, err := jsonstore.OpenExisting(ctx, persister, log.Component("jsonstore"))
	if err != nil {
		fail(fmt.Errorf("cargar documento: %w", err))
	}
	tx := jsonstore.NewTxRunner(store)
	kpiUC := analytics.NewKPIUseCase(usecase.NewDealUseCase(tx))
	uc := export.NewExportUseCase(tx, kpiUC, infrapdf.NewKPIReportGenerator())

	admin := entity.Session{UserID: "cli", Name: "cmd/export", Role: entity.RoleAdmin}
	q := access.Query{Team: *team, Month: *month}

	var out []byte
	if *entityName == kpiEntity {
		out, err = uc.KPIReport(ctx, admin, q)
	} else {
		out, err = uc.CSV(ctx, admin, *entityName, q, export.ParseFormat(*format))
		if err == nil && enc != nil {
			// Los caracteres sin equivalente (p. ej. tailandés) salen como '?'.
			out, err = encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes(out)
		}
	}
	if err != nil {
		fail(fmt.Errorf("exportar %s: %w", *entityName, err))
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fail(fmt.Errorf("crear %s: %w", *outPath, err))
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(out); err != nil {
		fail(fmt.Errorf("escribir salida: %w", err))
	}
	if *outPath != "" {
		fmt.Fprintf(os.Stderr, "Generado: %s (%d bytes)\n", *outPath, len(out))
	}
}

// encodingFor devuelve nil para UTF-8 (sin transcodificar).
func encodingFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf8":
		return nil, nil
	case "latin1", "iso88591":
		return charmap.ISO8859_1, nil
	case "windows1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset desconocido: %s", name)
	}
}

func openPersister(ctx context.Context, cfg *config.Config) (repository.DocumentPersister, func(), error) {
	if !cfg.DB.Enabled() {
		p, err := jsonstore.NewFilePersister(cfg.Storage.DBFile)
		return p, func() {}, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return postgres.NewDocumentRepository(pool, cfg.DB.DocumentID), pool.Close, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
