package export_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/export"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/jsonstore"
)

var admin = entity.Session{UserID: "u-admin", Role: entity.RoleAdmin, Team: "HQ"}

func newExport(t *testing.T, doc string) *export.ExportUseCase {
	t.Helper()
	store := jsonstore.Open(context.Background(), jsonstore.NewMemoryPersister([]byte(doc)), zerolog.Nop())
	return export.NewExportUseCase(jsonstore.NewTxRunner(store), nil, nil)
}

func TestRenderCSV_CeldasLiteralJSON(t *testing.T) {
	rows := []entity.Record{
		{"id": "d1", "title": `Big, "deal"`, "stage": "won", "value": json.Number("100"), "company_id": nil},
		{"id": "d2", "title": "x"},
	}
	cols := []string{"id", "title", "value", "company_id"}

	out, err := export.RenderCSV(rows, cols, export.FormatJSON)
	require.NoError(t, err)

	want := "id,title,value,company_id\n" +
		`"d1","Big, \"deal\"",100,""` + "\n" +
		`"d2","x","",""`
	assert.Equal(t, want, string(out))
}

func TestRenderCSV_SinFilas_SoloCabecera(t *testing.T) {
	out, err := export.RenderCSV(nil, []string{"id", "at"}, export.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "id,at\n", string(out))
}

func TestRenderCSV_RFC4180(t *testing.T) {
	rows := []entity.Record{{"id": "c1", "name": "ACME, Inc.\nHQ", "done": true}}

	out, err := export.RenderCSV(rows, []string{"id", "name", "done"}, export.FormatRFC4180)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "name", "done"}, {"c1", "ACME, Inc.\nHQ", "true"}}, records)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, export.FormatRFC4180, export.ParseFormat("RFC4180"))
	assert.Equal(t, export.FormatJSON, export.ParseFormat(""))
	assert.Equal(t, export.FormatJSON, export.ParseFormat("xlsx"))
}

func TestCSV_CompaniesNuncaExportaPasswordHash(t *testing.T) {
	uc := newExport(t, `{"companies":[{"id":"c1","name":"ACME","password_hash":"$2a$10$secret","owner_id":"u-admin"}]}`)

	out, err := uc.CSV(context.Background(), admin, "companies", access.Query{}, export.FormatJSON)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "password_hash")
	assert.NotContains(t, string(out), "secret")
	assert.True(t, strings.HasPrefix(string(out), "id,name,phone,address,owner_id,team,zone,created_at\n"))
}

func TestCSV_EntidadDesconocida(t *testing.T) {
	uc := newExport(t, `{}`)

	for _, name := range []string{"users", "attachments", "products", ""} {
		_, err := uc.CSV(context.Background(), admin, name, access.Query{}, export.FormatJSON)
		assert.ErrorIs(t, err, domain.ErrUnknownEntity, name)
	}
}

func TestCSV_AplicaVisibilidad(t *testing.T) {
	uc := newExport(t, `{"deals":[
		{"id":"d1","title":"mine","owner_id":"u1","team":""},
		{"id":"d2","title":"other","owner_id":"u2","team":"SALES"}
	]}`)
	staff := entity.Session{UserID: "u1", Role: entity.RoleStaff, Team: "HQ"}

	out, err := uc.CSV(context.Background(), staff, "deals", access.Query{}, export.FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"mine"`)
	assert.NotContains(t, string(out), `"other"`)
}
