package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

var (
	admin = entity.Session{UserID: "u-admin", Role: entity.RoleAdmin, Team: "HQ"}
	alice = entity.Session{UserID: "u-alice", Role: entity.RoleStaff, Team: "north"}
	bob   = entity.Session{UserID: "u-bob", Role: entity.RoleStaff, Team: "south"}
)

func TestCanSee(t *testing.T) {
	cases := []struct {
		name    string
		session entity.Session
		record  entity.Record
		want    bool
	}{
		{"admin ve registros ajenos", admin, entity.Record{"owner_id": "u-bob", "team": "south"}, true},
		{"admin ve registros sin equipo", admin, entity.Record{"owner_id": "x"}, true},
		{"dueño ve lo suyo en otro equipo", alice, entity.Record{"owner_id": "u-alice", "team": "south"}, true},
		{"compañero de equipo", alice, entity.Record{"owner_id": "u-carol", "team": "north"}, true},
		{"otro equipo", alice, entity.Record{"owner_id": "u-bob", "team": "south"}, false},
		{"equipo vacío no concede", entity.Session{UserID: "u-x", Role: entity.RoleStaff}, entity.Record{"owner_id": "u-y", "team": ""}, false},
		{"la zona no concede", alice, entity.Record{"owner_id": "u-bob", "team": "south", "zone": "BKK"}, false},
		{"adjunto usa uploaded_by", bob, entity.Record{"uploaded_by": "u-bob", "team": "north"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.CanSee(tc.session, tc.record))
		})
	}
}

func contacts() []entity.Record {
	return []entity.Record{
		{"id": "c1", "full_name": "Alice Smith", "owner_id": "u-alice", "team": "north", "created_at": "2026-01-05T10:00:00.000Z"},
		{"id": "c2", "full_name": "Bob", "email": "ALICE@corp.example", "owner_id": "u-bob", "team": "north", "created_at": "2026-02-01T10:00:00.000Z"},
		{"id": "c3", "full_name": "Carol", "owner_id": "u-bob", "team": "south", "note": "alice's friend", "created_at": "2026-02-03T10:00:00.000Z"},
		{"id": "c4", "full_name": "Dan", "owner_id": "u-alice", "team": "north", "created_at": "2026-02-09T10:00:00.000Z"},
	}
}

func ids(records []entity.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID())
	}
	return out
}

func TestFilter_BusquedaLibreEnCualquierCampo(t *testing.T) {
	got := access.Filter(contacts(), admin, access.Query{Q: "alice"})
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(got))
}

func TestFilter_VisibilidadAntesQueBusqueda(t *testing.T) {
	got := access.Filter(contacts(), alice, access.Query{Q: "alice"})
	assert.Equal(t, []string{"c1", "c2"}, ids(got), "c3 es de otro equipo")
}

func TestFilter_EquipoNoAmpliaVisibilidad(t *testing.T) {
	got := access.Filter(contacts(), alice, access.Query{Team: "south"})
	assert.Empty(t, got)
}

func TestFilter_ComponeFiltros(t *testing.T) {
	got := access.Filter(contacts(), admin, access.Query{Owner: "u-alice", Month: "2026-02"})
	assert.Equal(t, []string{"c4"}, ids(got))

	got = access.Filter(contacts(), admin, access.Query{Team: "north", Month: "2026-01"})
	assert.Equal(t, []string{"c1"}, ids(got))
}

func TestFilter_EtapaYNegocio(t *testing.T) {
	records := []entity.Record{
		{"id": "d1", "stage": "won", "owner_id": "u-alice"},
		{"id": "d2", "stage": "new", "owner_id": "u-alice", "deal_id": "x"},
		{"id": "d3", "stage": 5, "owner_id": "u-alice"},
	}
	assert.Equal(t, []string{"d1"}, ids(access.Filter(records, alice, access.Query{Stage: "won"})))
	assert.Equal(t, []string{"d2"}, ids(access.Filter(records, alice, access.Query{DealID: "x"})))
}

func TestFilter_ConservaOrdenYEntrada(t *testing.T) {
	in := contacts()
	got := access.Filter(in, admin, access.Query{})
	require.Len(t, got, 4)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, ids(got))
	assert.Len(t, in, 4)
}
