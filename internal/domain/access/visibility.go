// Package access decide qué registros puede ver una sesión. Es el único control de lectura
// del CRM y se aplica igual a todas las colecciones de registros.
package access

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Query filtros opcionales de un listado. Un campo vacío no filtra.
type Query struct {
	Q      string // búsqueda libre, sin distinguir mayúsculas, sobre el registro serializado
	Stage  string
	Owner  string
	Team   string // solo restringe dentro de lo visible; nunca amplía la visibilidad
	Month  string // YYYY-MM, prefijo de created_at
	DealID string // solo lo usan las actividades
}

// CanSee indica si la sesión puede ver el registro: admin ve todo, el dueño ve lo suyo y los
// compañeros de equipo ven lo del equipo. La zona no interviene.
func CanSee(s entity.Session, r entity.Record) bool {
	if s.IsAdmin() {
		return true
	}
	if s.UserID != "" && r.Owner() == s.UserID {
		return true
	}
	team := r.Team()
	return team != "" && team == s.Team
}

// Filter aplica visibilidad y luego cada filtro de q, en orden y con AND. Conserva el orden
// relativo de records y no modifica el slice de entrada.
func Filter(records []entity.Record, s entity.Session, q Query) []entity.Record {
	needle := strings.ToLower(q.Q)
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		if !CanSee(s, r) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(serialize(r)), needle) {
			continue
		}
		if q.Stage != "" && r.String(entity.FieldStage) != q.Stage {
			continue
		}
		if q.Owner != "" && r.String(entity.FieldOwnerID) != q.Owner {
			continue
		}
		if q.Team != "" && r.Team() != q.Team {
			continue
		}
		if q.Month != "" && monthOf(r.String(entity.FieldCreatedAt)) != q.Month {
			continue
		}
		if q.DealID != "" && r.String(entity.FieldDealID) != q.DealID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func monthOf(ts string) string {
	if len(ts) > 7 {
		return ts[:7]
	}
	return ts
}

// serialize codifica el registro completo como JSON sin escapar <, > y &, para que la búsqueda
// encuentre el texto tal como lo escribió el usuario.
func serialize(r entity.Record) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return ""
	}
	return buf.String()
}
