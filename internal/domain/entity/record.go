package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Campos que el servidor estampa o consulta en los registros de negocio.
const (
	FieldID         = "id"
	FieldOwnerID    = "owner_id"
	FieldTeam       = "team"
	FieldZone       = "zone"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
	FieldStage      = "stage"
	FieldValue      = "value"
	FieldDealID     = "deal_id"
	FieldUploadedBy = "uploaded_by"
)

// TimestampLayout formato ISO-8601 en UTC con milisegundos (ej. 2026-02-01T10:00:00.000Z).
// El filtro por mes depende de que los primeros 7 caracteres sean YYYY-MM.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record representa un registro de negocio (empresa, contacto, negocio, actividad, adjunto
// o entrada de auditoría). Es un mapa para conservar los campos libres que envía el cliente
// y los campos que el esquema por defecto no conoce.
//
// Un Record guardado en el documento no se modifica en sitio: las actualizaciones producen
// una copia nueva (Merge) que reemplaza a la anterior.
type Record map[string]any

// NewID genera un identificador opaco y estable.
func NewID() string {
	return uuid.New().String()
}

// Timestamp formatea t con TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ID devuelve el campo id.
func (r Record) ID() string { return r.String(FieldID) }

// Owner devuelve el dueño del registro: owner_id, o uploaded_by para adjuntos.
func (r Record) Owner() string {
	if v := r.String(FieldOwnerID); v != "" {
		return v
	}
	return r.String(FieldUploadedBy)
}

// Team devuelve el equipo del registro.
func (r Record) Team() string { return r.String(FieldTeam) }

// String devuelve el valor de key si es texto; cualquier otro tipo cuenta como vacío.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Bool interpreta key como booleano (acepta "true"/"false" en texto).
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Clone devuelve una copia superficial.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge devuelve una copia de r con los campos de patch encima.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Pick devuelve solo las claves indicadas que existan en r.
func (r Record) Pick(keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := r[k]; ok {
			out[k] = v
		}
	}
	return out
}
