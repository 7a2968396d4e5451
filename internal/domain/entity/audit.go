package entity

import "time"

// Acciones registradas en la auditoría.
const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionMove           = "move"
	ActionUpload         = "upload"
	ActionPasswordChange = "password_change"
)

// NewAuditEntry arma una entrada de auditoría. Lleva owner_id y team de la sesión que actúa
// para que el mismo filtro de visibilidad de los registros aplique a la bitácora.
func NewAuditEntry(s *Session, action string, kind Kind, entityID string, detail map[string]any, at time.Time) Record {
	if detail == nil {
		detail = map[string]any{}
	}
	entry := Record{
		FieldID:     NewID(),
		"at":        Timestamp(at),
		"by":        nil,
		"action":    action,
		"entity":    string(kind),
		"entity_id": nil,
		"detail":    detail,
	}
	if entityID != "" {
		entry["entity_id"] = entityID
	}
	if s != nil {
		entry["by"] = s.UserID
		entry[FieldOwnerID] = s.UserID
		entry[FieldTeam] = s.Team
	}
	return entry
}
