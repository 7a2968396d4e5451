package entity

import "github.com/jhoicas/crm-api/internal/domain"

// Nombres de colección dentro del documento.
const (
	CollectionUsers       = "users"
	CollectionCompanies   = "companies"
	CollectionContacts    = "contacts"
	CollectionDeals       = "deals"
	CollectionActivities  = "activities"
	CollectionAttachments = "attachments"
	CollectionAudit       = "audit"
)

// Kind nombre de entidad que se registra en la auditoría.
type Kind string

const (
	KindUser     Kind = "user"
	KindCompany  Kind = "company"
	KindContact  Kind = "contact"
	KindDeal     Kind = "deal"
	KindActivity Kind = "activity"
	KindFile     Kind = "file"
)

// Schema describe una colección de registros de negocio: sus valores por defecto al crear,
// el detalle que se audita y las columnas que se pueden exportar.
type Schema struct {
	Kind       Kind
	Collection string
	// Columns lista blanca de columnas CSV. Nunca se derivan de los campos del registro.
	Columns []string
	// Defaults valores iniciales antes de estampar propietario y mezclar los campos del cliente.
	Defaults func() Record
	// Stamped campos del servidor que se vuelven a estampar después de mezclar los del cliente.
	// El id siempre se estampa.
	Stamped []string
	// AuditDetail detalle que acompaña la entrada de auditoría al crear.
	AuditDetail func(Record) map[string]any
	// OnCreate ajusta el registro ya mezclado antes de guardarlo.
	OnCreate func(r Record)
	// OnUpdate ajusta next (prev con el parche encima) antes de guardarlo.
	OnUpdate func(prev, next Record)
}

var (
	CompanySchema = Schema{
		Kind:       KindCompany,
		Collection: CollectionCompanies,
		Columns:    []string{"id", "name", "phone", "address", "owner_id", "team", "zone", "created_at"},
		AuditDetail: func(r Record) map[string]any {
			return map[string]any{"name": r["name"]}
		},
	}

	ContactSchema = Schema{
		Kind:       KindContact,
		Collection: CollectionContacts,
		Columns:    []string{"id", "full_name", "email", "phone", "company_id", "owner_id", "team", "zone", "created_at"},
		AuditDetail: func(r Record) map[string]any {
			return map[string]any{"name": r["full_name"]}
		},
	}

	DealSchema = Schema{
		Kind:       KindDeal,
		Collection: CollectionDeals,
		Columns:    []string{"id", "title", "stage", "value", "company_id", "owner_id", "team", "zone", "created_at"},
		Defaults: func() Record {
			return Record{"title": "", FieldStage: StageNew, FieldValue: 0, "company_id": nil}
		},
		AuditDetail: func(r Record) map[string]any {
			return map[string]any{"title": r["title"], "stage": r[FieldStage]}
		},
		Stamped:  []string{FieldCreatedAt},
		OnCreate: EnsureStage,
		OnUpdate: KeepStage,
	}

	ActivitySchema = Schema{
		Kind:       KindActivity,
		Collection: CollectionActivities,
		Columns:    []string{"id", "type", "note", "due_at", "done", "deal_id", "owner_id", "team", "zone", "created_at"},
		Defaults: func() Record {
			return Record{"type": "task", "due_at": nil, "done": false}
		},
		Stamped: []string{FieldOwnerID, FieldTeam, FieldZone, FieldCreatedAt},
		AuditDetail: func(r Record) map[string]any {
			return map[string]any{"type": r["type"]}
		},
	}

	AttachmentSchema = Schema{
		Kind:       KindFile,
		Collection: CollectionAttachments,
	}

	AuditSchema = Schema{
		Collection: CollectionAudit,
		Columns:    []string{"id", "at", "by", "action", "entity", "entity_id"},
	}
)

// exportable colecciones con exportación CSV, por nombre público.
var exportable = map[string]Schema{
	CollectionDeals:      DealSchema,
	CollectionCompanies:  CompanySchema,
	CollectionContacts:   ContactSchema,
	CollectionActivities: ActivitySchema,
	CollectionAudit:      AuditSchema,
}

// ExportSchema resuelve el esquema exportable por nombre. Devuelve domain.ErrUnknownEntity
// si el nombre no está en la lista blanca.
func ExportSchema(name string) (Schema, error) {
	s, ok := exportable[name]
	if !ok {
		return Schema{}, domain.ErrUnknownEntity
	}
	return s, nil
}
