package entity

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Document es la instantánea completa del CRM: siete colecciones, cada una ordenada con los
// registros más nuevos primero (salvo users y attachments, que se agregan al final).
type Document struct {
	Users       []Record
	Companies   []Record
	Contacts    []Record
	Deals       []Record
	Activities  []Record
	Attachments []Record
	Audit       []Record
	// Extra claves de primer nivel que esta versión no conoce (colecciones de una versión más
	// nueva). Se conservan tal cual y se vuelven a escribir al guardar.
	Extra map[string]json.RawMessage
}

type namedCollection struct {
	name    string
	records *[]Record
}

// NewDocument devuelve un documento vacío con las siete colecciones presentes.
func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize reemplaza colecciones ausentes por colecciones vacías, de modo que un documento
// guardado por una versión anterior (con menos colecciones) se pueda cargar.
func (d *Document) Normalize() {
	for _, c := range d.collections() {
		if *c.records == nil {
			*c.records = []Record{}
		}
	}
}

// Collection devuelve un puntero a la colección por nombre para leerla o modificarla.
func (d *Document) Collection(name string) (*[]Record, error) {
	for _, c := range d.collections() {
		if c.name == name {
			return c.records, nil
		}
	}
	return nil, domain.ErrUnknownEntity
}

func (d *Document) collections() []namedCollection {
	return []namedCollection{
		{CollectionUsers, &d.Users},
		{CollectionCompanies, &d.Companies},
		{CollectionContacts, &d.Contacts},
		{CollectionDeals, &d.Deals},
		{CollectionActivities, &d.Activities},
		{CollectionAttachments, &d.Attachments},
		{CollectionAudit, &d.Audit},
	}
}

// UnmarshalJSON lee las colecciones conocidas con números como json.Number y guarda el resto
// de las claves en Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{}
	for _, c := range d.collections() {
		msg, ok := raw[c.name]
		if !ok {
			continue
		}
		delete(raw, c.name)
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(c.records); err != nil {
			return err
		}
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// MarshalJSON escribe las colecciones conocidas junto con las claves de Extra.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 7+len(d.Extra))
	for k, v := range d.Extra {
		out[k] = v
	}
	for _, c := range d.collections() {
		out[c.name] = *c.records
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
