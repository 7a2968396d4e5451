// Package jsonstore mantiene el documento del CRM en memoria y lo persiste completo después de
// cada mutación, a archivo o a cualquier otro repository.DocumentPersister.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// Store fuente única de verdad en memoria. Las lecturas toman el RLock y las mutaciones el Lock
// durante toda la secuencia leer-modificar-persistir (ver TxRunner).
type Store struct {
	mu        sync.RWMutex
	doc       *entity.Document
	persister repository.DocumentPersister
	log       zerolog.Logger
	// readOnly rechaza cualquier Run (ver OpenExisting).
	readOnly bool
}

// Open carga el documento. Nunca falla: si no existe guarda uno vacío y si está corrupto o no se
// puede leer registra el error y arranca con un documento vacío en memoria. En ese caso el
// siguiente guardado sobrescribe lo que hubiera en disco.
func Open(ctx context.Context, persister repository.DocumentPersister, log zerolog.Logger) *Store {
	s := &Store{persister: persister, log: log}
	s.doc = s.load(ctx)
	return s
}

// OpenExisting carga un documento que ya debe existir, sin crearlo ni recuperarse de errores:
// documento ausente es domain.ErrNotFound y uno ilegible o no leíble es domain.ErrIO. El Store
// resultante es de solo lectura. Lo usan las herramientas que no deben escribir el documento.
func OpenExisting(ctx context.Context, persister repository.DocumentPersister, log zerolog.Logger) (*Store, error) {
	data, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: no hay documento guardado", domain.ErrNotFound)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return &Store{doc: doc, persister: persister, log: log, readOnly: true}, nil
}

func (s *Store) load(ctx context.Context) *entity.Document {
	data, err := s.persister.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("cargar documento: se usa un documento vacío")
		return entity.NewDocument()
	}
	if data == nil {
		doc := entity.NewDocument()
		if err := s.save(ctx, doc); err != nil {
			s.log.Error().Err(err).Msg("guardar documento inicial")
		}
		return doc
	}
	doc, err := Decode(data)
	if err != nil {
		s.log.Error().Err(err).Msg("documento ilegible: se usa un documento vacío")
		return entity.NewDocument()
	}
	return doc
}

// Decode interpreta un documento serializado. Los números se conservan como json.Number para
// no perder precisión al reescribir; las colecciones que falten quedan vacías y las claves
// desconocidas se conservan en Document.Extra.
func Decode(data []byte) (*entity.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	doc := &entity.Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Encode serializa el documento con sangría de dos espacios.
func Encode(doc *entity.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("codificar documento: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) save(ctx context.Context, doc *entity.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	if err := s.persister.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}
