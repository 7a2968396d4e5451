package jsonstore

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks con repositorios atados al documento del Store.
//
// Run trabaja sobre una copia del documento (copy-on-write por colección) bajo el Lock del
// Store; si el callback termina sin error y hubo cambios, persiste el documento completo una
// sola vez y recién entonces lo publica. Si el callback o el guardado fallan, el documento en
// memoria queda como estaba.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con permiso de escritura.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if r.store.readOnly {
		return errReadOnly
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := *r.store.doc
	st := &txState{doc: &work}
	if err := fn(st.repos()); err != nil {
		return err
	}
	if !st.dirty {
		return nil
	}
	if err := r.store.save(ctx, &work); err != nil {
		return err
	}
	r.store.doc = &work
	return nil
}

// View ejecuta fn sobre el documento publicado, sin permiso de escritura. Los slices que
// devuelven los repositorios no se modifican después, así que se pueden usar fuera de fn.
func (r *TxRunner) View(_ context.Context, fn func(repos repository.Repos) error) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st := &txState{doc: r.store.doc, readOnly: true}
	return fn(st.repos())
}
