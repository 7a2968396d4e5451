package jsonstore

import (
	"errors"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var errReadOnly = errors.New("jsonstore: escritura en una vista de solo lectura")

var (
	_ repository.RecordRepository = recordRepo{}
	_ repository.UserRepository   = userRepo{}
	_ repository.AuditRepository  = auditRepo{}
)

// txState documento de trabajo de un Run o View. Toda escritura reemplaza el slice de la
// colección por uno nuevo; el documento publicado nunca se modifica en sitio.
type txState struct {
	doc      *entity.Document
	readOnly bool
	dirty    bool
}

func (st *txState) repos() repository.Repos {
	return repository.Repos{
		Users:   userRepo{st: st},
		Records: recordRepo{st: st},
		Audit:   auditRepo{st: st},
	}
}

func (st *txState) read(collection string) ([]entity.Record, error) {
	c, err := st.doc.Collection(collection)
	if err != nil {
		return nil, err
	}
	return *c, nil
}

func (st *txState) write(collection string, fn func(old []entity.Record) ([]entity.Record, error)) error {
	if st.readOnly {
		return errReadOnly
	}
	c, err := st.doc.Collection(collection)
	if err != nil {
		return err
	}
	next, err := fn(*c)
	if err != nil {
		return err
	}
	*c = next
	st.dirty = true
	return nil
}

func indexOf(records []entity.Record, id string) int {
	for i, r := range records {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

func prepend(old []entity.Record, r entity.Record) []entity.Record {
	next := make([]entity.Record, 0, len(old)+1)
	next = append(next, r)
	return append(next, old...)
}

func appendCopy(old []entity.Record, r entity.Record) []entity.Record {
	next := make([]entity.Record, 0, len(old)+1)
	next = append(next, old...)
	return append(next, r)
}

func replaceAt(old []entity.Record, i int, r entity.Record) []entity.Record {
	next := make([]entity.Record, len(old))
	copy(next, old)
	next[i] = r
	return next
}

// ── Registros ────────────────────────────────────────────────────────────────

type recordRepo struct {
	st *txState
}

func (r recordRepo) List(collection string) ([]entity.Record, error) {
	return r.st.read(collection)
}

func (r recordRepo) GetByID(collection, id string) (entity.Record, error) {
	list, err := r.st.read(collection)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return nil, nil
}

func (r recordRepo) Prepend(collection string, rec entity.Record) error {
	return r.st.write(collection, func(old []entity.Record) ([]entity.Record, error) {
		return prepend(old, rec), nil
	})
}

func (r recordRepo) Append(collection string, rec entity.Record) error {
	return r.st.write(collection, func(old []entity.Record) ([]entity.Record, error) {
		return appendCopy(old, rec), nil
	})
}

func (r recordRepo) Replace(collection string, rec entity.Record) error {
	return r.st.write(collection, func(old []entity.Record) ([]entity.Record, error) {
		i := indexOf(old, rec.ID())
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return replaceAt(old, i, rec), nil
	})
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct {
	st *txState
}

func (r userRepo) Create(user *entity.User) error {
	return r.st.write(entity.CollectionUsers, func(old []entity.Record) ([]entity.Record, error) {
		for _, u := range old {
			if u.String("email") == user.Email {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		return appendCopy(old, user.Record()), nil
	})
}

func (r userRepo) GetByID(id string) (*entity.User, error) {
	list, err := r.st.read(entity.CollectionUsers)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, id); i >= 0 {
		return entity.UserFromRecord(list[i]), nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(email string) (*entity.User, error) {
	list, err := r.st.read(entity.CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if u.String("email") == email {
			return entity.UserFromRecord(u), nil
		}
	}
	return nil, nil
}

// UpdatePassword cambia solo password_hash y conserva el resto de campos del registro.
func (r userRepo) UpdatePassword(id, passwordHash string) error {
	return r.st.write(entity.CollectionUsers, func(old []entity.Record) ([]entity.Record, error) {
		i := indexOf(old, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return replaceAt(old, i, old[i].Merge(entity.Record{"password_hash": passwordHash})), nil
	})
}

func (r userRepo) List() ([]*entity.User, error) {
	list, err := r.st.read(entity.CollectionUsers)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(list))
	for _, u := range list {
		out = append(out, entity.UserFromRecord(u))
	}
	return out, nil
}

func (r userRepo) Count() (int, error) {
	list, err := r.st.read(entity.CollectionUsers)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ── Auditoría ────────────────────────────────────────────────────────────────

type auditRepo struct {
	st *txState
}

func (r auditRepo) Add(entry entity.Record) error {
	return r.st.write(entity.CollectionAudit, func(old []entity.Record) ([]entity.Record, error) {
		return prepend(old, entry), nil
	})
}

func (r auditRepo) List() ([]entity.Record, error) {
	return r.st.read(entity.CollectionAudit)
}
