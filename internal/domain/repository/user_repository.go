package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe (comparación exacta).
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdatePassword(id, passwordHash string) error
	List() ([]*entity.User, error)
	Count() (int, error)
}
