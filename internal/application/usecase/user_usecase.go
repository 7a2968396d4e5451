package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (rutas de admin).
type UserUseCase struct {
	tx ports.TxRunner
}

// NewUserUseCase construye el caso de uso con la unidad de trabajo.
func NewUserUseCase(tx ports.TxRunner) *UserUseCase {
	return &UserUseCase{tx: tx}
}

// List devuelve todos los usuarios, sin hash de contraseña.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	var users []*entity.User
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		users, err = r.Users.List()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario con los valores por defecto para los campos vacíos.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, s entity.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = entity.RoleStaff
	}
	if in.Team == "" {
		in.Team = entity.DefaultTeam
	}
	if in.Zone == "" {
		in.Zone = entity.DefaultZone
	}
	if in.Password == "" {
		in.Password = entity.DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           entity.NewID(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Team:         in.Team,
		Zone:         in.Zone,
		PasswordHash: string(hash),
		CreatedAt:    entity.Timestamp(now),
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Users.Create(user); err != nil {
			return err
		}
		detail := map[string]any{"email": user.Email, "role": user.Role}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionCreate, entity.KindUser, user.ID, detail, now))
	})
	if err != nil {
		return nil, err
	}
	resp := entityToUserResponse(user)
	resp.CreatedAt = ""
	return resp, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Team:      u.Team,
		Zone:      u.Zone,
		CreatedAt: u.CreatedAt,
	}
}
