package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, perfil, cambio de contraseña y
// siembra del admin inicial.
type AuthUseCase struct {
	tx     ports.TxRunner
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y contraseña incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *entity.User
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		user, err = r.Users.GetByEmail(in.Email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil || in.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		OK:    true,
		Token: token,
		User:  dto.LoginUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role},
	}, nil
}

// IssueToken firma la sesión del usuario.
func (uc *AuthUseCase) IssueToken(user *entity.User) (string, error) {
	s := entity.SessionFromUser(user)
	return jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, identityFromSession(s))
}

// VerifyToken valida firma y expiración. Cualquier falla es ErrUnauthorized.
func (uc *AuthUseCase) VerifyToken(token string) (*entity.Session, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	s := SessionFromIdentity(id)
	return &s, nil
}

// Me relee el usuario de la sesión. Devuelve (nil, nil) si ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, s entity.Session) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		user, err = r.Users.GetByID(s.UserID)
		return err
	})
	if err != nil || user == nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role, Team: user.Team, Zone: user.Zone,
	}, nil
}

// ChangePassword verifica la contraseña actual y guarda el hash de la nueva. Queda auditado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, s entity.Session, in dto.ChangePasswordRequest) error {
	if in.Next == "" {
		return domain.ErrInvalidInput
	}
	// bcrypt fuera del lock: leer primero, hashear y luego escribir.
	var user *entity.User
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		user, err = r.Users.GetByID(s.UserID)
		return err
	})
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Current)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Users.UpdatePassword(user.ID, string(hash)); err != nil {
			return err
		}
		return r.Audit.Add(entity.NewAuditEntry(&s, entity.ActionPasswordChange, entity.KindUser, user.ID, nil, time.Now()))
	})
}

// SeedAdmin crea el admin inicial si no hay ningún usuario. Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	created := false
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		n, err := r.Users.Count()
		if err != nil || n > 0 {
			return err
		}
		created = true
		return r.Users.Create(&entity.User{
			ID:           entity.NewID(),
			Email:        email,
			Name:         "Admin",
			Role:         entity.RoleAdmin,
			Team:         entity.DefaultTeam,
			Zone:         entity.DefaultZone,
			PasswordHash: string(hash),
			CreatedAt:    entity.Timestamp(time.Now()),
		})
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// SessionFromIdentity convierte los claims del token en la sesión del request.
func SessionFromIdentity(id *jwt.Identity) entity.Session {
	return entity.Session{
		UserID: id.UserID,
		Role:   id.Role,
		Team:   id.Team,
		Zone:   id.Zone,
		Name:   id.Name,
		Email:  id.Email,
	}
}

func identityFromSession(s entity.Session) jwt.Identity {
	return jwt.Identity{
		UserID: s.UserID,
		Role:   s.Role,
		Team:   s.Team,
		Zone:   s.Zone,
		Name:   s.Name,
		Email:  s.Email,
	}
}
