package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/jsonstore"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "crm-api-test"}

func newAuth(t *testing.T) (*auth.AuthUseCase, *jsonstore.TxRunner) {
	t.Helper()
	store := jsonstore.Open(context.Background(), jsonstore.NewMemoryPersister(nil), zerolog.Nop())
	tx := jsonstore.NewTxRunner(store)
	uc := auth.NewAuthUseCase(tx, testJWT)
	created, err := uc.SeedAdmin(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	require.True(t, created)
	return uc, tx
}

func TestSeedAdmin_SoloSiNoHayUsuarios(t *testing.T) {
	uc, tx := newAuth(t)

	created, err := uc.SeedAdmin(context.Background(), "other@example.com", "x")
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, tx.View(context.Background(), func(r repository.Repos) error {
		users, err := r.Users.List()
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Admin", users[0].Name)
		assert.Equal(t, entity.RoleAdmin, users[0].Role)
		assert.Equal(t, "HQ", users[0].Team)
		assert.Equal(t, "BKK", users[0].Zone)
		assert.NotEqual(t, "admin123", users[0].PasswordHash)
		return nil
	}))
}

func TestLogin_OK_TokenConSesion(t *testing.T) {
	uc, _ := newAuth(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)

	s, err := uc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, s.UserID)
	assert.Equal(t, "HQ", s.Team)
	assert.Equal(t, "BKK", s.Zone)
	assert.Equal(t, "admin@example.com", s.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyToken_Invalido(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	uc, tx := newAuth(t)
	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	s, err := uc.VerifyToken(resp.Token)
	require.NoError(t, err)

	err = uc.ChangePassword(context.Background(), *s, dto.ChangePasswordRequest{Current: "wrong", Next: "n3w"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.ChangePassword(context.Background(), *s, dto.ChangePasswordRequest{Current: "admin123", Next: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(context.Background(), *s, dto.ChangePasswordRequest{Current: "admin123", Next: "n3w"}))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "n3w"})
	assert.NoError(t, err)

	require.NoError(t, tx.View(context.Background(), func(r repository.Repos) error {
		log, err := r.Audit.List()
		require.NoError(t, err)
		require.Len(t, log, 1)
		assert.Equal(t, "password_change", log[0]["action"])
		assert.Equal(t, "user", log[0]["entity"])
		return nil
	}))
}

func TestMe_UsuarioInexistente_Nil(t *testing.T) {
	uc, _ := newAuth(t)

	me, err := uc.Me(context.Background(), entity.Session{UserID: "ghost"})
	require.NoError(t, err)
	assert.Nil(t, me)
}
