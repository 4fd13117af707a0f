package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Hospital-api/internal/application/dto"
	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/pkg/config"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

type fakeUserRepo struct {
	user *entity.User
	err  error
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return f.user, f.err
}

func newUsecase(repo *fakeUserRepo) *Usecase {
	cfg := config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 60, Issuer: "hospital-pro"}
	return NewUsecase(repo, cfg, logger.New(logger.Config{Env: "test", Level: "error"}))
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginExitoso(t *testing.T) {
	repo := &fakeUserRepo{user: &entity.User{
		ID:           "u1",
		Username:     "lmartinez",
		PasswordHash: hash(t, "clave123"),
		Name:         "Laura Martínez",
		Role:         "laboratorista",
	}}

	resp, err := newUsecase(repo).Login(context.Background(), dto.LoginRequest{
		Username: "lmartinez",
		Password: "clave123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "laboratorista", resp.Role)
}

func TestLoginUsuarioInexistente(t *testing.T) {
	_, err := newUsecase(&fakeUserRepo{}).Login(context.Background(), dto.LoginRequest{
		Username: "nadie",
		Password: "clave123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginContrasenaIncorrecta(t *testing.T) {
	repo := &fakeUserRepo{user: &entity.User{
		ID:           "u1",
		Username:     "lmartinez",
		PasswordHash: hash(t, "clave123"),
		Role:         "laboratorista",
	}}

	_, err := newUsecase(repo).Login(context.Background(), dto.LoginRequest{
		Username: "lmartinez",
		Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginCamposVacios(t *testing.T) {
	_, err := newUsecase(&fakeUserRepo{}).Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
