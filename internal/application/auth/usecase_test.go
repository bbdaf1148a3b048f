package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salon-pos/internal/application/auth"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/config"
	"github.com/jhoicas/salon-pos/pkg/jwt"
)

const secret = "test-secret"

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	uc, err := auth.NewAuthUseCase([]entity.Credential{
		{Username: "admin", PasswordHash: hash(t, "admin123"), Role: entity.RoleAdmin},
		{Username: "employee", PasswordHash: hash(t, "employee123"), Role: entity.RoleEmployee},
	}, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	require.NoError(t, err)
	return uc
}

func TestLogin_IssuesRoleBearingToken(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.Login(dto.LoginRequest{Username: "employee", Password: "employee123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, out.User.Role)
	assert.Equal(t, 3600, out.ExpiresIn)

	user, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "employee", user)
	assert.Equal(t, entity.RoleEmployee, role)
}

func TestLogin_UsernameIsCaseInsensitive(t *testing.T) {
	out, err := newUseCase(t).Login(dto.LoginRequest{Username: " Admin ", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_Rejections(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Username: "ghost", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewAuthUseCase_RejectsBadCredentials(t *testing.T) {
	_, err := auth.NewAuthUseCase([]entity.Credential{{Username: "x", PasswordHash: "h", Role: "owner"}}, auth.JWTConfig{})
	assert.Error(t, err)
	_, err = auth.NewAuthUseCase([]entity.Credential{{Username: "x", Role: entity.RoleAdmin}}, auth.JWTConfig{})
	assert.Error(t, err)
}

func TestCredentialsFromConfig(t *testing.T) {
	_, err := auth.CredentialsFromConfig(config.AuthConfig{AdminUser: "admin", EmployeeUser: "employee"}, false)
	assert.Error(t, err)

	creds, err := auth.CredentialsFromConfig(config.AuthConfig{AdminUser: "admin", EmployeeUser: "employee"}, true)
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creds[0].PasswordHash), []byte("admin")))
	assert.Equal(t, entity.RoleEmployee, creds[1].Role)
}
