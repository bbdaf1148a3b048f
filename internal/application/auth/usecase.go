package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/config"
	"github.com/jhoicas/salon-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra las credenciales configuradas; emite un JWT con el rol de la sesión.
type AuthUseCase struct {
	credentials map[string]entity.Credential
	jwtCfg      JWTConfig
	// dummyHash se compara cuando el usuario no existe para igualar el tiempo de respuesta.
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds []entity.Credential, jwtCfg JWTConfig) (*AuthUseCase, error) {
	byUser := make(map[string]entity.Credential, len(creds))
	for _, c := range creds {
		if c.Username == "" || c.PasswordHash == "" {
			return nil, fmt.Errorf("auth: credencial incompleta para rol %q", c.Role)
		}
		if c.Role != entity.RoleAdmin && c.Role != entity.RoleEmployee {
			return nil, fmt.Errorf("auth: rol desconocido %q", c.Role)
		}
		byUser[strings.ToLower(c.Username)] = c
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("salon-pos"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{credentials: byUser, jwtCfg: jwtCfg, dummyHash: dummy}, nil
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, ok := uc.credentials[strings.ToLower(strings.TrimSpace(in.Username))]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, cred.Username, cred.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      dto.UserResponse{Username: cred.Username, Role: cred.Role},
	}, nil
}

// CredentialsFromConfig arma las credenciales de admin y empleado.
// Con allowDefaults, un hash vacío se reemplaza por el hash del propio nombre de usuario (sólo development).
func CredentialsFromConfig(a config.AuthConfig, allowDefaults bool) ([]entity.Credential, error) {
	admin, err := credential(a.AdminUser, a.AdminPasswordHash, entity.RoleAdmin, allowDefaults)
	if err != nil {
		return nil, err
	}
	employee, err := credential(a.EmployeeUser, a.EmployeePasswordHash, entity.RoleEmployee, allowDefaults)
	if err != nil {
		return nil, err
	}
	return []entity.Credential{admin, employee}, nil
}

func credential(user, hash, role string, allowDefaults bool) (entity.Credential, error) {
	if hash == "" {
		if !allowDefaults {
			return entity.Credential{}, fmt.Errorf("auth: falta hash de password para %s", role)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(user), bcrypt.DefaultCost)
		if err != nil {
			return entity.Credential{}, err
		}
		hash = string(h)
	}
	return entity.Credential{Username: user, PasswordHash: hash, Role: role}, nil
}
