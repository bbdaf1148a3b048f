package entity

// Roles de sesión.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Credential usuario configurado con su hash bcrypt y el rol que otorga al iniciar sesión.
type Credential struct {
	Username     string
	PasswordHash string
	Role         string
}
