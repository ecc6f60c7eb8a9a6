// Package auth define los contratos de request/response de autenticación.
package auth

// RegisterRequest es el body de POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResult es la respuesta de un registro exitoso.
type RegisterResult struct {
	Message string `json:"message"`
}

// LoginRequest es el body de POST /auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult es la respuesta de un login exitoso.
// User es el nombre de display del usuario.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	User  string `json:"user"`
}
