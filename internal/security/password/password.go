// Package password encapsula el hashing de contraseñas.
// bcrypt con cost 10, igual que el resto del stack del servicio.
package password

import "golang.org/x/crypto/bcrypt"

// Cost es el factor de trabajo de bcrypt.
const Cost = 10

// Hash genera el hash bcrypt (salted) de un password en claro.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara un password en claro contra un hash.
// La comparación es constant-time (delegada a bcrypt).
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
