// Package jwt emite y valida los bearer tokens del servicio.
// Firma simétrica HS256 con un secreto compartido de configuración.
package jwt

import (
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Issuer firma tokens de acceso con el secreto configurado.
type Issuer struct {
	Secret    []byte
	Iss       string        // claim "iss"
	AccessTTL time.Duration // TTL del access token
}

func NewIssuer(secret, iss string, accessTTL time.Duration) *Issuer {
	if accessTTL == 0 {
		accessTTL = 24 * time.Hour
	}
	return &Issuer{
		Secret:    []byte(secret),
		Iss:       iss,
		AccessTTL: accessTTL,
	}
}

// IssueAccess emite un access token con la identidad del usuario.
// Claims: iss, sub (user id), email, iat, nbf, exp.
func (i *Issuer) IssueAccess(userID int64, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.AccessTTL)

	claims := jwtv5.MapClaims{
		"iss":   i.Iss,
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
