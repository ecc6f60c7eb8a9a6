package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Claims es la identidad decodificada de un token válido.
type Claims struct {
	UserID int64
	Email  string
}

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrExpiredToken  = errors.New("expired")
	ErrInvalidIssuer = errors.New("invalid_issuer")
)

// Parse valida firma (HS256), chequea iss (si expectedIss != "") y valida
// exp/nbf con una pequeña tolerancia. Devuelve la identidad embebida.
func (i *Issuer) Parse(token string) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return i.Secret, nil
	}

	tok, err := jwtv5.Parse(token, keyfunc,
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithoutClaimsValidation(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if i.Iss != "" {
		if iss, _ := claims["iss"].(string); iss != i.Iss {
			return nil, ErrInvalidIssuer
		}
	}

	now := time.Now()
	if expf, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(expf), 0).Before(now.Add(-30 * time.Second)) {
			return nil, ErrExpiredToken
		}
	}
	if nbff, ok := claims["nbf"].(float64); ok {
		if time.Unix(int64(nbff), 0).After(now.Add(30 * time.Second)) {
			return nil, ErrInvalidToken
		}
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, Email: email}, nil
}
