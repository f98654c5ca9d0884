package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTParams holds the validation parameters shared by token generation and
// verification. Configure once at startup via ConfigureJWT. Verification is
// strictly HS256, so externally issued tokens pass only when the issuer signs
// them with the same shared secret.
type JWTParams struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

var jwtParams JWTParams

// ConfigureJWT sets the process-wide JWT parameters. Must be called before
// GenerateJWT or ValidateJWT.
func ConfigureJWT(p JWTParams) {
	jwtParams = p
}

// Claims are the registered claims plus the subject identity fields the
// middleware exposes to handlers.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for the given user identity.
func GenerateJWT(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtParams.Issuer,
			Audience:  jwt.ClaimStrings{jwtParams.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtParams.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtParams.Secret))
}

// ValidateJWT parses and verifies a bearer token against the configured
// issuer, audience, and signing key.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtParams.Secret), nil
		},
		jwt.WithIssuer(jwtParams.Issuer),
		jwt.WithAudience(jwtParams.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
