// Package jwt issues and verifies HS256 session tokens
package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const issuer = "archive"

// Create signs a session token for subject that expires after ttl
func Create(subject, email, name string, ttl time.Duration, secret string) (string, Claims, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        xid.New().String(),
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", Claims{}, errors.Wrap(err, "failed to sign session token")
	}

	return signed, claims, nil
}

// Validate checks the signature, issuer and expiry of a session token
func Validate(tokenString, secret string) (Claims, error) {
	claims := Claims{}

	token, err := gojwt.ParseWithClaims(tokenString, &claims, func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, gojwt.WithIssuer(issuer))
	if err != nil {
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, fmt.Errorf("invalid session token")
	}

	if claims.Subject == "" || claims.ID == "" {
		return Claims{}, fmt.Errorf("session token is missing subject or id")
	}

	return claims, nil
}
