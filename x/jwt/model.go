package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload; Subject holds the account id
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	gojwt.RegisteredClaims
}
