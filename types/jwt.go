package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims of an admin access token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
