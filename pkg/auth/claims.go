package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  int64
	Role    enums.UserRole
	IsAdmin bool
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID  int64          `json:"user_id"`
	Role    enums.UserRole `json:"role"`
	IsAdmin bool           `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// ResetTokenClaims represents the short-lived JWT minted for password
// resets. Purpose pins the token to the reset flow so an access token can
// never be replayed there.
type ResetTokenClaims struct {
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}
