package token

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried inside a signed token: the subject (the
// user's email), the role granted at login, and the issued-at/expiry
// timestamps. Claims exist only as the decoded payload of a token and
// are never persisted server-side.
type Claims struct {
	gojwt.RegisteredClaims

	// Role is the role resolved at login time (e.g. "MANAGER").
	Role string `json:"role"`
}
