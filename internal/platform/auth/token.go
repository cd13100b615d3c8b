package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session-token payload. The token is the sole credential:
// everything downstream authorization needs (role and site assignments)
// rides in it, so no server-side session store is required.
type Claims struct {
	jwt.RegisteredClaims
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	PrimarySiteID   int64   `json:"primary_site_id"`
	AssignedSiteIDs []int64 `json:"assigned_site_ids"`
}

// UserID returns the numeric user id carried in the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// TokenIssuer signs and verifies session tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue returns a signed token for the given identity.
func (t *TokenIssuer) Issue(userID int64, email, name, role string, primarySiteID int64, assignedSiteIDs []int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email:           email,
		Name:            name,
		Role:            role,
		PrimarySiteID:   primarySiteID,
		AssignedSiteIDs: assignedSiteIDs,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry. Any failure is terminal; an expired
// or tampered token is never downgraded to an anonymous identity.
func (t *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
