package utils // package utils provides helper functions for password hashing and token creation

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp. Access tokens are sent by clients in the Authorization
// header as "Bearer <token>" when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseAccessToken for any token that is
// malformed, expired, signed with another key or missing its subject.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. The subject
// (sub) carries the user ID as a decimal string; the username is
// included for convenience. exp and iat are standard claims.
func NewAccessToken(secret string, userID uint64, username string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(userID, 10),
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and returns the user ID from
// its subject claim. Only HMAC-signed tokens are accepted.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens using different algorithms.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
