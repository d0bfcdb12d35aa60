package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry. The token travels in
// the Authorization header on protected endpoints; the expiry also bounds
// how long a logged-out token must stay in the revocation store.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// Claims are the verified facts extracted from an access token.
type Claims struct {
	UserID uint64
	Rol    string
	Exp    time.Time
}

// NewAccessToken builds and signs an HS256 JWT carrying the user id (sub),
// role (rol), expiration (exp) and issued-at (iat) claims.
func NewAccessToken(secret string, userID uint64, rol string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"rol": rol,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
// Tokens signed with any method other than HS256 are rejected.
func ParseAccessToken(secret, token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token claims")
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, errors.New("token missing sub claim")
	}
	rol, _ := mc["rol"].(string)
	var exp time.Time
	if expUnix, ok := mc["exp"].(float64); ok {
		exp = time.Unix(int64(expUnix), 0).UTC()
	}
	return Claims{UserID: uint64(sub), Rol: rol, Exp: exp}, nil
}
