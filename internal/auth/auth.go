package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("Invalid token")

// Identity is the resolved owner of a connection.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Resolver verifies HS256 tokens carrying "id" and optional "username" claims.
type Resolver struct {
	secret []byte
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

func (r *Resolver) Resolve(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrInvalidToken
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return Identity{}, ErrInvalidToken
	}
	name, _ := claims["username"].(string)
	if name == "" {
		name = id
	}
	return Identity{ID: id, DisplayName: name}, nil
}

// Sign issues a token for id; used by tests and local tooling.
func (r *Resolver) Sign(id, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	})
	return token.SignedString(r.secret)
}

// TokenFromRequest reads a bearer token from the Authorization header or the
// "token" query parameter, which browsers use for websocket handshakes.
func TokenFromRequest(req *http.Request) string {
	if a := req.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return req.URL.Query().Get("token")
}
