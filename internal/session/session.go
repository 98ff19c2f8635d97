// Package session resolves the logged-in user of a request. Sessions live in
// redis and are referenced by a signed cookie; handlers only see the user that
// the loading middleware put into the gin context.
package session

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated = errors.New("login required")
	ErrSessionNotFound = errors.New("session not found")
)

// context keys the loading middleware writes to
const (
	contextKey   = "session.user"
	contextIDKey = "session.id"
)

// SessionUser is the identity kept in a session. It does not change for the
// lifetime of a request.
type SessionUser struct {
	ID       string `json:"userId"`
	Username string `json:"username"`
}

type Store interface {
	Create(ctx context.Context, user SessionUser) (string, error)
	Get(ctx context.Context, id string) (*SessionUser, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SetUser attaches the session user to the request context.
func SetUser(c *gin.Context, user *SessionUser) {
	c.Set(contextKey, user)
}

// IsLoginUser reports whether the request carries a valid session.
func IsLoginUser(c *gin.Context) bool {
	_, err := UserFromContext(c)
	return err == nil
}

// UserFromContext returns the session user or ErrUnauthenticated.
func UserFromContext(c *gin.Context) (*SessionUser, error) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, ErrUnauthenticated
	}
	user, ok := v.(*SessionUser)
	if !ok || user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// SetID records the id of the session the request was resolved from.
func SetID(c *gin.Context, id string) {
	c.Set(contextIDKey, id)
}

// IDFromContext returns the current session id, empty for anonymous requests.
func IDFromContext(c *gin.Context) string {
	return c.GetString(contextIDKey)
}
