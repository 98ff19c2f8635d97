package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieCodec signs session ids so a forged cookie is rejected before it
// reaches redis.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode returns the cookie value for a session id.
func (c *CookieCodec) Encode(sessionID string) (string, error) {
	now := c.now()
	claims := cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies the cookie value and returns the session id inside it.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidCookie
	}
	if claims.SessionID == "" {
		return "", ErrInvalidCookie
	}
	return claims.SessionID, nil
}

func (c *CookieCodec) TTL() time.Duration {
	return c.ttl
}

// CookieConfig names the session cookie and its Secure flag.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Write sets the session cookie; a negative maxAge expires it.
func (cfg CookieConfig) Write(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, value, maxAge, "/", "", cfg.Secure, true)
}
