package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/session"

	"github.com/gin-gonic/gin"
)

// LoadSession resolves the session cookie into a SessionUser on the gin
// context. It never rejects a request: a missing, forged or expired session
// leaves the request anonymous and handlers decide what that means.
func LoadSession(store session.Store, codec *session.CookieCodec, cookie session.CookieConfig, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(cookie.Name)
		if err != nil || value == "" {
			c.Next()
			return
		}

		id, err := codec.Decode(value)
		if err != nil {
			logger.Debug("session_cookie_rejected", "error", err)
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, err := store.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				logger.Warn("session_load_failed", "error", err)
			}
			c.Next()
			return
		}

		// sliding expiry: extend the redis entry and reissue the cookie
		if err := store.Touch(ctx, id); err != nil {
			logger.Warn("session_touch_failed", "error", err)
		} else if token, err := codec.Encode(id); err == nil {
			cookie.Write(c, token, int(codec.TTL().Seconds()))
		}

		session.SetID(c, id)
		session.SetUser(c, user)
		c.Next()
	}
}

// RequireLogin aborts anonymous requests with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLoginUser(c) {
			render.Error(c, http.StatusUnauthorized, session.ErrUnauthenticated.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
