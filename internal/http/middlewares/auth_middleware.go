package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vndigital/sitehub/internal/domain/user"
	"github.com/vndigital/sitehub/internal/session"
)

// Keep this small interface so tests can fake it easily.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (user.User, error)
}

type SessionAuth struct {
	sessions session.Store
	users    UserLoader
}

func NewSessionAuth(sessions session.Store, users UserLoader) *SessionAuth {
	return &SessionAuth{sessions: sessions, users: users}
}

const ctxUserKey = "auth.user"

// RequireAuth resolves the session cookie to a user and stashes it on
// the context. A missing cookie, unknown token, or stale session (user
// row gone) all yield the same 401.
func (m *SessionAuth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)

		if err != nil || raw == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		userID, err := m.sessions.Get(ctx, raw)

		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				abortUnauthorized(c, "Not authenticated")
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "internal_error",
					"message": "Could not load session",
				},
			})
			return
		}

		u, err := m.users.GetByID(ctx, userID)

		if err != nil {
			// stale session or lookup failure; either way no identity
			abortUnauthorized(c, "Not authenticated")
			return
		}

		c.Set(ctxUserKey, u)

		c.Next()
	}
}

// RequireAdmin gates dashboard mutations. It must run after RequireAuth.
func (m *SessionAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := UserFromContext(c)

		if !ok {
			abortUnauthorized(c, "Missing identity context")
			return
		}

		if !u.Admin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin access required",
				},
			})
			return
		}

		c.Next()
	}
}

// Helper so handlers don't need to know the magic key.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}
