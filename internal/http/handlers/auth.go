package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/domain/user"
	"github.com/vndigital/sitehub/internal/security"
	"github.com/vndigital/sitehub/internal/session"
)

type UserReader interface {
	GetByID(ctx context.Context, id int) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthHandler struct {
	users    UserReader
	sessions session.Store
	cfg      config.Config
}

func NewAuthHandler(users UserReader, sessions session.Store, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// same message as a bad password; do not reveal whether the
			// email exists
			RespondUnauthorized(ctx, "invalid_credentials", "Invalid credentials")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnauthorized(ctx, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := h.sessions.Create(cctx, foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.setSessionCookie(ctx, token)

	ctx.JSON(http.StatusOK, foundUser)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	raw, err := ctx.Cookie(session.CookieName)

	if err == nil && raw != "" {
		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		if err := h.sessions.Delete(cctx, raw); err != nil {
			// session store unreachable; the cookie stays valid, so
			// report the failure instead of pretending
			RespondInternal(ctx, "Failed to logout")
			return
		}
	}

	h.clearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) CurrentUser(ctx *gin.Context) {
	raw, err := ctx.Cookie(session.CookieName)

	if err != nil || raw == "" {
		RespondUnauthorized(ctx, "unauthenticated", "Not authenticated")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	userID, err := h.sessions.Get(cctx, raw)

	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			RespondUnauthorized(ctx, "unauthenticated", "Not authenticated")
			return
		}

		RespondInternal(ctx, "Could not load session")
		return
	}

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// stale session: the user row is gone
			RespondUnauthorized(ctx, "unauthenticated", "User not found")
			return
		}

		RespondInternal(ctx, "Could not load user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, token string) {
	secure := h.cfg.Env == "prod"

	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		session.CookieName,
		token,
		int(h.cfg.SessionTTL.Seconds()),
		"/",
		"",
		secure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		session.CookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
