package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// A session associates an opaque cookie token with an authenticated user id.
// Tokens are stored hashed so a leaked store dump cannot be replayed.

// CookieName is the HTTP cookie carrying the opaque session token.
const CookieName = "session_token"

var ErrNoSession = errors.New("session not found")

type Store interface {
	// Create issues a new opaque token bound to userID.
	Create(ctx context.Context, userID int) (string, error)
	// Get resolves a raw token to the user id it was bound to.
	// Returns ErrNoSession for unknown or expired tokens.
	Get(ctx context.Context, token string) (int, error)
	// Delete destroys the session for the given raw token. Deleting an
	// unknown token is not an error; a store failure is.
	Delete(ctx context.Context, token string) error
}

// Deterministic HMAC hash (server-side pepper = session secret bytes).
func hashToken(secret []byte, raw string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
