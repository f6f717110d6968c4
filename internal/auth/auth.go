package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"cardly/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	SessionDuration = 6 * 30 * 24 * time.Hour // 6 months
	CookieName      = "cardly_auth"
	MinPasswordLen  = 8
)

var (
	ErrNoToken         = errors.New("no session token")
	ErrSessionExpired  = errors.New("session expired")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrPasswordTooWeak
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a hash from HashPassword.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SessionStore persists sessions. *store.Store implements it.
type SessionStore interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Manager issues and checks login sessions.
type Manager struct {
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

// New returns a Manager issuing sessions that last SessionDuration.
func New(sessions SessionStore) *Manager {
	return &Manager{sessions: sessions, ttl: SessionDuration, now: time.Now}
}

// Issue starts a session for userID.
func (m *Manager) Issue(ctx context.Context, userID string) (*models.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate returns the live session for token. Expired sessions are
// deleted and reported as ErrSessionExpired.
func (m *Manager) Validate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	sess, err := m.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.ExpiresAt.After(m.now()) {
		m.sessions.DeleteSession(ctx, token)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Revoke ends a session. Unknown tokens are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.DeleteSession(ctx, token)
}

// TokenFromRequest reads a Bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetCookie stores the session token in an HTTP-only cookie.
func SetCookie(w http.ResponseWriter, r *http.Request, sess *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
