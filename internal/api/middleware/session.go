package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/api/metrics"
	"github.com/royalsilk/storefront/internal/core/ports"
)

// ContextSessionID is the echo context key holding the request's session id.
const ContextSessionID = "session_id"

const cookieName = "storefront_session"

// SessionConfig controls cookie signing and the rotation policy.
type SessionConfig struct {
	// Secret signs the session cookie (HS256).
	Secret []byte
	// RotationInterval is how old a session id may grow before it is
	// replaced. Defaults to 30 minutes.
	RotationInterval time.Duration
	// Secure marks the cookie Secure; enable outside development.
	Secure bool
}

// SessionManager resolves the visitor's session from the request cookie,
// applies the rotation policy, and exposes logout. The session identifier
// travels as an HS256-signed claim so a tampered cookie simply yields a
// fresh anonymous session.
type SessionManager struct {
	store ports.SessionStore
	cfg   SessionConfig
	log   zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, cfg SessionConfig, log zerolog.Logger) *SessionManager {
	if cfg.RotationInterval <= 0 {
		cfg.RotationInterval = 30 * time.Minute
	}
	return &SessionManager{store: store, cfg: cfg, log: log}
}

// Middleware ensures every request carries a session: it resolves the cookie,
// rotates the identifier when due, and injects the id into the echo context.
// Rotation runs at the start of every request rather than on a schedule.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, fresh := m.resolve(c)

			sid, err := m.maybeRotate(c, sid, fresh)
			if err != nil {
				m.log.Error().Err(err).Msg("session rotation failed")
				// Keep serving on the old id; rotation retries next request.
			}

			c.Set(ContextSessionID, sid)
			return next(c)
		}
	}
}

// SessionID returns the session id injected by the middleware.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextSessionID).(string)
	return sid
}

// Logout destroys the session and expires the cookie.
func (m *SessionManager) Logout(c echo.Context) error {
	sid := SessionID(c)
	if err := m.store.Destroy(c.Request().Context(), sid); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
	})
	return nil
}

// resolve extracts a session id from the request cookie, minting a new one
// when the cookie is absent or its signature does not verify.
func (m *SessionManager) resolve(c echo.Context) (sid string, fresh bool) {
	cookie, err := c.Cookie(cookieName)
	if err == nil {
		if sid := m.parseToken(cookie.Value); sid != "" {
			return sid, false
		}
	}

	sid = uuid.NewString()
	m.issueCookie(c, sid)
	return sid, true
}

// maybeRotate replaces the session id when the session is fresh (stamping its
// first rotation timestamp) or when the configured interval has elapsed since
// the last rotation. Session contents are preserved across rotation.
func (m *SessionManager) maybeRotate(c echo.Context, sid string, fresh bool) (string, error) {
	ctx := c.Request().Context()
	now := time.Now()

	if fresh {
		return sid, m.store.Set(ctx, sid, ports.SessionKeyLastRegenerated, strconv.FormatInt(now.Unix(), 10))
	}

	raw, found, err := m.store.Get(ctx, sid, ports.SessionKeyLastRegenerated)
	if err != nil {
		return sid, err
	}

	last := int64(0)
	if found {
		last, _ = strconv.ParseInt(raw, 10, 64)
	}
	if found && now.Unix()-last < int64(m.cfg.RotationInterval.Seconds()) {
		return sid, nil
	}

	newID := uuid.NewString()
	if err := m.store.Rotate(ctx, sid, newID); err != nil {
		return sid, err
	}
	if err := m.store.Set(ctx, newID, ports.SessionKeyLastRegenerated, strconv.FormatInt(now.Unix(), 10)); err != nil {
		return newID, err
	}

	m.issueCookie(c, newID)
	metrics.SessionRotationsTotal.Inc()
	m.log.Debug().Msg("session id rotated")
	return newID, nil
}

func (m *SessionManager) parseToken(token string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.cfg.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}

func (m *SessionManager) issueCookie(c echo.Context, sid string) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		m.log.Error().Err(err).Msg("session cookie signing failed")
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
