package gateway

import (
	"net/http"

	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "storefront-session"

	sessUserID = "user_id"
	sessRole   = "role"
)

// NewCookieStore returns the signed cookie store used for login sessions.
func NewCookieStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	store.Options.MaxAge = 7 * 24 * 60 * 60
	return store
}

// loadPrincipal copies the session's principal, if any, into the request
// context where the gRPC client interceptor picks it up.
func loadPrincipal(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, SessionName)
		if err != nil {
			// tampered or rotated key; treat as anonymous
			c.Next()
			return
		}
		userID, _ := session.Values[sessUserID].(string)
		role, _ := session.Values[sessRole].(string)
		if userID != "" {
			p := authctx.Principal{UserID: userID, Role: authctx.Role(role)}
			if !p.Role.Valid() {
				p.Role = authctx.RoleUser
			}
			c.Request = c.Request.WithContext(authctx.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.FromContext(c.Request.Context()); !ok {
			writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := authctx.FromContext(c.Request.Context())
		if !ok {
			writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if !p.IsAdmin() {
			writeError(c, http.StatusForbidden, "FORBIDDEN", "admin only")
			return
		}
		c.Next()
	}
}

func saveSession(c *gin.Context, store sessions.Store, p authctx.Principal) error {
	session, _ := store.Get(c.Request, SessionName)
	session.Values[sessUserID] = p.UserID
	session.Values[sessRole] = string(p.Role)
	return session.Save(c.Request, c.Writer)
}

func clearSession(c *gin.Context, store sessions.Store) error {
	session, _ := store.Get(c.Request, SessionName)
	delete(session.Values, sessUserID)
	delete(session.Values, sessRole)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}
