package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/session"
)

const sessionKey = "session"

// CookieConfig names the browser cookie carrying the session id.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge int
}

// Sessions attaches the browser's session to the request and its token source to the
// request context, so backend calls made while serving it are authorized.
func Sessions(m *session.Manager, cookie CookieConfig) gin.HandlerFunc {
	if cookie.Name == "" {
		cookie.Name = "recruit_sid"
	}
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)
		s := m.Open(c.Request.Context(), id)
		if s.ID != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookie.Name, s.ID, cookie.MaxAge, "/", "", cookie.Secure, true)
		}
		c.Set(sessionKey, s)
		c.Request = c.Request.WithContext(apiclient.WithTokenSource(c.Request.Context(), s.Store))
		c.Next()
	}
}

// CurrentSession returns the session attached by Sessions, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
