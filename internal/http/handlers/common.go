// Package handlers serves the console pages and its JSON helpers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/http/views"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/session"
	"recruitadmin/internal/utils"
)

// ExpiredPath is where an ended session lands; the login page shows the notice once.
const ExpiredPath = middleware.ExpiredLoginPath

// Handler carries what the pages need.
type Handler struct {
	Client   *apiclient.Client
	Screens  *screens.Registry
	Gatherer prometheus.Gatherer
	// ViewTimeout bounds how long a page waits for pending backend fetches.
	ViewTimeout time.Duration
}

func (h *Handler) viewContext(c *gin.Context) (context.Context, context.CancelFunc) {
	d := h.ViewTimeout
	if d <= 0 {
		d = 30 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), d)
}

// page wraps body with the header data of the current session.
func (h *Handler) page(c *gin.Context, title string, body any) views.Page {
	p := views.Page{Title: title, RequestID: middleware.GetRequestID(c), Body: body}
	if h.Client != nil {
		p.Busy = h.Client.Busy().Busy()
	}
	s := middleware.CurrentSession(c)
	if s == nil {
		return p
	}
	st := s.Store.State()
	p.User = st.User
	p.Toasts = s.Toasts.List()
	if st.Authenticated && h.Screens != nil {
		p.Nav = h.Screens.Nav(func(roles []string) bool {
			return middleware.Decide(st, roles).Outcome == middleware.Render
		})
	}
	return p
}

func (h *Handler) html(c *gin.Context, status int, name, title string, body any) {
	c.HTML(status, name, h.page(c, title, body))
}

// endSession sends the browser to the login page when err is an auth failure or the session
// was signed out meanwhile. It reports whether it did. Only an auth failure or a token that ran
// out marks the session expired; a plain logout lands on the bare login page.
func (h *Handler) endSession(c *gin.Context, s *session.Session, err error) bool {
	st := s.Store.State()
	authErr := err != nil && domain.IsAuth(err)
	if !authErr && st.Authenticated {
		return false
	}
	s.Unmount()
	if !authErr && !st.Expired {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return true
	}
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "session_end", err.Error())
	}
	if e := s.Store.Expire(c.Request.Context()); e != nil {
		utils.LogError(middleware.GetRequestID(c), "auth", "expire", e)
	}
	c.Redirect(http.StatusFound, ExpiredPath)
	return true
}

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	h.html(c, http.StatusOK, "home.html", "Home", nil)
}

// Forbidden renders the role mismatch page.
func (h *Handler) Forbidden(c *gin.Context) {
	h.html(c, http.StatusForbidden, "forbidden.html", "Forbidden", nil)
}
