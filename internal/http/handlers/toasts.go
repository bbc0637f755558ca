package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/notify"
)

// Toasts lists the session's live toasts, oldest first.
func (h *Handler) Toasts(c *gin.Context) {
	s := middleware.CurrentSession(c)
	list := s.Toasts.List()
	if list == nil {
		list = []notify.Toast{}
	}
	c.JSON(http.StatusOK, list)
}

// DismissToast starts the exit of one toast. Unknown ids are ignored.
func (h *Handler) DismissToast(c *gin.Context) {
	s := middleware.CurrentSession(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid toast id", err)
		return
	}
	s.Toasts.Dismiss(id)
	if strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON) {
		c.Status(http.StatusNoContent)
		return
	}
	back := localReferer(c.GetHeader("Referer"), c.Request.Host)
	if back == "" {
		back = middleware.HomePath
	}
	c.Redirect(http.StatusSeeOther, back)
}

// localReferer returns the path and query of ref when it points back at host, else "".
func localReferer(ref, host string) string {
	u, err := url.Parse(ref)
	if err != nil || ref == "" {
		return ""
	}
	if u.Scheme != "" || u.Host != "" {
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host != host {
			return ""
		}
	}
	p := u.EscapedPath()
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}
