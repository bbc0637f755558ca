package handlers

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/session"
	"recruitadmin/internal/utils"
)

const (
	MsgSaved        = "Saved successfully"
	MsgDeleted      = "Deleted successfully"
	MsgActivated    = "User activated"
	MsgDeactivated  = "User deactivated"
	maxUploadMemory = 32 << 20
)

// screenAction mutates the mounted instance before the page is rendered. Returning false
// means the action already wrote the response.
type screenAction func(c *gin.Context, s *session.Session, in screens.Instance) bool

// MountScreen registers the list page and its actions under g.
func (h *Handler) MountScreen(g gin.IRouter, sc screens.Screen) {
	g.GET("", h.openScreen(sc))
	g.GET("/current", h.onScreen(sc, nil))
	g.GET("/page", h.onScreen(sc, func(c *gin.Context, _ *session.Session, in screens.Instance) bool {
		page, _ := strconv.Atoi(c.Query("page"))
		size, _ := strconv.Atoi(c.Query("size"))
		in.Page(page, size, c.Query("sortBy"), domain.ParseOrder(c.Query("order"), ""))
		return true
	}))
	g.POST("/search", h.onScreen(sc, func(c *gin.Context, _ *session.Session, in screens.Instance) bool {
		if err := c.Request.ParseForm(); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_form", "invalid form", err)
			return false
		}
		in.Search(c.Request.PostForm)
		return true
	}))
	g.GET("/new", h.onScreen(sc, func(_ *gin.Context, _ *session.Session, in screens.Instance) bool {
		in.New()
		return true
	}))
	g.GET("/:id/edit", h.onScreen(sc, func(c *gin.Context, s *session.Session, in screens.Instance) bool {
		if err := in.Edit(c.Request.Context(), c.Param("id")); err != nil {
			if h.endSession(c, s, err) {
				return false
			}
			s.Toasts.Error(apiclient.Message(err))
		}
		return true
	}))
	g.POST("/save", h.onScreen(sc, h.save))
	g.POST("/cancel", h.onScreen(sc, func(_ *gin.Context, _ *session.Session, in screens.Instance) bool {
		in.Cancel()
		return true
	}))
	g.POST("/:id/delete", h.onScreen(sc, func(c *gin.Context, s *session.Session, in screens.Instance) bool {
		err := in.Delete(c.Request.Context(), c.Param("id"))
		if err == nil {
			s.Toasts.Info(MsgDeleted)
			return true
		}
		return !h.endSession(c, s, err)
	}))
	g.POST("/alert/dismiss", h.onScreen(sc, func(_ *gin.Context, _ *session.Session, in screens.Instance) bool {
		in.DismissAlert()
		return true
	}))
	g.GET("/export.pdf", h.exportScreen(sc))
}

func (h *Handler) save(c *gin.Context, s *session.Session, in screens.Instance) bool {
	values, files, err := parseSubmission(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_form", "invalid form", err)
		return false
	}
	out := in.Save(c.Request.Context(), values, files)
	if out.Done {
		s.Toasts.Info(MsgSaved)
	}
	return true
}

// parseSubmission reads urlencoded or multipart bodies; only the first file per field counts.
func parseSubmission(c *gin.Context) (url.Values, map[string]*multipart.FileHeader, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, nil, err
		}
		files := map[string]*multipart.FileHeader{}
		for name, hs := range c.Request.MultipartForm.File {
			if len(hs) > 0 {
				files[name] = hs[0]
			}
		}
		return c.Request.PostForm, files, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, nil, err
	}
	return c.Request.PostForm, nil, nil
}

// openScreen mounts a fresh instance with the default filter.
func (h *Handler) openScreen(sc screens.Screen) gin.HandlerFunc {
	meta := sc.Describe()
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		ctx := c.Request.Context()
		in := s.Mount(meta.Name, func() session.Screen { return sc.Open(ctx) }).(screens.Instance)
		h.renderScreen(c, s, in)
	}
}

// onScreen runs act on the mounted instance, mounting one first when the session has none.
func (h *Handler) onScreen(sc screens.Screen, act screenAction) gin.HandlerFunc {
	meta := sc.Describe()
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		ctx := c.Request.Context()
		in := s.Screen(meta.Name, func() session.Screen { return sc.Open(ctx) }).(screens.Instance)
		if act != nil && !act(c, s, in) {
			return
		}
		h.renderScreen(c, s, in)
	}
}

func (h *Handler) renderScreen(c *gin.Context, s *session.Session, in screens.Instance) {
	ctx, cancel := h.viewContext(c)
	defer cancel()
	v, err := in.View(ctx)
	if err != nil {
		if h.endSession(c, s, err) {
			return
		}
		respondError(c, http.StatusGatewayTimeout, "view_timeout", "the backend did not answer in time", err)
		return
	}
	if h.endSession(c, s, nil) {
		return
	}
	h.html(c, http.StatusOK, "list.html", v.Title, v)
}

func (h *Handler) exportScreen(sc screens.Screen) gin.HandlerFunc {
	meta := sc.Describe()
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		ctx := c.Request.Context()
		in := s.Screen(meta.Name, func() session.Screen { return sc.Open(ctx) }).(screens.Instance)

		vctx, cancel := h.viewContext(c)
		defer cancel()
		pdfBytes, filename, err := in.Export(vctx, middleware.GetRequestID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "export_failed", "failed to export "+meta.Title, err)
			return
		}
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// SetUserActive flips the active flag of a user and refreshes the user list.
func (h *Handler) SetUserActive(sc screens.Screen) gin.HandlerFunc {
	return h.onScreen(sc, func(c *gin.Context, s *session.Session, in screens.Instance) bool {
		to := c.Query("to") == "true"
		if err := h.Client.SetUserActive(c.Request.Context(), c.Param("id"), to); err != nil {
			if h.endSession(c, s, err) {
				return false
			}
			s.Toasts.Error(apiclient.Message(err))
			return true
		}
		utils.LogEvent(middleware.GetRequestID(c), "users", "set_active", c.Param("id")+" active="+strconv.FormatBool(to))
		if to {
			s.Toasts.Info(MsgActivated)
		} else {
			s.Toasts.Info(MsgDeactivated)
		}
		in.Refresh()
		return true
	})
}

// UserInfo renders the read-only card of one user.
func (h *Handler) UserInfo(c *gin.Context) {
	s := middleware.CurrentSession(c)
	card, err := screens.UserInfo(c.Request.Context(), h.Client, c.Param("id"))
	if err != nil {
		if h.endSession(c, s, err) {
			return
		}
		s.Toasts.Error(apiclient.Message(err))
		c.Redirect(http.StatusFound, "/users/current")
		return
	}
	h.html(c, http.StatusOK, "user_info.html", "User Detail", card)
}

// CandidateCV redirects to the stored CV of a candidate.
func (h *Handler) CandidateCV(c *gin.Context) {
	s := middleware.CurrentSession(c)
	target, err := screens.CV(c.Request.Context(), h.Client, c.Param("id"))
	if err != nil {
		if h.endSession(c, s, err) {
			return
		}
		s.Toasts.Error(apiclient.Message(err))
		c.Redirect(http.StatusFound, "/candidates/current")
		return
	}
	c.Redirect(http.StatusFound, target)
}
