package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/http/views"
	"recruitadmin/internal/utils"
)

const (
	MsgSessionExpired     = "Your session has expired. Please login again."
	MsgLoginFailed        = "Login failed. Please try again."
	MsgInvalidCredentials = "Invalid credentials"
)

var loginFields = []form.Field{
	{Name: "username", Label: "Username", Kind: form.Text, Wide: true},
	{Name: "password", Label: "Password", Kind: form.Password, Wide: true},
}

var loginSchema = form.Schema[models.LoginRequest]{
	Fields: loginFields,
	Messages: map[string]string{
		"password.min": "Password must be between 6 and 20 characters",
		"password.max": "Password must be between 6 and 20 characters",
	},
}

// LoginPage shows the login form. The tokenExpired marker becomes a toast and is stripped.
func (h *Handler) LoginPage(c *gin.Context) {
	if c.Query("tokenExpired") == "true" {
		if s := middleware.CurrentSession(c); s != nil {
			s.Toasts.Warning(MsgSessionExpired)
			s.Store.AckExpired()
		}
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	h.html(c, http.StatusOK, "login.html", "Login", views.LoginBody{Controls: form.Render(loginFields, nil, nil)})
}

// Login checks the form, signs in against the auth backend and stores the session.
func (h *Handler) Login(c *gin.Context) {
	s := middleware.CurrentSession(c)
	reqID := middleware.GetRequestID(c)
	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_form", "invalid form", err)
		return
	}
	values := c.Request.PostForm
	shown := form.Render(loginFields, keepUsername(values), nil)

	req, errs := loginSchema.Decode(values)
	if len(errs) > 0 {
		h.html(c, http.StatusBadRequest, "login.html", "Login", views.LoginBody{Controls: form.Render(loginFields, keepUsername(values), errs)})
		return
	}

	resp, err := h.Client.Login(c.Request.Context(), req)
	if err != nil {
		msg := apiclient.Message(err)
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrUnauthorized) {
			msg = MsgInvalidCredentials
			status = http.StatusUnauthorized
		}
		utils.LogError(reqID, "auth", "login", err)
		s.Toasts.Error(MsgLoginFailed)
		h.html(c, status, "login.html", "Login", views.LoginBody{Controls: shown, FormError: msg})
		return
	}
	if err := s.Store.Login(c.Request.Context(), resp); err != nil {
		utils.LogError(reqID, "auth", "store_session", err)
		s.Toasts.Error(MsgLoginFailed)
		h.html(c, http.StatusBadGateway, "login.html", "Login", views.LoginBody{Controls: shown, FormError: err.Error()})
		return
	}
	utils.LogEvent(reqID, "auth", "login", "user="+req.Username)
	c.Redirect(http.StatusFound, middleware.HomePath)
}

// Logout drops the session's screens and credentials.
func (h *Handler) Logout(c *gin.Context) {
	s := middleware.CurrentSession(c)
	s.Unmount()
	if err := s.Store.Logout(c.Request.Context()); err != nil {
		utils.LogError(middleware.GetRequestID(c), "auth", "logout", err)
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func keepUsername(values url.Values) url.Values {
	return url.Values{"username": values["username"]}
}
