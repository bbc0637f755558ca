package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/http/views"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/utils"
)

const (
	MsgProfileSaved    = "Profile updated successfully"
	MsgPasswordChanged = "Password changed successfully"
)

// ProfilePage shows the signed-in user's profile and the change password form.
func (h *Handler) ProfilePage(c *gin.Context) {
	s := middleware.CurrentSession(c)
	body := views.ProfileBody{
		Profile:  form.Render(screens.ProfileFields, screens.ProfileValues(s.Store.State().User), nil),
		Password: form.Render(screens.PasswordFields, nil, nil),
	}
	h.html(c, http.StatusOK, "profile.html", "My profile", body)
}

// UpdateProfile saves the profile form and refreshes the stored profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	s := middleware.CurrentSession(c)
	reqID := middleware.GetRequestID(c)
	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_form", "invalid form", err)
		return
	}
	var authErr error
	out := form.Submit(c.Request.Context(), screens.ProfileSchema, c.Request.PostForm, func(ctx context.Context, in models.ProfileInput) error {
		p, err := h.Client.UpdateProfile(ctx, in)
		if err != nil {
			authErr = err
			return err
		}
		current := s.Store.State().User
		if p.Roles == nil && current != nil {
			p.Roles = current.Roles
		}
		return s.Store.UpdateProfile(ctx, p)
	})
	if out.Done {
		utils.LogEvent(reqID, "profile", "update", "ok")
		s.Toasts.Info(MsgProfileSaved)
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	if h.endSession(c, s, authErr) {
		return
	}
	body := views.ProfileBody{
		Profile:  form.Render(screens.ProfileFields, out.Values, out.Errors),
		Password: form.Render(screens.PasswordFields, nil, nil),
	}
	status := http.StatusBadRequest
	if out.Alert != nil {
		body.ProfileError = out.Alert.Message
		status = http.StatusBadGateway
		s.Toasts.Error(out.Alert.Message)
	}
	body.ProfileError = firstNonEmpty(body.ProfileError, out.Errors[form.FormKey])
	h.html(c, status, "profile.html", "My profile", body)
}

// ChangePassword submits the change password form. Entered passwords are never echoed back.
func (h *Handler) ChangePassword(c *gin.Context) {
	s := middleware.CurrentSession(c)
	reqID := middleware.GetRequestID(c)
	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_form", "invalid form", err)
		return
	}
	var authErr error
	out := form.Submit(c.Request.Context(), screens.PasswordSchema, c.Request.PostForm, func(ctx context.Context, in models.ChangePasswordInput) error {
		authErr = h.Client.ChangePassword(ctx, in)
		return authErr
	})
	if out.Done {
		utils.LogEvent(reqID, "profile", "change_password", "ok")
		s.Toasts.Info(MsgPasswordChanged)
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	if h.endSession(c, s, authErr) {
		return
	}
	body := views.ProfileBody{
		Profile:  form.Render(screens.ProfileFields, screens.ProfileValues(s.Store.State().User), nil),
		Password: form.Render(screens.PasswordFields, url.Values{}, out.Errors),
	}
	status := http.StatusBadRequest
	if out.Alert != nil {
		body.PasswordError = out.Alert.Message
		status = http.StatusBadGateway
		s.Toasts.Error(out.Alert.Message)
	}
	body.PasswordError = firstNonEmpty(body.PasswordError, out.Errors[form.FormKey])
	h.html(c, status, "profile.html", "My profile", body)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
