package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/domain"
	"recruitadmin/internal/form"
	"recruitadmin/internal/http/middleware"
)

// Options returns the options of one lookup source whose label contains ?q=.
func (h *Handler) Options(c *gin.Context) {
	opts, err := h.Screens.Lookups.Options(c.Request.Context(), c.Param("source"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, form.FilterOptions(opts, c.Query("q")))
}

type comboboxRequest struct {
	form.ComboboxState
	Multiple bool   `form:"multiple"`
	Key      string `form:"key" binding:"required"`
	Arg      string `form:"arg"`
}

type comboboxResponse struct {
	form.ComboboxState
	Options   []domain.Option `json:"options"`
	Focused   string          `json:"focused"`
	Committed bool            `json:"committed"`
}

// Combobox applies one key press to the searchable select over a lookup source. The browser
// sends the state it holds and gets the next one back with the options to show.
func (h *Handler) Combobox(c *gin.Context) {
	var req comboboxRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_combobox", "invalid combobox request", err)
		return
	}
	opts, err := h.Screens.Lookups.Options(c.Request.Context(), c.Param("source"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	box := form.RestoreCombobox(opts, req.Multiple, req.ComboboxState)
	committed, err := box.Press(req.Key, req.Arg)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_combobox", err.Error(), err)
		return
	}
	res := comboboxResponse{ComboboxState: box.State(), Options: box.Filtered(), Committed: committed}
	if res.Values == nil {
		res.Values = []string{}
	}
	if o, ok := box.Focused(); ok {
		res.Focused = o.Value
	}
	c.JSON(http.StatusOK, res)
}

// SelfOption returns the signed-in user as a select option.
func (h *Handler) SelfOption(c *gin.Context) {
	u := middleware.CurrentSession(c).Store.State().User
	if u == nil {
		respondError(c, http.StatusNotFound, "no_profile", "no profile loaded", nil)
		return
	}
	label := u.FullName
	if label == "" {
		label = u.Username
	}
	c.JSON(http.StatusOK, domain.Option{Label: label, Value: u.ID})
}
