package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/form"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/utils"
)

type uploadResponse struct {
	URL     string `json:"url"`
	MIME    string `json:"mime"`
	Preview string `json:"preview,omitempty"`
}

// UploadFile relays one multipart "file" to the backend store and returns its URL.
func (h *Handler) UploadFile(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing_file", "file is required", err)
		return
	}
	in := form.FileInput{Image: c.Query("image") == "true"}
	if err := in.Read(header); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_file", err.Error(), err)
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_file", "cannot read file", err)
		return
	}
	defer f.Close()

	u, err := h.Client.UploadFile(c.Request.Context(), header.Filename, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID, "files", "upload", header.Filename+" "+in.MIME())
	c.JSON(http.StatusOK, uploadResponse{URL: u, MIME: in.MIME(), Preview: in.Preview()})
}
