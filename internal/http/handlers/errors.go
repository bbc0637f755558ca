package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/utils"
)

// ErrorResponse standardizes error payloads of the JSON endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, err error) {
	if code == "" {
		code = http.StatusText(status)
	}
	reqID := middleware.GetRequestID(c)
	if err != nil {
		utils.LogError(reqID, "http", code, err)
	}
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      message,
			"code":       code,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	msg := apiclient.Message(err)
	switch {
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", msg, err)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", msg, err)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", msg, err)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", msg, err)
	default:
		respondError(c, http.StatusBadGateway, "backend_error", msg, err)
	}
}
