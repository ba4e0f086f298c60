package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transportes/internal/http/middleware"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "corpo da requisição vazio", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload inválido", err)
		return false
	}
	return true
}

// IDParam parses the :id path segment.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id inválido", nil)
		return 0, false
	}
	return id, true
}
