package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transportes/internal/domain"
	"transportes/internal/http/middleware"
)

// RespondDomainError maps domain errors to HTTP responses. Each error
// kind keeps a stable code so the frontend can render the right
// guidance without string-matching messages.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respond(c, http.StatusBadRequest, "validation_error", err)
	case domain.IsNotFound(err):
		respond(c, http.StatusNotFound, "not_found", err)
	case domain.IsConflict(err):
		respond(c, http.StatusConflict, "conflict", err)
	case domain.IsDependency(err):
		respond(c, http.StatusConflict, "dependency_error", err)
	case domain.IsAuthorization(err):
		respond(c, http.StatusForbidden, "authorization_error", err)
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("erro interno")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "erro interno",
			"code":       "internal_error",
			"request_id": middleware.GetRequestID(c),
		})
	}
}

func respond(c *gin.Context, status int, code string, err error) {
	c.JSON(status, gin.H{
		"error":      err.Error(),
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}
