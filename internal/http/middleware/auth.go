package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain"
	"transportes/internal/services"
)

const operatorKey = "operator"

// Auth validates the bearer token and stores the operator identity on
// the context. Every core route runs behind it.
func Auth(authSvc services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token de acesso ausente"})
			return
		}
		operador, err := authSvc.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido ou expirado"})
			return
		}
		c.Set(operatorKey, operador)
		c.Next()
	}
}

// CurrentOperator returns the authenticated identity set by Auth.
func CurrentOperator(c *gin.Context) (domain.Operator, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return domain.Operator{}, false
	}
	op, ok := v.(domain.Operator)
	return op, ok
}

// RequireRoles restricts a route group to the named roles. Assumes
// Auth ran earlier on the chain.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		op, ok := CurrentOperator(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operador não autenticado"})
			return
		}
		if _, ok := allowed[strings.ToLower(op.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acesso restrito a administradores"})
			return
		}
		c.Next()
	}
}
