package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain"
)

func TestRespondDomainErrorStatusPorTipo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	casos := []struct {
		err    error
		status int
	}{
		{domain.ValidationError{Field: "valor", Msg: "deve ser positivo"}, http.StatusBadRequest},
		{domain.NotFoundError{Resource: "viagem"}, http.StatusNotFound},
		{domain.ConflictError{Resource: "caixa", Msg: "já aberto"}, http.StatusConflict},
		{domain.DependencyError{Resource: "rota", Msg: "possui viagens"}, http.StatusConflict},
		{domain.AuthorizationError{Msg: "sem permissão"}, http.StatusForbidden},
		{errors.New("falha no banco"), http.StatusInternalServerError},
	}

	for _, caso := range casos {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/teste", nil)

		RespondDomainError(c, caso.err)
		if w.Code != caso.status {
			t.Errorf("%T: got status %d, want %d", caso.err, w.Code, caso.status)
		}
	}
}
