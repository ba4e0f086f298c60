package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/relatorios/caixas/:id/pdf
func FechoCaixaPDF(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	conteudo, nome, err := reportsSvc(c).FechoCaixaPDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, nome, conteudo)
}

// GET /api/relatorios/viagens/:id/manifesto
func ManifestoViagemPDF(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	conteudo, nome, err := reportsSvc(c).ManifestoViagemPDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, nome, conteudo)
}

func servePDF(c *gin.Context, nome string, conteudo []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nome))
	c.Data(http.StatusOK, "application/pdf", conteudo)
}
