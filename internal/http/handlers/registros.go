package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain/models"
	"transportes/internal/http/middleware"
	"transportes/internal/services"
	"transportes/internal/utils"
)

type registroRequest struct {
	ViagemID          int64   `json:"viagem_id"`
	ChegadaReal       *string `json:"data_hora_chegada_real"`
	SaidaReal         *string `json:"data_hora_saida_real"`
	PassChegaram      int     `json:"pass_chegaram"`
	PassEmbarcaram    int     `json:"pass_embarcaram"`
	PassDesembarcaram int     `json:"pass_desembarcaram"`
	PassFinal         int     `json:"pass_final"`
	Observacoes       string  `json:"observacoes"`
	NovoStatusViagem  *string `json:"novo_status_viagem"`
}

// POST /api/registros
func CreateRegistro(c *gin.Context) {
	var req registroRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	in := services.RegistroInput{
		ViagemID:          req.ViagemID,
		PassChegaram:      req.PassChegaram,
		PassEmbarcaram:    req.PassEmbarcaram,
		PassDesembarcaram: req.PassDesembarcaram,
		PassFinal:         req.PassFinal,
		Observacoes:       strings.TrimSpace(req.Observacoes),
	}

	var err error
	if in.ChegadaReal, err = parseOptionalDateTime(req.ChegadaReal); err != nil {
		RespondError(c, http.StatusBadRequest, "data_hora_chegada_real inválida", err)
		return
	}
	if in.SaidaReal, err = parseOptionalDateTime(req.SaidaReal); err != nil {
		RespondError(c, http.StatusBadRequest, "data_hora_saida_real inválida", err)
		return
	}
	if req.NovoStatusViagem != nil {
		st := models.ViagemStatus(*req.NovoStatusViagem)
		in.NovoStatus = &st
	}

	operador, _ := middleware.CurrentOperator(c)
	registro, err := registroSvc(c).RecordEvent(c.Request.Context(), operador, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registro)
}

// GET /api/registros?viagem_id=
func ListRegistros(c *gin.Context) {
	svc := registroSvc(c)
	if raw := strings.TrimSpace(c.Query("viagem_id")); raw != "" {
		viagemID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || viagemID <= 0 {
			RespondError(c, http.StatusBadRequest, "viagem_id inválido", nil)
			return
		}
		out, err := svc.ListByViagem(viagemID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := svc.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/registros/:id
func DeleteRegistro(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := registroSvc(c).DeleteEvent(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registro excluído"})
}

func parseOptionalDateTime(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
