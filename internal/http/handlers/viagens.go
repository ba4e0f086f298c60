package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain/models"
	"transportes/internal/http/middleware"
	"transportes/internal/repositories"
	"transportes/internal/services"
	"transportes/internal/utils"
)

type viagemRequest struct {
	RotaID          int64  `json:"rota_id"`
	OnibusID        int64  `json:"onibus_id"`
	MotoristaID     int64  `json:"motorista_id"`
	PartidaPrevista string `json:"data_partida_prevista"`
	ChegadaPrevista string `json:"data_chegada_prevista"`
}

// POST /api/viagens
func CreateViagem(c *gin.Context) {
	var req viagemRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	partida, err := utils.ParseDateTime(req.PartidaPrevista)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "data_partida_prevista inválida", err)
		return
	}
	chegada, err := utils.ParseDateTime(req.ChegadaPrevista)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "data_chegada_prevista inválida", err)
		return
	}

	viagem, err := viagemSvc(c).Create(services.ViagemInput{
		RotaID:          req.RotaID,
		OnibusID:        req.OnibusID,
		MotoristaID:     req.MotoristaID,
		PartidaPrevista: partida,
		ChegadaPrevista: chegada,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viagem)
}

// GET /api/viagens?status=&inicio=&fim=
func ListViagens(c *gin.Context) {
	filter := repositories.ViagemFilter{
		Status: models.ViagemStatus(strings.TrimSpace(c.Query("status"))),
	}
	if v := strings.TrimSpace(c.Query("inicio")); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "filtro 'inicio' inválido", err)
			return
		}
		filter.Inicio = t
	}
	if v := strings.TrimSpace(c.Query("fim")); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "filtro 'fim' inválido", err)
			return
		}
		filter.Fim = t.Add(24*time.Hour - time.Second)
	}

	viagens, err := viagemSvc(c).List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viagens)
}

// GET /api/viagens/:id
func GetViagem(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	viagem, err := viagemSvc(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viagem)
}

type viagemUpdateRequest struct {
	RotaID          *int64  `json:"rota_id"`
	OnibusID        *int64  `json:"onibus_id"`
	MotoristaID     *int64  `json:"motorista_id"`
	PartidaPrevista *string `json:"data_partida_prevista"`
	ChegadaPrevista *string `json:"data_chegada_prevista"`
	Status          *string `json:"status"`
}

// PUT /api/viagens/:id
func UpdateViagem(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req viagemUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	upd := models.ViagemUpdate{
		RotaID:      req.RotaID,
		OnibusID:    req.OnibusID,
		MotoristaID: req.MotoristaID,
	}
	if req.PartidaPrevista != nil {
		t, err := utils.ParseDateTime(*req.PartidaPrevista)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "data_partida_prevista inválida", err)
			return
		}
		upd.PartidaPrevista = &t
	}
	if req.ChegadaPrevista != nil {
		t, err := utils.ParseDateTime(*req.ChegadaPrevista)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "data_chegada_prevista inválida", err)
			return
		}
		upd.ChegadaPrevista = &t
	}
	if req.Status != nil {
		st := models.ViagemStatus(*req.Status)
		upd.Status = &st
	}

	operador, _ := middleware.CurrentOperator(c)
	viagem, err := viagemSvc(c).Update(operador, id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viagem)
}

// DELETE /api/viagens/:id
func DeleteViagem(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := viagemSvc(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "viagem excluída"})
}
