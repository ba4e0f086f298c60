package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain/models"
	"transportes/internal/http/middleware"
	"transportes/internal/repositories"
	"transportes/internal/services"
	"transportes/internal/utils"
)

type abrirCaixaRequest struct {
	SaldoInicial json.Number `json:"saldo_inicial"`
}

// POST /api/caixas
func AbrirCaixa(c *gin.Context) {
	var req abrirCaixaRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	saldo, err := utils.ParseBRL(req.SaldoInicial.String())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "saldo_inicial inválido", err)
		return
	}

	operador, _ := middleware.CurrentOperator(c)
	caixa, err := ledgerSvc(c).AbrirCaixa(operador, saldo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, caixa)
}

// GET /api/caixas/ativo
//
// Answering "no caixa open" with 200 and aberto=false keeps the
// point-of-sale screen from treating the common case as a failure.
func CaixaAtivo(c *gin.Context) {
	operador, _ := middleware.CurrentOperator(c)
	caixa, found, err := ledgerSvc(c).CaixaAtivo(operador)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"aberto": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"aberto": true, "caixa": caixa})
}

// PUT /api/caixas/:id/fechar
func FecharCaixa(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	operador, _ := middleware.CurrentOperator(c)
	caixa, err := ledgerSvc(c).FecharCaixa(c.Request.Context(), operador, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, caixa)
}

// GET /api/caixas?status=&usuario_id=&inicio=&fim=
func ListCaixas(c *gin.Context) {
	var f repositories.CaixaFilter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st := models.CaixaStatus(raw)
		if !st.Valid() {
			RespondError(c, http.StatusBadRequest, "status de caixa desconhecido", nil)
			return
		}
		f.Status = st
	}
	if raw := strings.TrimSpace(c.Query("usuario_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "usuario_id inválido", nil)
			return
		}
		f.UsuarioID = id
	}
	var ok bool
	if f.Inicio, f.Fim, ok = periodoQuery(c); !ok {
		return
	}

	caixas, err := ledgerSvc(c).ListCaixas(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, caixas)
}

type vendaRequest struct {
	CaixaID             int64       `json:"caixa_id"`
	ViagemID            int64       `json:"viagem_id"`
	NomePassageiro      string      `json:"nome_passageiro"`
	DocumentoPassageiro string      `json:"documento_passageiro"`
	NumeroPoltrona      int         `json:"numero_poltrona"`
	ValorPassagem       json.Number `json:"valor_passagem"`
	MetodoPagamento     string      `json:"metodo_pagamento"`
	ChaveIdempotencia   string      `json:"chave_idempotencia"`
}

// POST /api/vendas
func CreateVenda(c *gin.Context) {
	var req vendaRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	valor, err := utils.ParseBRL(req.ValorPassagem.String())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "valor_passagem inválido", err)
		return
	}

	operador, _ := middleware.CurrentOperator(c)
	venda, err := ledgerSvc(c).RegistrarVenda(c.Request.Context(), operador, services.VendaInput{
		CaixaID:             req.CaixaID,
		ViagemID:            req.ViagemID,
		NomePassageiro:      req.NomePassageiro,
		DocumentoPassageiro: req.DocumentoPassageiro,
		NumeroPoltrona:      req.NumeroPoltrona,
		ValorCentavos:       valor,
		MetodoPagamento:     models.MetodoPagamento(req.MetodoPagamento),
		ChaveIdempotencia:   req.ChaveIdempotencia,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venda)
}

// GET /api/vendas?caixa_id=&viagem_id=&inicio=&fim=
func ListVendas(c *gin.Context) {
	var f repositories.VendaFilter

	for nome, dst := range map[string]*int64{
		"caixa_id":  &f.CaixaID,
		"viagem_id": &f.ViagemID,
	} {
		raw := strings.TrimSpace(c.Query(nome))
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, nome+" inválido", nil)
			return
		}
		*dst = id
	}
	var ok bool
	if f.Inicio, f.Fim, ok = periodoQuery(c); !ok {
		return
	}

	vendas, err := ledgerSvc(c).ListVendas(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendas)
}

// periodoQuery reads the inicio/fim date filters shared by the list
// endpoints. fim is widened to the end of its day.
func periodoQuery(c *gin.Context) (inicio, fim time.Time, ok bool) {
	if raw := strings.TrimSpace(c.Query("inicio")); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "inicio inválido (use AAAA-MM-DD)", err)
			return time.Time{}, time.Time{}, false
		}
		inicio = t
	}
	if raw := strings.TrimSpace(c.Query("fim")); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "fim inválido (use AAAA-MM-DD)", err)
			return time.Time{}, time.Time{}, false
		}
		fim = t.Add(24*time.Hour - time.Second)
	}
	return inicio, fim, true
}
