package services

import (
	"context"
	"fmt"
	"strings"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
	"transportes/internal/utils"
)

// LedgerService owns the cash-session lifecycle and sale recording.
// Totals are only ever touched inside CaixaRepository.RegistrarVenda's
// transaction; this service decides whether a mutation may happen at
// all.
type LedgerService struct {
	CaixaRepo repositories.CaixaRepository
	VendaRepo repositories.VendaRepository
	RequestID string
}

// AbrirCaixa opens a new session. The repository relies on the unique
// open-session key, so a concurrent double open resolves to exactly
// one success.
func (s LedgerService) AbrirCaixa(operador domain.Operator, saldoInicial int64) (models.Caixa, error) {
	if saldoInicial < 0 {
		return models.Caixa{}, domain.ValidationError{Field: "saldo_inicial", Msg: "não pode ser negativo"}
	}

	caixa, err := s.CaixaRepo.Abrir(int64(operador.ID), saldoInicial)
	if err != nil {
		return models.Caixa{}, err
	}
	logger.Event(s.RequestID, "caixa", "abrir", fmt.Sprintf("caixa_id=%d usuario_id=%d", caixa.ID, operador.ID))
	return caixa, nil
}

// CaixaAtivo returns the operator's open caixa; found=false is the
// normal answer when none is open, never an error.
func (s LedgerService) CaixaAtivo(operador domain.Operator) (models.Caixa, bool, error) {
	return s.CaixaRepo.GetAtivaByUsuario(int64(operador.ID))
}

// VendaInput is the payload for a new sale. Valor is integer centavos.
type VendaInput struct {
	CaixaID             int64
	ViagemID            int64
	NomePassageiro      string
	DocumentoPassageiro string
	NumeroPoltrona      int
	ValorCentavos       int64
	MetodoPagamento     models.MetodoPagamento
	ChaveIdempotencia   string
}

// RegistrarVenda validates the request and delegates to the ledger
// transaction. When the client supplies an idempotency key that was
// already used, the original sale is returned unchanged so a retried
// request cannot double-count.
func (s LedgerService) RegistrarVenda(ctx context.Context, operador domain.Operator, in VendaInput) (models.Venda, error) {
	if in.CaixaID <= 0 {
		return models.Venda{}, domain.ValidationError{Field: "caixa_id", Msg: "obrigatório"}
	}
	if in.ViagemID <= 0 {
		return models.Venda{}, domain.ValidationError{Field: "viagem_id", Msg: "obrigatório"}
	}
	if strings.TrimSpace(in.NomePassageiro) == "" {
		return models.Venda{}, domain.ValidationError{Field: "nome_passageiro", Msg: "obrigatório"}
	}
	if strings.TrimSpace(in.DocumentoPassageiro) == "" {
		return models.Venda{}, domain.ValidationError{Field: "documento_passageiro", Msg: "obrigatório"}
	}
	if in.NumeroPoltrona <= 0 {
		return models.Venda{}, domain.ValidationError{Field: "numero_poltrona", Msg: "deve ser positivo"}
	}
	if in.ValorCentavos <= 0 {
		return models.Venda{}, domain.ValidationError{Field: "valor_passagem", Msg: "deve ser positivo"}
	}
	if !in.MetodoPagamento.Valid() {
		return models.Venda{}, domain.ValidationError{Field: "metodo_pagamento", Msg: "método de pagamento desconhecido"}
	}

	if chave := strings.TrimSpace(in.ChaveIdempotencia); chave != "" {
		if existente, ok, err := s.VendaRepo.GetByChave(chave); err != nil {
			return models.Venda{}, err
		} else if ok {
			logger.Event(s.RequestID, "venda", "registrar", fmt.Sprintf("replay chave=%s venda_id=%d", chave, existente.ID))
			return existente, nil
		}
	}

	venda := models.Venda{
		ViagemID:            in.ViagemID,
		CaixaID:             in.CaixaID,
		UsuarioID:           int64(operador.ID),
		ChaveIdempotencia:   strings.TrimSpace(in.ChaveIdempotencia),
		NomePassageiro:      utils.NormalizeSpace(in.NomePassageiro),
		DocumentoPassageiro: strings.TrimSpace(in.DocumentoPassageiro),
		NumeroPoltrona:      in.NumeroPoltrona,
		ValorCentavos:       in.ValorCentavos,
		MetodoPagamento:     in.MetodoPagamento,
	}

	criada, err := s.CaixaRepo.RegistrarVenda(ctx, venda)
	if err != nil {
		return models.Venda{}, err
	}
	logger.Event(s.RequestID, "venda", "registrar",
		fmt.Sprintf("venda_id=%d caixa_id=%d viagem_id=%d valor=%d metodo=%s",
			criada.ID, criada.CaixaID, criada.ViagemID, criada.ValorCentavos, criada.MetodoPagamento))
	return criada, nil
}

// FecharCaixa closes a session. Only the owner may close it; an admin
// may close any caixa. Close is terminal: the repository freezes the
// totals and every later sale is rejected by the open-status check.
func (s LedgerService) FecharCaixa(ctx context.Context, operador domain.Operator, caixaID int64) (models.Caixa, error) {
	caixa, err := s.CaixaRepo.GetByID(caixaID)
	if err != nil {
		return models.Caixa{}, err
	}
	if caixa.UsuarioID != int64(operador.ID) && !operador.IsAdmin() {
		return models.Caixa{}, domain.AuthorizationError{Msg: "apenas o dono do caixa (ou um admin) pode fechá-lo"}
	}

	fechado, err := s.CaixaRepo.Fechar(ctx, caixaID)
	if err != nil {
		return models.Caixa{}, err
	}
	logger.Event(s.RequestID, "caixa", "fechar",
		fmt.Sprintf("caixa_id=%d total_geral=%d", fechado.ID, fechado.TotalGeral))
	return fechado, nil
}

func (s LedgerService) ListCaixas(f repositories.CaixaFilter) ([]models.Caixa, error) {
	return s.CaixaRepo.List(f)
}

func (s LedgerService) ListVendas(f repositories.VendaFilter) ([]models.Venda, error) {
	return s.VendaRepo.List(f)
}
