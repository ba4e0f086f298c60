package models

import "time"

// CaixaStatus is the lifecycle state of a cash session.
type CaixaStatus string

const (
	CaixaAberto  CaixaStatus = "Aberto"
	CaixaFechado CaixaStatus = "Fechado"
)

func (s CaixaStatus) Valid() bool {
	switch s {
	case CaixaAberto, CaixaFechado:
		return true
	}
	return false
}

// MetodoPagamento is the payment method of a sale. Values match the
// labels shown on the ticket counter.
type MetodoPagamento string

const (
	PagamentoDinheiro MetodoPagamento = "Dinheiro"
	PagamentoPix      MetodoPagamento = "Pix"
	PagamentoCartao   MetodoPagamento = "Cartão"
)

func (m MetodoPagamento) Valid() bool {
	switch m {
	case PagamentoDinheiro, PagamentoPix, PagamentoCartao:
		return true
	}
	return false
}

// Caixa is a bounded accounting period owned by one bilheteiro. At
// most one Aberto caixa may exist per operator. All monetary values
// are integer centavos; the four running totals are written only by
// the ledger inside the sale transaction and freeze on close.
type Caixa struct {
	ID             int64       `json:"id"`
	UsuarioID      int64       `json:"bilheteiro_id"`
	UsuarioNome    string      `json:"bilheteiro_nome,omitempty"`
	DataAbertura   time.Time   `json:"data_abertura"`
	DataFechamento *time.Time  `json:"data_fechamento"`
	SaldoInicial   int64       `json:"saldo_inicial"`
	TotalDinheiro  int64       `json:"total_vendas_dinheiro"`
	TotalPix       int64       `json:"total_vendas_pix"`
	TotalCartao    int64       `json:"total_vendas_cartao"`
	TotalGeral     int64       `json:"total_geral_vendas"`
	Status         CaixaStatus `json:"status"`
}

func (c Caixa) Aberto() bool { return c.Status == CaixaAberto }

// Venda is a single ticket sale tied to a trip and an open caixa.
// Sales are immutable; corrections happen outside this system.
type Venda struct {
	ID                  int64           `json:"id"`
	ViagemID            int64           `json:"viagem_id"`
	CaixaID             int64           `json:"caixa_id"`
	UsuarioID           int64           `json:"bilheteiro_id"`
	ChaveIdempotencia   string          `json:"chave_idempotencia,omitempty"`
	NomePassageiro      string          `json:"nome_passageiro"`
	DocumentoPassageiro string          `json:"documento_passageiro"`
	NumeroPoltrona      int             `json:"numero_poltrona"`
	ValorCentavos       int64           `json:"valor_centavos"`
	MetodoPagamento     MetodoPagamento `json:"metodo_pagamento"`
	DataVenda           time.Time       `json:"data_hora_venda"`
}
