package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/repositories"
)

func newLedger(t *testing.T) (LedgerService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := LedgerService{
		CaixaRepo: repositories.CaixaRepository{DB: db},
		VendaRepo: repositories.VendaRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestAbrirCaixaSaldoNegativo(t *testing.T) {
	svc, _, done := newLedger(t)
	defer done()

	_, err := svc.AbrirCaixa(domain.Operator{ID: 7, Role: domain.RoleBilheteiro}, -100)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegistrarVendaValidaEntrada(t *testing.T) {
	svc, _, done := newLedger(t)
	defer done()
	op := domain.Operator{ID: 7, Role: domain.RoleBilheteiro}

	casos := map[string]VendaInput{
		"sem caixa":       {ViagemID: 1, NomePassageiro: "A", DocumentoPassageiro: "1", NumeroPoltrona: 1, ValorCentavos: 100, MetodoPagamento: models.PagamentoPix},
		"sem viagem":      {CaixaID: 1, NomePassageiro: "A", DocumentoPassageiro: "1", NumeroPoltrona: 1, ValorCentavos: 100, MetodoPagamento: models.PagamentoPix},
		"sem nome":        {CaixaID: 1, ViagemID: 1, DocumentoPassageiro: "1", NumeroPoltrona: 1, ValorCentavos: 100, MetodoPagamento: models.PagamentoPix},
		"sem documento":   {CaixaID: 1, ViagemID: 1, NomePassageiro: "A", NumeroPoltrona: 1, ValorCentavos: 100, MetodoPagamento: models.PagamentoPix},
		"poltrona zero":   {CaixaID: 1, ViagemID: 1, NomePassageiro: "A", DocumentoPassageiro: "1", ValorCentavos: 100, MetodoPagamento: models.PagamentoPix},
		"valor zero":      {CaixaID: 1, ViagemID: 1, NomePassageiro: "A", DocumentoPassageiro: "1", NumeroPoltrona: 1, MetodoPagamento: models.PagamentoPix},
		"metodo estranho": {CaixaID: 1, ViagemID: 1, NomePassageiro: "A", DocumentoPassageiro: "1", NumeroPoltrona: 1, ValorCentavos: 100, MetodoPagamento: "Cheque"},
	}
	for nome, in := range casos {
		if _, err := svc.RegistrarVenda(context.Background(), op, in); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", nome, err)
		}
	}
}

func TestRegistrarVendaReplayPorChaveIdempotencia(t *testing.T) {
	svc, mock, done := newLedger(t)
	defer done()

	registrada := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)
	mock.ExpectQuery("FROM vendas WHERE chave_idempotencia").
		WithArgs("pos-77").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "viagem_id", "caixa_id", "usuario_id", "chave_idempotencia",
			"nome_passageiro", "documento_passageiro", "numero_poltrona",
			"valor_centavos", "metodo_pagamento", "data_venda",
		}).AddRow(42, 9, 3, 7, "pos-77", "Maria Souza", "123", 12, 12550, "Pix", registrada))

	venda, err := svc.RegistrarVenda(context.Background(), domain.Operator{ID: 7, Role: domain.RoleBilheteiro}, VendaInput{
		CaixaID:             3,
		ViagemID:            9,
		NomePassageiro:      "Maria Souza",
		DocumentoPassageiro: "123",
		NumeroPoltrona:      12,
		ValorCentavos:       12550,
		MetodoPagamento:     models.PagamentoPix,
		ChaveIdempotencia:   "pos-77",
	})
	if err != nil {
		t.Fatalf("replay must not fail: %v", err)
	}
	if venda.ID != 42 {
		t.Fatalf("replay must return the original sale, got id %d", venda.ID)
	}
	// no INSERT, no UPDATE of totals
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFecharCaixaSomenteDonoOuAdmin(t *testing.T) {
	svc, mock, done := newLedger(t)
	defer done()

	abertura := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	caixaDoUsuario7 := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "usuario_id", "nome_completo", "data_abertura", "data_fechamento",
			"saldo_inicial", "total_dinheiro", "total_pix", "total_cartao", "total_geral", "status",
		}).AddRow(3, 7, "Maria Souza", abertura, nil, 5000, 0, 0, 0, 0, "Aberto")
	}

	mock.ExpectQuery("FROM caixas c LEFT JOIN usuarios").WithArgs(int64(3)).
		WillReturnRows(caixaDoUsuario7())

	outro := domain.Operator{ID: 8, Nome: "João", Role: domain.RoleBilheteiro}
	if _, err := svc.FecharCaixa(context.Background(), outro, 3); !domain.IsAuthorization(err) {
		t.Fatalf("expected authorization error for non-owner, got %v", err)
	}

	// an admin may close anyone's caixa
	mock.ExpectQuery("FROM caixas c LEFT JOIN usuarios").WithArgs(int64(3)).
		WillReturnRows(caixaDoUsuario7())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectExec("UPDATE caixas SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM caixas c LEFT JOIN usuarios").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "usuario_id", "nome_completo", "data_abertura", "data_fechamento",
			"saldo_inicial", "total_dinheiro", "total_pix", "total_cartao", "total_geral", "status",
		}).AddRow(3, 7, "Maria Souza", abertura, abertura.Add(10*time.Hour), 5000, 0, 0, 0, 0, "Fechado"))

	admin := domain.Operator{ID: 1, Nome: "Chefe", Role: domain.RoleAdmin}
	fechado, err := svc.FecharCaixa(context.Background(), admin, 3)
	if err != nil {
		t.Fatalf("admin close failed: %v", err)
	}
	if fechado.Status != models.CaixaFechado {
		t.Fatalf("expected Fechado, got %s", fechado.Status)
	}
}
