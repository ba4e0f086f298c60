package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

func caixaRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "usuario_id", "nome_completo", "data_abertura", "data_fechamento",
		"saldo_inicial", "total_dinheiro", "total_pix", "total_cartao", "total_geral", "status",
	})
}

func TestCaixaAbrirDuplicadoViraConflito(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO caixas").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := CaixaRepository{DB: db}
	if _, err := repo.Abrir(7, 5000); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for second open caixa, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCaixaGetAtivaSemCaixaAberto(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM caixas c LEFT JOIN usuarios").WithArgs(int64(7), "Aberto").
		WillReturnRows(caixaRows())

	repo := CaixaRepository{DB: db}
	_, found, err := repo.GetAtivaByUsuario(7)
	if err != nil {
		t.Fatalf("no open caixa must not be an error, got %v", err)
	}
	if found {
		t.Fatal("found should be false when no caixa is open")
	}
}

func TestRegistrarVendaAtualizaTotaisNaMesmaTransacao(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectQuery("SELECT status FROM viagens").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Agendada"))
	mock.ExpectExec("INSERT INTO vendas").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE caixas SET total_pix").
		WithArgs(int64(12550), int64(12550), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := CaixaRepository{DB: db}
	venda, err := repo.RegistrarVenda(context.Background(), models.Venda{
		ViagemID:            9,
		CaixaID:             3,
		UsuarioID:           7,
		NomePassageiro:      "Maria Souza",
		DocumentoPassageiro: "123.456.789-00",
		NumeroPoltrona:      12,
		ValorCentavos:       12550,
		MetodoPagamento:     models.PagamentoPix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venda.ID != 42 {
		t.Fatalf("sale id not taken from insert, got %d", venda.ID)
	}
	if venda.DataVenda.IsZero() {
		t.Fatal("data_venda should be stamped by the repository")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegistrarVendaCaixaFechadoRejeita(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Fechado"))
	mock.ExpectRollback()

	repo := CaixaRepository{DB: db}
	_, err = repo.RegistrarVenda(context.Background(), models.Venda{
		ViagemID: 9, CaixaID: 3, UsuarioID: 7,
		NomePassageiro: "Maria", DocumentoPassageiro: "1", NumeroPoltrona: 1,
		ValorCentavos: 100, MetodoPagamento: models.PagamentoDinheiro,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on closed caixa, got %v", err)
	}
}

func TestRegistrarVendaViagemNaoVendavelRejeita(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectQuery("SELECT status FROM viagens").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Cancelada"))
	mock.ExpectRollback()

	repo := CaixaRepository{DB: db}
	_, err = repo.RegistrarVenda(context.Background(), models.Venda{
		ViagemID: 9, CaixaID: 3, UsuarioID: 7,
		NomePassageiro: "Maria", DocumentoPassageiro: "1", NumeroPoltrona: 1,
		ValorCentavos: 100, MetodoPagamento: models.PagamentoDinheiro,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on cancelled trip, got %v", err)
	}
}

func TestRegistrarVendaPoltronaDuplicadaViraConflito(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectQuery("SELECT status FROM viagens").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Em Trânsito"))
	mock.ExpectExec("INSERT INTO vendas").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '9-12'"})
	mock.ExpectRollback()

	repo := CaixaRepository{DB: db}
	_, err = repo.RegistrarVenda(context.Background(), models.Venda{
		ViagemID: 9, CaixaID: 3, UsuarioID: 7,
		NomePassageiro: "Maria", DocumentoPassageiro: "1", NumeroPoltrona: 12,
		ValorCentavos: 100, MetodoPagamento: models.PagamentoDinheiro,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate seat, got %v", err)
	}
}

func TestRegistrarVendaChaveDuplicadaDevolveVendaOriginal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	registrada := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectQuery("SELECT status FROM viagens").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Agendada"))
	mock.ExpectExec("INSERT INTO vendas").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'pos-77' for key 'uq_vendas_idempotencia'"})
	mock.ExpectRollback()
	mock.ExpectQuery("FROM vendas WHERE chave_idempotencia").WithArgs("pos-77").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "viagem_id", "caixa_id", "usuario_id", "chave_idempotencia",
			"nome_passageiro", "documento_passageiro", "numero_poltrona",
			"valor_centavos", "metodo_pagamento", "data_venda",
		}).AddRow(42, 9, 3, 7, "pos-77", "Maria Souza", "123", 12, 12550, "Pix", registrada))

	repo := CaixaRepository{DB: db}
	venda, err := repo.RegistrarVenda(context.Background(), models.Venda{
		ViagemID: 9, CaixaID: 3, UsuarioID: 7, ChaveIdempotencia: "pos-77",
		NomePassageiro: "Maria Souza", DocumentoPassageiro: "123", NumeroPoltrona: 12,
		ValorCentavos: 12550, MetodoPagamento: models.PagamentoPix,
	})
	if err != nil {
		t.Fatalf("lost idempotency race must replay, not fail: %v", err)
	}
	if venda.ID != 42 {
		t.Fatalf("expected the original sale back, got id %d", venda.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFecharCaixaJaFechadoRejeita(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Fechado"))
	mock.ExpectRollback()

	repo := CaixaRepository{DB: db}
	if _, err := repo.Fechar(context.Background(), 3); !domain.IsConflict(err) {
		t.Fatalf("expected conflict closing a closed caixa, got %v", err)
	}
}

func TestFecharCaixaGravaFechamento(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	abertura := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	fechamento := time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM caixas").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Aberto"))
	mock.ExpectExec("UPDATE caixas SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM caixas c LEFT JOIN usuarios").WithArgs(int64(3)).
		WillReturnRows(caixaRows().
			AddRow(3, 7, "Maria Souza", abertura, fechamento, 5000, 10000, 12550, 0, 22550, "Fechado"))

	repo := CaixaRepository{DB: db}
	caixa, err := repo.Fechar(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caixa.Status != models.CaixaFechado {
		t.Fatalf("expected Fechado, got %s", caixa.Status)
	}
	if caixa.DataFechamento == nil {
		t.Fatal("data_fechamento should be set after close")
	}
	if caixa.TotalGeral != 22550 {
		t.Fatalf("total_geral wrong, got %d", caixa.TotalGeral)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
