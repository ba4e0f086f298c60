package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/repositories"
)

func newRegistroSvc(t *testing.T) (RegistroService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RegistroService{
		RegistroRepo: repositories.RegistroRepository{DB: db},
		ViagemSvc:    ViagemService{ViagemRepo: repositories.ViagemRepository{DB: db}},
	}
	return svc, mock, func() { db.Close() }
}

func expectViagem(mock sqlmock.Sqlmock, id int64, status string) {
	mock.ExpectQuery("FROM viagens WHERE id").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "rota_id", "onibus_id", "motorista_id", "partida_prevista", "chegada_prevista", "status",
		}).AddRow(id, 1, 1, 1, amostraPartida, amostraChegada, status))
}

func TestRecordEventContagemNegativa(t *testing.T) {
	svc, _, done := newRegistroSvc(t)
	defer done()

	_, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:     9,
		PassFinal:    -1,
		PassChegaram: 10,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative count, got %v", err)
	}
}

func TestRecordEventNaoPodeCancelarViagem(t *testing.T) {
	svc, mock, done := newRegistroSvc(t)
	defer done()

	expectViagem(mock, 9, "Agendada")

	cancelada := models.ViagemCancelada
	_, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:   9,
		NovoStatus: &cancelada,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, register entries may not cancel trips, got %v", err)
	}
}

func TestRecordEventAvancaStatusEGravaRegistroNaMesmaTransacao(t *testing.T) {
	svc, mock, done := newRegistroSvc(t)
	defer done()

	expectViagem(mock, 9, "Agendada")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE viagens SET status").
		WithArgs("Em Trânsito", int64(9), "Agendada").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO registros_operacionais").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	emTransito := models.ViagemEmTransito
	saida := amostraPartida
	registro, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:       9,
		SaidaReal:      &saida,
		PassEmbarcaram: 30,
		PassFinal:      30,
		Observacoes:    "embarque ok",
		NovoStatus:     &emTransito,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registro.ID != 5 {
		t.Fatalf("expected persisted register id 5, got %d", registro.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordEventInsertFalhoDesfazTransicao(t *testing.T) {
	svc, mock, done := newRegistroSvc(t)
	defer done()

	expectViagem(mock, 9, "Agendada")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE viagens SET status").
		WithArgs("Em Trânsito", int64(9), "Agendada").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO registros_operacionais").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	emTransito := models.ViagemEmTransito
	_, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:   9,
		NovoStatus: &emTransito,
	})
	if err == nil {
		t.Fatal("insert failure must surface")
	}
	// the rollback expectation proves the status change does not outlive
	// the failed entry
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordEventTransicaoInvalidaNaoGravaRegistro(t *testing.T) {
	svc, mock, done := newRegistroSvc(t)
	defer done()

	expectViagem(mock, 9, "Concluída")

	emTransito := models.ViagemEmTransito
	_, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:   9,
		NovoStatus: &emTransito,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for completed trip, got %v", err)
	}
	// the invalid transition must leave no entry behind
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordEventPerdeCorridaDeTransicao(t *testing.T) {
	svc, mock, done := newRegistroSvc(t)
	defer done()

	// read sees Agendada, but another writer moves the trip before the
	// transaction lands its compare-and-set
	expectViagem(mock, 9, "Agendada")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE viagens SET status").
		WithArgs("Em Trânsito", int64(9), "Agendada").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	emTransito := models.ViagemEmTransito
	_, err := svc.RecordEvent(context.Background(), domain.Operator{ID: 7}, RegistroInput{
		ViagemID:   9,
		NovoStatus: &emTransito,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict when compare-and-set misses, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
