package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/repositories"
)

func newCatalogoSvc(t *testing.T) (CatalogoService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := CatalogoService{
		Repo:  repositories.CatalogoRepository{DB: db},
		Guard: GuardService{Repo: repositories.DependentesRepository{DB: db}},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateMotoristaNormalizaNome(t *testing.T) {
	svc, mock, done := newCatalogoSvc(t)
	defer done()

	mock.ExpectExec("INSERT INTO motoristas").
		WithArgs("Maria Souza", nil, nil).
		WillReturnResult(sqlmock.NewResult(3, 1))

	criado, err := svc.CreateMotorista(models.Motorista{NomeCompleto: "  Maria   Souza "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criado.NomeCompleto != "Maria Souza" {
		t.Fatalf("name not normalized, got %q", criado.NomeCompleto)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRotaSemOrigemRejeita(t *testing.T) {
	svc, _, done := newCatalogoSvc(t)
	defer done()

	_, err := svc.CreateRota(models.Rota{Origem: "   ", Destino: "Teresina"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
