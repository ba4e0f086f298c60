package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transportes/internal/domain"
)

func TestHasDependentsViagemComVendas(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vendas").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := DependentesRepository{DB: db}
	has, err := repo.HasDependents(domain.KindViagem, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Fatal("trip with sales must report dependents")
	}
}

func TestHasDependentsUsuarioLivre(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	zero := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(0) }
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vendas").WithArgs(int64(4)).WillReturnRows(zero())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM registros_operacionais").WithArgs(int64(4)).WillReturnRows(zero())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM caixas").WithArgs(int64(4)).WillReturnRows(zero())

	repo := DependentesRepository{DB: db}
	has, err := repo.HasDependents(domain.KindUsuario, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Fatal("user without activity must be deletable")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
