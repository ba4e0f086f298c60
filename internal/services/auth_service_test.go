package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"transportes/internal/domain"
	"transportes/internal/repositories"
)

func newAuthSvc(t *testing.T) (AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := AuthService{
		UsuarioRepo: repositories.UsuarioRepository{DB: db},
		Guard:       GuardService{Repo: repositories.DependentesRepository{DB: db}},
		JWTSecret:   []byte("segredo-de-teste"),
		TokenTTL:    time.Hour,
	}
	return svc, mock, func() { db.Close() }
}

func usuarioRow(id int64, usuario, senha, nivel string) *sqlmock.Rows {
	hash, _ := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	return sqlmock.NewRows([]string{"id", "nome_completo", "usuario", "senha_hash", "nivel_acesso"}).
		AddRow(id, "Maria Souza", usuario, string(hash), nivel)
}

func TestLoginETokenRoundTrip(t *testing.T) {
	svc, mock, done := newAuthSvc(t)
	defer done()

	mock.ExpectQuery("FROM usuarios WHERE usuario").WithArgs("maria").
		WillReturnRows(usuarioRow(7, "maria", "senha123", domain.RoleBilheteiro))

	token, usuario, err := svc.Login("maria", "senha123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if usuario.ID != 7 {
		t.Fatalf("wrong user id, got %d", usuario.ID)
	}

	op, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token rejected: %v", err)
	}
	if op.ID != 7 || op.Role != domain.RoleBilheteiro {
		t.Fatalf("operator identity lost in round trip: %+v", op)
	}
}

func TestLoginSenhaErradaMesmaMensagem(t *testing.T) {
	svc, mock, done := newAuthSvc(t)
	defer done()

	mock.ExpectQuery("FROM usuarios WHERE usuario").WithArgs("maria").
		WillReturnRows(usuarioRow(7, "maria", "senha123", domain.RoleBilheteiro))
	mock.ExpectQuery("FROM usuarios WHERE usuario").WithArgs("fantasma").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome_completo", "usuario", "senha_hash", "nivel_acesso"}))

	_, _, errSenha := svc.Login("maria", "errada")
	_, _, errUsuario := svc.Login("fantasma", "qualquer")
	if !domain.IsAuthorization(errSenha) || !domain.IsAuthorization(errUsuario) {
		t.Fatalf("both failures must be authorization errors: %v / %v", errSenha, errUsuario)
	}
	// wrong password and unknown user must be indistinguishable
	if errSenha.Error() != errUsuario.Error() {
		t.Fatalf("error messages differ: %q vs %q", errSenha.Error(), errUsuario.Error())
	}
}

func TestParseTokenAssinaturaErrada(t *testing.T) {
	svc, _, done := newAuthSvc(t)
	defer done()

	outra := svc
	outra.JWTSecret = []byte("outro-segredo")

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer mockDB.Close()
	outra.UsuarioRepo = repositories.UsuarioRepository{DB: mockDB}
	mock.ExpectQuery("FROM usuarios WHERE usuario").WithArgs("maria").
		WillReturnRows(usuarioRow(7, "maria", "senha123", domain.RoleAdmin))

	token, _, err := outra.Login("maria", "senha123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.ParseToken(token); !domain.IsAuthorization(err) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}

func TestDeleteUsuarioNaoExcluiASiMesmo(t *testing.T) {
	svc, _, done := newAuthSvc(t)
	defer done()

	op := domain.Operator{ID: 7, Role: domain.RoleAdmin}
	if err := svc.DeleteUsuario(op, 7); !domain.IsAuthorization(err) {
		t.Fatalf("expected authorization error on self delete, got %v", err)
	}
}

func TestCreateUsuarioNivelInvalido(t *testing.T) {
	svc, _, done := newAuthSvc(t)
	defer done()

	_, err := svc.CreateUsuario(UsuarioInput{
		NomeCompleto: "Maria Souza",
		Usuario:      "maria",
		Senha:        "senha123",
		NivelAcesso:  "gerente",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}
