package repositories

import (
	"database/sql"
	"errors"

	intconfig "transportes/internal/config"
	intdb "transportes/internal/db"
	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

type UsuarioRepository struct {
	DB *sql.DB
}

func (r UsuarioRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const usuarioCols = `id, nome_completo, usuario, senha_hash, nivel_acesso`

func scanUsuario(row *sql.Row) (models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(&u.ID, &u.NomeCompleto, &u.Usuario, &u.SenhaHash, &u.NivelAcesso)
	return u, err
}

func (r UsuarioRepository) GetByID(id int64) (models.Usuario, error) {
	row := r.db().QueryRow(`SELECT `+usuarioCols+` FROM usuarios WHERE id=?`, id)
	u, err := scanUsuario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "usuário"}
	}
	return u, err
}

func (r UsuarioRepository) GetByLogin(login string) (models.Usuario, error) {
	row := r.db().QueryRow(`SELECT `+usuarioCols+` FROM usuarios WHERE usuario=?`, login)
	u, err := scanUsuario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "usuário"}
	}
	return u, err
}

func (r UsuarioRepository) List() ([]models.Usuario, error) {
	rows, err := r.db().Query(`SELECT ` + usuarioCols + ` FROM usuarios ORDER BY nome_completo ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Usuario{}
	for rows.Next() {
		var u models.Usuario
		if err := rows.Scan(&u.ID, &u.NomeCompleto, &u.Usuario, &u.SenhaHash, &u.NivelAcesso); err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UsuarioRepository) Create(u models.Usuario) (models.Usuario, error) {
	res, err := r.db().Exec(`
		INSERT INTO usuarios (nome_completo, usuario, senha_hash, nivel_acesso)
		VALUES (?, ?, ?, ?)`,
		u.NomeCompleto, u.Usuario, u.SenhaHash, u.NivelAcesso)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return u, domain.ConflictError{Resource: "usuário", Msg: "esse nome de usuário já existe"}
		}
		return u, err
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r UsuarioRepository) Update(id int64, upd models.UsuarioUpdate) (models.Usuario, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return existing, err
	}
	if upd.NomeCompleto != nil {
		existing.NomeCompleto = *upd.NomeCompleto
	}
	if upd.Usuario != nil {
		existing.Usuario = *upd.Usuario
	}
	if upd.NivelAcesso != nil {
		existing.NivelAcesso = *upd.NivelAcesso
	}

	_, err = r.db().Exec(`
		UPDATE usuarios SET nome_completo=?, usuario=?, nivel_acesso=? WHERE id=?`,
		existing.NomeCompleto, existing.Usuario, existing.NivelAcesso, id)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return existing, domain.ConflictError{Resource: "usuário", Msg: "esse nome de usuário já existe"}
		}
		return existing, err
	}
	return existing, nil
}

func (r UsuarioRepository) UpdateSenha(id int64, senhaHash string) error {
	res, err := r.db().Exec(`UPDATE usuarios SET senha_hash=? WHERE id=?`, senhaHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "usuário"}
	}
	return nil
}

func (r UsuarioRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM usuarios WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "usuário"}
	}
	return nil
}
