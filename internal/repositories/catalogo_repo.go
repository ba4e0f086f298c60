package repositories

import (
	"database/sql"
	"errors"

	intconfig "transportes/internal/config"
	intdb "transportes/internal/db"
	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

// CatalogoRepository persists the three catalog entities referenced by
// trips. They share the same access shape, so one repository covers
// all of them.
type CatalogoRepository struct {
	DB *sql.DB
}

func (r CatalogoRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// --- Motoristas ---

func (r CatalogoRepository) GetMotorista(id int64) (models.Motorista, error) {
	var m models.Motorista
	var cpf, contato sql.NullString
	err := r.db().QueryRow(`SELECT id, nome_completo, cpf, contato FROM motoristas WHERE id=?`, id).
		Scan(&m.ID, &m.NomeCompleto, &cpf, &contato)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.NotFoundError{Resource: "motorista"}
	}
	m.CPF = cpf.String
	m.Contato = contato.String
	return m, err
}

func (r CatalogoRepository) ListMotoristas() ([]models.Motorista, error) {
	rows, err := r.db().Query(`SELECT id, nome_completo, cpf, contato FROM motoristas ORDER BY nome_completo ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Motorista{}
	for rows.Next() {
		var m models.Motorista
		var cpf, contato sql.NullString
		if err := rows.Scan(&m.ID, &m.NomeCompleto, &cpf, &contato); err != nil {
			return out, err
		}
		m.CPF = cpf.String
		m.Contato = contato.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r CatalogoRepository) CreateMotorista(m models.Motorista) (models.Motorista, error) {
	res, err := r.db().Exec(`INSERT INTO motoristas (nome_completo, cpf, contato) VALUES (?, ?, ?)`,
		m.NomeCompleto, intdb.NullIfEmpty(m.CPF), intdb.NullIfEmpty(m.Contato))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return m, domain.ConflictError{Resource: "motorista", Msg: "CPF já cadastrado"}
		}
		return m, err
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

func (r CatalogoRepository) UpdateMotorista(m models.Motorista) error {
	res, err := r.db().Exec(`UPDATE motoristas SET nome_completo=?, cpf=?, contato=? WHERE id=?`,
		m.NomeCompleto, intdb.NullIfEmpty(m.CPF), intdb.NullIfEmpty(m.Contato), m.ID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "motorista", Msg: "CPF já cadastrado"}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "motorista"}
	}
	return nil
}

func (r CatalogoRepository) DeleteMotorista(id int64) error {
	res, err := r.db().Exec(`DELETE FROM motoristas WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "motorista"}
	}
	return nil
}

// --- Ônibus ---

func (r CatalogoRepository) GetOnibus(id int64) (models.Onibus, error) {
	var o models.Onibus
	var placa sql.NullString
	err := r.db().QueryRow(`SELECT id, numero_onibus, placa, empresa_parceira, capacidade FROM onibus WHERE id=?`, id).
		Scan(&o.ID, &o.NumeroOnibus, &placa, &o.EmpresaParceira, &o.Capacidade)
	if errors.Is(err, sql.ErrNoRows) {
		return o, domain.NotFoundError{Resource: "ônibus"}
	}
	o.Placa = placa.String
	return o, err
}

func (r CatalogoRepository) ListOnibus() ([]models.Onibus, error) {
	rows, err := r.db().Query(`SELECT id, numero_onibus, placa, empresa_parceira, capacidade FROM onibus ORDER BY numero_onibus ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Onibus{}
	for rows.Next() {
		var o models.Onibus
		var placa sql.NullString
		if err := rows.Scan(&o.ID, &o.NumeroOnibus, &placa, &o.EmpresaParceira, &o.Capacidade); err != nil {
			return out, err
		}
		o.Placa = placa.String
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r CatalogoRepository) CreateOnibus(o models.Onibus) (models.Onibus, error) {
	res, err := r.db().Exec(`INSERT INTO onibus (numero_onibus, placa, empresa_parceira, capacidade) VALUES (?, ?, ?, ?)`,
		o.NumeroOnibus, intdb.NullIfEmpty(o.Placa), o.EmpresaParceira, o.Capacidade)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return o, domain.ConflictError{Resource: "ônibus", Msg: "número do ônibus ou placa já cadastrado"}
		}
		return o, err
	}
	o.ID, _ = res.LastInsertId()
	return o, nil
}

func (r CatalogoRepository) UpdateOnibus(o models.Onibus) error {
	res, err := r.db().Exec(`UPDATE onibus SET numero_onibus=?, placa=?, empresa_parceira=?, capacidade=? WHERE id=?`,
		o.NumeroOnibus, intdb.NullIfEmpty(o.Placa), o.EmpresaParceira, o.Capacidade, o.ID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "ônibus", Msg: "número do ônibus ou placa já cadastrado"}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ônibus"}
	}
	return nil
}

func (r CatalogoRepository) DeleteOnibus(id int64) error {
	res, err := r.db().Exec(`DELETE FROM onibus WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ônibus"}
	}
	return nil
}

// --- Rotas ---

func (r CatalogoRepository) GetRota(id int64) (models.Rota, error) {
	var rt models.Rota
	err := r.db().QueryRow(`SELECT id, origem, destino, tipo_rota FROM rotas WHERE id=?`, id).
		Scan(&rt.ID, &rt.Origem, &rt.Destino, &rt.TipoRota)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, domain.NotFoundError{Resource: "rota"}
	}
	return rt, err
}

func (r CatalogoRepository) ListRotas() ([]models.Rota, error) {
	rows, err := r.db().Query(`SELECT id, origem, destino, tipo_rota FROM rotas ORDER BY origem ASC, destino ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Rota{}
	for rows.Next() {
		var rt models.Rota
		if err := rows.Scan(&rt.ID, &rt.Origem, &rt.Destino, &rt.TipoRota); err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r CatalogoRepository) CreateRota(rt models.Rota) (models.Rota, error) {
	res, err := r.db().Exec(`INSERT INTO rotas (origem, destino, tipo_rota) VALUES (?, ?, ?)`,
		rt.Origem, rt.Destino, rt.TipoRota)
	if err != nil {
		return rt, err
	}
	rt.ID, _ = res.LastInsertId()
	return rt, nil
}

func (r CatalogoRepository) UpdateRota(rt models.Rota) error {
	res, err := r.db().Exec(`UPDATE rotas SET origem=?, destino=?, tipo_rota=? WHERE id=?`,
		rt.Origem, rt.Destino, rt.TipoRota, rt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "rota"}
	}
	return nil
}

func (r CatalogoRepository) DeleteRota(id int64) error {
	res, err := r.db().Exec(`DELETE FROM rotas WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "rota"}
	}
	return nil
}
