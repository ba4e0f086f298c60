package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "transportes/internal/config"
	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

type ViagemRepository struct {
	DB *sql.DB
}

func (r ViagemRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ViagemFilter narrows listings; zero values mean "no filter".
type ViagemFilter struct {
	Status models.ViagemStatus
	Inicio time.Time
	Fim    time.Time
}

func (r ViagemRepository) GetByID(id int64) (models.Viagem, error) {
	var v models.Viagem
	err := r.db().QueryRow(`
		SELECT id, rota_id, onibus_id, motorista_id, partida_prevista, chegada_prevista, status
		FROM viagens WHERE id=?`, id).
		Scan(&v.ID, &v.RotaID, &v.OnibusID, &v.MotoristaID, &v.PartidaPrevista, &v.ChegadaPrevista, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "viagem"}
	}
	return v, err
}

// GetDetalheByID joins the catalog rows for a fully-materialized
// snapshot of one trip.
func (r ViagemRepository) GetDetalheByID(id int64) (models.ViagemDetalhe, error) {
	rows, err := r.listDetalhe(`WHERE v.id=?`, id)
	if err != nil {
		return models.ViagemDetalhe{}, err
	}
	if len(rows) == 0 {
		return models.ViagemDetalhe{}, domain.NotFoundError{Resource: "viagem"}
	}
	return rows[0], nil
}

func (r ViagemRepository) List(f ViagemFilter) ([]models.ViagemDetalhe, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "v.status=?")
		args = append(args, string(f.Status))
	}
	if !f.Inicio.IsZero() {
		where = append(where, "v.partida_prevista>=?")
		args = append(args, f.Inicio)
	}
	if !f.Fim.IsZero() {
		where = append(where, "v.partida_prevista<=?")
		args = append(args, f.Fim)
	}
	return r.listDetalhe("WHERE "+strings.Join(where, " AND "), args...)
}

func (r ViagemRepository) listDetalhe(where string, args ...any) ([]models.ViagemDetalhe, error) {
	query := `
		SELECT v.id, v.rota_id, v.onibus_id, v.motorista_id, v.partida_prevista, v.chegada_prevista, v.status,
		       r.origem, r.destino, r.tipo_rota,
		       o.numero_onibus, COALESCE(o.placa,''), o.empresa_parceira, o.capacidade,
		       m.nome_completo, COALESCE(m.cpf,''), COALESCE(m.contato,'')
		FROM viagens v
		JOIN rotas r ON r.id = v.rota_id
		JOIN onibus o ON o.id = v.onibus_id
		JOIN motoristas m ON m.id = v.motorista_id
		` + where + `
		ORDER BY v.partida_prevista DESC, v.id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ViagemDetalhe{}
	for rows.Next() {
		var d models.ViagemDetalhe
		if err := rows.Scan(
			&d.ID, &d.RotaID, &d.OnibusID, &d.MotoristaID, &d.PartidaPrevista, &d.ChegadaPrevista, &d.Status,
			&d.Rota.Origem, &d.Rota.Destino, &d.Rota.TipoRota,
			&d.Onibus.NumeroOnibus, &d.Onibus.Placa, &d.Onibus.EmpresaParceira, &d.Onibus.Capacidade,
			&d.Motorista.NomeCompleto, &d.Motorista.CPF, &d.Motorista.Contato,
		); err != nil {
			return out, err
		}
		d.Rota.ID = d.RotaID
		d.Onibus.ID = d.OnibusID
		d.Motorista.ID = d.MotoristaID
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r ViagemRepository) Create(v models.Viagem) (models.Viagem, error) {
	res, err := r.db().Exec(`
		INSERT INTO viagens (rota_id, onibus_id, motorista_id, partida_prevista, chegada_prevista, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.RotaID, v.OnibusID, v.MotoristaID, v.PartidaPrevista, v.ChegadaPrevista, string(v.Status))
	if err != nil {
		return v, err
	}
	v.ID, _ = res.LastInsertId()
	return v, nil
}

func (r ViagemRepository) Update(v models.Viagem) error {
	res, err := r.db().Exec(`
		UPDATE viagens
		SET rota_id=?, onibus_id=?, motorista_id=?, partida_prevista=?, chegada_prevista=?, status=?
		WHERE id=?`,
		v.RotaID, v.OnibusID, v.MotoristaID, v.PartidaPrevista, v.ChegadaPrevista, string(v.Status), v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "viagem"}
	}
	return nil
}

func (r ViagemRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM viagens WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "viagem"}
	}
	return nil
}
