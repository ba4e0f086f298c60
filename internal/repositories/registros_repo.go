package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "transportes/internal/config"
	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

type RegistroRepository struct {
	DB *sql.DB
}

func (r RegistroRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const registroSelect = `
	SELECT r.id, r.viagem_id, r.usuario_id, COALESCE(u.nome_completo,''),
	       r.chegada_real, r.saida_real,
	       r.pass_chegaram, r.pass_embarcaram, r.pass_desembarcaram, r.pass_final,
	       COALESCE(r.observacoes,''), r.criado_em
	FROM registros_operacionais r
	LEFT JOIN usuarios u ON u.id = r.usuario_id`

func (r RegistroRepository) GetByID(id int64) (models.RegistroOperacional, error) {
	rows, err := r.list(registroSelect+` WHERE r.id=?`, id)
	if err != nil {
		return models.RegistroOperacional{}, err
	}
	if len(rows) == 0 {
		return models.RegistroOperacional{}, domain.NotFoundError{Resource: "registro operacional"}
	}
	return rows[0], nil
}

func (r RegistroRepository) ListByViagem(viagemID int64) ([]models.RegistroOperacional, error) {
	return r.list(registroSelect+` WHERE r.viagem_id=? ORDER BY r.criado_em DESC, r.id DESC`, viagemID)
}

func (r RegistroRepository) ListAll() ([]models.RegistroOperacional, error) {
	return r.list(registroSelect + ` ORDER BY r.criado_em DESC, r.id DESC`)
}

func (r RegistroRepository) list(query string, args ...any) ([]models.RegistroOperacional, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RegistroOperacional{}
	for rows.Next() {
		var reg models.RegistroOperacional
		var chegada, saida sql.NullTime
		if err := rows.Scan(
			&reg.ID, &reg.ViagemID, &reg.UsuarioID, &reg.UsuarioNome,
			&chegada, &saida,
			&reg.PassChegaram, &reg.PassEmbarcaram, &reg.PassDesembarcaram, &reg.PassFinal,
			&reg.Observacoes, &reg.CriadoEm,
		); err != nil {
			return out, err
		}
		if chegada.Valid {
			t := chegada.Time
			reg.ChegadaReal = &t
		}
		if saida.Valid {
			t := saida.Time
			reg.SaidaReal = &t
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

const registroInsert = `
	INSERT INTO registros_operacionais
		(viagem_id, usuario_id, chegada_real, saida_real,
		 pass_chegaram, pass_embarcaram, pass_desembarcaram, pass_final,
		 observacoes, criado_em)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func registroArgs(reg models.RegistroOperacional) []any {
	return []any{
		reg.ViagemID, reg.UsuarioID, nullTime(reg.ChegadaReal), nullTime(reg.SaidaReal),
		reg.PassChegaram, reg.PassEmbarcaram, reg.PassDesembarcaram, reg.PassFinal,
		reg.Observacoes, reg.CriadoEm,
	}
}

func (r RegistroRepository) Create(reg models.RegistroOperacional) (models.RegistroOperacional, error) {
	res, err := r.db().Exec(registroInsert, registroArgs(reg)...)
	if err != nil {
		return reg, err
	}
	reg.ID, _ = res.LastInsertId()
	return reg, nil
}

// CreateAvancandoViagem persists the entry and advances the trip in a
// single transaction. The compare-and-set on the trip row keeps two
// racing transitions from both winning, and a failed insert rolls the
// status change back, so a trip is never advanced without the entry
// that justified it.
func (r RegistroRepository) CreateAvancandoViagem(ctx context.Context, reg models.RegistroOperacional, de, para models.ViagemStatus) (models.RegistroOperacional, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return reg, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE viagens SET status=? WHERE id=? AND status=?`,
		string(para), reg.ViagemID, string(de))
	if err != nil {
		return reg, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return reg, domain.ConflictError{Resource: "viagem", Msg: "transição de status inválida"}
	}

	res, err = tx.ExecContext(ctx, registroInsert, registroArgs(reg)...)
	if err != nil {
		return reg, err
	}
	reg.ID, _ = res.LastInsertId()

	if err := tx.Commit(); err != nil {
		return reg, err
	}
	return reg, nil
}

func (r RegistroRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM registros_operacionais WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "registro operacional"}
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
