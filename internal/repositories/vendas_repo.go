package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "transportes/internal/config"
	"transportes/internal/domain/models"
)

type VendaRepository struct {
	DB *sql.DB
}

func (r VendaRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// VendaFilter narrows sale listings; zero values mean "no filter".
type VendaFilter struct {
	CaixaID  int64
	ViagemID int64
	Inicio   time.Time
	Fim      time.Time
}

const vendaCols = `id, viagem_id, caixa_id, usuario_id, COALESCE(chave_idempotencia,''),
	nome_passageiro, documento_passageiro, numero_poltrona,
	valor_centavos, metodo_pagamento, data_venda`

// GetByChave returns the sale previously recorded under a client
// idempotency key, if any. Retries of the same sale resolve here
// instead of double-counting.
func (r VendaRepository) GetByChave(chave string) (models.Venda, bool, error) {
	row := r.db().QueryRow(`SELECT `+vendaCols+` FROM vendas WHERE chave_idempotencia=?`, chave)
	v, err := scanVenda(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Venda{}, false, nil
	}
	if err != nil {
		return models.Venda{}, false, err
	}
	return v, true, nil
}

func (r VendaRepository) List(f VendaFilter) ([]models.Venda, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.CaixaID > 0 {
		where = append(where, "caixa_id=?")
		args = append(args, f.CaixaID)
	}
	if f.ViagemID > 0 {
		where = append(where, "viagem_id=?")
		args = append(args, f.ViagemID)
	}
	if !f.Inicio.IsZero() {
		where = append(where, "data_venda>=?")
		args = append(args, f.Inicio)
	}
	if !f.Fim.IsZero() {
		where = append(where, "data_venda<=?")
		args = append(args, f.Fim)
	}

	rows, err := r.db().Query(`
		SELECT `+vendaCols+` FROM vendas
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY data_venda DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Venda{}
	for rows.Next() {
		v, err := scanVenda(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVenda(scan func(dest ...any) error) (models.Venda, error) {
	var v models.Venda
	err := scan(
		&v.ID, &v.ViagemID, &v.CaixaID, &v.UsuarioID, &v.ChaveIdempotencia,
		&v.NomePassageiro, &v.DocumentoPassageiro, &v.NumeroPoltrona,
		&v.ValorCentavos, &v.MetodoPagamento, &v.DataVenda,
	)
	return v, err
}
