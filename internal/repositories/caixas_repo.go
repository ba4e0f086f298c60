package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "transportes/internal/config"
	intdb "transportes/internal/db"
	"transportes/internal/domain"
	"transportes/internal/domain/models"
)

// CaixaRepository owns cash sessions and their four running totals.
// The totals are written exclusively inside RegistrarVenda's
// transaction; nothing else in the codebase touches those columns
// after the caixa is opened.
type CaixaRepository struct {
	DB *sql.DB
}

func (r CaixaRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CaixaFilter narrows session listings; zero values mean "no filter".
type CaixaFilter struct {
	Status    models.CaixaStatus
	UsuarioID int64
	Inicio    time.Time
	Fim       time.Time
}

const caixaCols = `c.id, c.usuario_id, COALESCE(u.nome_completo,''), c.data_abertura, c.data_fechamento,
	c.saldo_inicial, c.total_dinheiro, c.total_pix, c.total_cartao, c.total_geral, c.status`

// Abrir creates an Aberto caixa. The unique key on operador_aberto is
// the single source of truth for "at most one open caixa per
// bilheteiro": when two opens race, the second insert fails with a
// duplicate key and surfaces as a conflict.
func (r CaixaRepository) Abrir(usuarioID, saldoInicial int64) (models.Caixa, error) {
	abertura := time.Now()
	res, err := r.db().Exec(`
		INSERT INTO caixas (usuario_id, operador_aberto, data_abertura, saldo_inicial, status)
		VALUES (?, ?, ?, ?, ?)`,
		usuarioID, usuarioID, abertura, saldoInicial, string(models.CaixaAberto))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.Caixa{}, domain.ConflictError{Resource: "caixa", Msg: "já existe um caixa aberto para este usuário"}
		}
		return models.Caixa{}, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r CaixaRepository) GetByID(id int64) (models.Caixa, error) {
	row := r.db().QueryRow(`
		SELECT `+caixaCols+`
		FROM caixas c LEFT JOIN usuarios u ON u.id = c.usuario_id
		WHERE c.id=?`, id)
	c, err := scanCaixa(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return c, domain.NotFoundError{Resource: "caixa"}
	}
	return c, err
}

// GetAtivaByUsuario returns the operator's open caixa. A missing open
// caixa is not an error: found=false is the well-defined "none" result.
func (r CaixaRepository) GetAtivaByUsuario(usuarioID int64) (models.Caixa, bool, error) {
	row := r.db().QueryRow(`
		SELECT `+caixaCols+`
		FROM caixas c LEFT JOIN usuarios u ON u.id = c.usuario_id
		WHERE c.usuario_id=? AND c.status=?`, usuarioID, string(models.CaixaAberto))
	c, err := scanCaixa(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Caixa{}, false, nil
	}
	if err != nil {
		return models.Caixa{}, false, err
	}
	return c, true, nil
}

func (r CaixaRepository) List(f CaixaFilter) ([]models.Caixa, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "c.status=?")
		args = append(args, string(f.Status))
	}
	if f.UsuarioID > 0 {
		where = append(where, "c.usuario_id=?")
		args = append(args, f.UsuarioID)
	}
	if !f.Inicio.IsZero() {
		where = append(where, "c.data_abertura>=?")
		args = append(args, f.Inicio)
	}
	if !f.Fim.IsZero() {
		where = append(where, "c.data_abertura<=?")
		args = append(args, f.Fim)
	}

	rows, err := r.db().Query(`
		SELECT `+caixaCols+`
		FROM caixas c LEFT JOIN usuarios u ON u.id = c.usuario_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY c.data_abertura DESC, c.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Caixa{}
	for rows.Next() {
		c, err := scanCaixa(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Fechar closes the caixa and freezes its totals. The row lock makes
// close serialize with in-flight sales, so a sale either lands before
// the close or is rejected afterwards, never halfway.
func (r CaixaRepository) Fechar(ctx context.Context, caixaID int64) (models.Caixa, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return models.Caixa{}, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM caixas WHERE id=? FOR UPDATE`, caixaID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Caixa{}, domain.NotFoundError{Resource: "caixa"}
	}
	if err != nil {
		return models.Caixa{}, err
	}
	if status != string(models.CaixaAberto) {
		return models.Caixa{}, domain.ConflictError{Resource: "caixa", Msg: "caixa não está aberto"}
	}

	fechamento := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE caixas SET status=?, data_fechamento=?, operador_aberto=NULL WHERE id=?`,
		string(models.CaixaFechado), fechamento, caixaID); err != nil {
		return models.Caixa{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Caixa{}, err
	}
	return r.GetByID(caixaID)
}

// RegistrarVenda inserts the sale and increments the caixa totals as a
// single transaction. The caixa row is locked FOR UPDATE first, so
// concurrent sales against the same caixa serialize and the totals
// always equal the sum of the recorded sales. Trip state is re-read
// inside the transaction so a cancelled trip cannot slip a sale in.
func (r CaixaRepository) RegistrarVenda(ctx context.Context, v models.Venda) (models.Venda, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return v, err
	}
	defer tx.Rollback()

	var caixaStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM caixas WHERE id=? FOR UPDATE`, v.CaixaID).Scan(&caixaStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "caixa"}
	}
	if err != nil {
		return v, err
	}
	if caixaStatus != string(models.CaixaAberto) {
		return v, domain.ConflictError{Resource: "caixa", Msg: "caixa fechado, abra o caixa para realizar vendas"}
	}

	var viagemStatus models.ViagemStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM viagens WHERE id=?`, v.ViagemID).Scan(&viagemStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "viagem"}
	}
	if err != nil {
		return v, err
	}
	if !viagemStatus.Vendavel() {
		return v, domain.ConflictError{Resource: "viagem", Msg: "viagem não está aberta para vendas"}
	}

	v.DataVenda = time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vendas
			(viagem_id, caixa_id, usuario_id, chave_idempotencia,
			 nome_passageiro, documento_passageiro, numero_poltrona,
			 valor_centavos, metodo_pagamento, data_venda)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ViagemID, v.CaixaID, v.UsuarioID, intdb.NullIfEmpty(v.ChaveIdempotencia),
		v.NomePassageiro, v.DocumentoPassageiro, v.NumeroPoltrona,
		v.ValorCentavos, string(v.MetodoPagamento), v.DataVenda)
	if err != nil {
		// Two retries carrying the same idempotency key can both pass
		// the service pre-check; the loser of that race lands here and
		// must get the original sale back, not a seat conflict.
		if v.ChaveIdempotencia != "" && intdb.IsDuplicateKeyOn(err, "uq_vendas_idempotencia") {
			_ = tx.Rollback()
			row := r.db().QueryRow(`SELECT `+vendaCols+` FROM vendas WHERE chave_idempotencia=?`, v.ChaveIdempotencia)
			return scanVenda(row.Scan)
		}
		if intdb.IsDuplicateKey(err) {
			return v, domain.ConflictError{Resource: "venda", Msg: "poltrona já vendida para esta viagem"}
		}
		return v, err
	}
	v.ID, _ = res.LastInsertId()

	totalCol, err := totalColumn(v.MetodoPagamento)
	if err != nil {
		return v, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE caixas SET `+totalCol+` = `+totalCol+` + ?, total_geral = total_geral + ? WHERE id=?`,
		v.ValorCentavos, v.ValorCentavos, v.CaixaID); err != nil {
		return v, err
	}

	if err := tx.Commit(); err != nil {
		return v, err
	}
	return v, nil
}

// totalColumn maps the payment method onto its running-total column.
// The column name never comes from request input.
func totalColumn(m models.MetodoPagamento) (string, error) {
	switch m {
	case models.PagamentoDinheiro:
		return "total_dinheiro", nil
	case models.PagamentoPix:
		return "total_pix", nil
	case models.PagamentoCartao:
		return "total_cartao", nil
	}
	return "", domain.ValidationError{Field: "metodo_pagamento", Msg: "método de pagamento desconhecido"}
}

func scanCaixa(scan func(dest ...any) error) (models.Caixa, error) {
	var c models.Caixa
	var fechamento sql.NullTime
	err := scan(
		&c.ID, &c.UsuarioID, &c.UsuarioNome, &c.DataAbertura, &fechamento,
		&c.SaldoInicial, &c.TotalDinheiro, &c.TotalPix, &c.TotalCartao, &c.TotalGeral, &c.Status,
	)
	if err != nil {
		return c, err
	}
	if fechamento.Valid {
		t := fechamento.Time
		c.DataFechamento = &t
	}
	return c, nil
}
