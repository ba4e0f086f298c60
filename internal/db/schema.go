package db

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables on first boot. Two unique keys carry
// invariants the application must not re-derive in code:
//
//   - caixas.operador_aberto holds the owner id while the caixa is
//     Aberto and NULL after close, so the unique key admits at most one
//     open caixa per bilheteiro even under concurrent opens;
//   - vendas (viagem_id, numero_poltrona) blocks double-selling a seat.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			nome_completo VARCHAR(100) NOT NULL,
			usuario VARCHAR(50) NOT NULL,
			senha_hash VARCHAR(200) NOT NULL,
			nivel_acesso VARCHAR(20) NOT NULL DEFAULT 'bilheteiro',
			UNIQUE KEY uq_usuarios_usuario (usuario)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS motoristas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			nome_completo VARCHAR(100) NOT NULL,
			cpf VARCHAR(14) NULL,
			contato VARCHAR(20) NULL,
			UNIQUE KEY uq_motoristas_cpf (cpf)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS onibus (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			numero_onibus VARCHAR(20) NOT NULL,
			placa VARCHAR(10) NULL,
			empresa_parceira VARCHAR(50) NOT NULL DEFAULT 'Guanabara',
			capacidade INT NOT NULL DEFAULT 46,
			UNIQUE KEY uq_onibus_numero (numero_onibus),
			UNIQUE KEY uq_onibus_placa (placa)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS rotas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			origem VARCHAR(100) NOT NULL,
			destino VARCHAR(100) NOT NULL,
			tipo_rota VARCHAR(20) NOT NULL DEFAULT 'Interestadual'
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS viagens (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			rota_id BIGINT NOT NULL,
			onibus_id BIGINT NOT NULL,
			motorista_id BIGINT NOT NULL,
			partida_prevista DATETIME NOT NULL,
			chegada_prevista DATETIME NOT NULL,
			status VARCHAR(30) NOT NULL DEFAULT 'Agendada',
			KEY idx_viagens_rota (rota_id),
			KEY idx_viagens_onibus (onibus_id),
			KEY idx_viagens_motorista (motorista_id),
			CONSTRAINT fk_viagens_rota FOREIGN KEY (rota_id) REFERENCES rotas(id),
			CONSTRAINT fk_viagens_onibus FOREIGN KEY (onibus_id) REFERENCES onibus(id),
			CONSTRAINT fk_viagens_motorista FOREIGN KEY (motorista_id) REFERENCES motoristas(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS registros_operacionais (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			viagem_id BIGINT NOT NULL,
			usuario_id BIGINT NOT NULL,
			chegada_real DATETIME NULL,
			saida_real DATETIME NULL,
			pass_chegaram INT NOT NULL DEFAULT 0,
			pass_embarcaram INT NOT NULL DEFAULT 0,
			pass_desembarcaram INT NOT NULL DEFAULT 0,
			pass_final INT NOT NULL DEFAULT 0,
			observacoes TEXT NULL,
			criado_em DATETIME NOT NULL,
			KEY idx_registros_viagem (viagem_id),
			KEY idx_registros_usuario (usuario_id),
			CONSTRAINT fk_registros_viagem FOREIGN KEY (viagem_id) REFERENCES viagens(id),
			CONSTRAINT fk_registros_usuario FOREIGN KEY (usuario_id) REFERENCES usuarios(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS caixas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			usuario_id BIGINT NOT NULL,
			operador_aberto BIGINT NULL,
			data_abertura DATETIME NOT NULL,
			data_fechamento DATETIME NULL,
			saldo_inicial BIGINT NOT NULL DEFAULT 0,
			total_dinheiro BIGINT NOT NULL DEFAULT 0,
			total_pix BIGINT NOT NULL DEFAULT 0,
			total_cartao BIGINT NOT NULL DEFAULT 0,
			total_geral BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'Aberto',
			UNIQUE KEY uq_caixas_operador_aberto (operador_aberto),
			KEY idx_caixas_usuario (usuario_id),
			CONSTRAINT fk_caixas_usuario FOREIGN KEY (usuario_id) REFERENCES usuarios(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS vendas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			viagem_id BIGINT NOT NULL,
			caixa_id BIGINT NOT NULL,
			usuario_id BIGINT NOT NULL,
			chave_idempotencia VARCHAR(64) NULL,
			nome_passageiro VARCHAR(100) NOT NULL,
			documento_passageiro VARCHAR(50) NOT NULL,
			numero_poltrona INT NOT NULL,
			valor_centavos BIGINT NOT NULL,
			metodo_pagamento VARCHAR(30) NOT NULL,
			data_venda DATETIME NOT NULL,
			UNIQUE KEY uq_vendas_poltrona (viagem_id, numero_poltrona),
			UNIQUE KEY uq_vendas_idempotencia (chave_idempotencia),
			KEY idx_vendas_caixa (caixa_id),
			KEY idx_vendas_usuario (usuario_id),
			CONSTRAINT fk_vendas_viagem FOREIGN KEY (viagem_id) REFERENCES viagens(id),
			CONSTRAINT fk_vendas_caixa FOREIGN KEY (caixa_id) REFERENCES caixas(id),
			CONSTRAINT fk_vendas_usuario FOREIGN KEY (usuario_id) REFERENCES usuarios(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
