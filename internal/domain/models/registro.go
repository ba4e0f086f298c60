package models

import "time"

// RegistroOperacional is a field report of actual trip events recorded
// by a bilheteiro: real arrival/departure and passenger counts. A trip
// may accumulate several entries (one per stop or check-in). The trip
// reference is immutable after creation.
type RegistroOperacional struct {
	ID               int64      `json:"id"`
	ViagemID         int64      `json:"viagem_id"`
	UsuarioID        int64      `json:"bilheteiro_id"`
	UsuarioNome      string     `json:"bilheteiro_nome,omitempty"`
	ChegadaReal      *time.Time `json:"data_hora_chegada_real"`
	SaidaReal        *time.Time `json:"data_hora_saida_real"`
	PassChegaram     int        `json:"pass_chegaram"`
	PassEmbarcaram   int        `json:"pass_embarcaram"`
	PassDesembarcaram int       `json:"pass_desembarcaram"`
	PassFinal        int        `json:"pass_final"`
	Observacoes      string     `json:"observacoes"`
	CriadoEm         time.Time  `json:"criado_em"`
}
