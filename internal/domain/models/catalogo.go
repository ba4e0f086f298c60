package models

// Catalog entities referenced by trips. Deletes are guarded by the
// dependency checks in the guard service.

type Motorista struct {
	ID           int64  `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	CPF          string `json:"cpf"`
	Contato      string `json:"contato"`
}

type Onibus struct {
	ID              int64  `json:"id"`
	NumeroOnibus    string `json:"numero_onibus"`
	Placa           string `json:"placa"`
	EmpresaParceira string `json:"empresa_parceira"`
	Capacidade      int    `json:"capacidade"`
}

type Rota struct {
	ID       int64  `json:"id"`
	Origem   string `json:"origem"`
	Destino  string `json:"destino"`
	TipoRota string `json:"tipo_rota"`
}

// Defaults mirror the fleet profile of the partner operation.
const (
	OnibusCapacidadePadrao = 46
	EmpresaParceiraPadrao  = "Guanabara"
	TipoRotaPadrao         = "Interestadual"
)
