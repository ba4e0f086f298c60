package models

// Usuario is a system operator (bilheteiro or admin). SenhaHash never
// leaves the repository layer; JSON payloads use the public view.
type Usuario struct {
	ID           int64  `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Usuario      string `json:"usuario"`
	SenhaHash    string `json:"-"`
	NivelAcesso  string `json:"nivel_acesso"`
}

// UsuarioUpdate supports PATCH-style updates via key presence.
type UsuarioUpdate struct {
	NomeCompleto *string `json:"nome_completo"`
	Usuario      *string `json:"usuario"`
	NivelAcesso  *string `json:"nivel_acesso"`
}
