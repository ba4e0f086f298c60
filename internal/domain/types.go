package domain

// ID is used across domain entities.
type ID int64

const (
	RoleAdmin      = "admin"
	RoleBilheteiro = "bilheteiro"
)

// Operator carries the authenticated caller identity, resolved by the
// auth middleware from the bearer token on every request.
type Operator struct {
	ID   ID     `json:"id"`
	Nome string `json:"nome"`
	Role string `json:"role"`
}

func (o Operator) IsAdmin() bool { return o.Role == RoleAdmin }

// EntityKind names the entities covered by the dependency guard.
type EntityKind string

const (
	KindMotorista EntityKind = "motorista"
	KindOnibus    EntityKind = "onibus"
	KindRota      EntityKind = "rota"
	KindViagem    EntityKind = "viagem"
	KindUsuario   EntityKind = "usuario"
)
