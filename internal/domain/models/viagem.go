package models

import "time"

// ViagemStatus is the lifecycle state of a scheduled trip.
type ViagemStatus string

const (
	ViagemAgendada   ViagemStatus = "Agendada"
	ViagemEmTransito ViagemStatus = "Em Trânsito"
	ViagemConcluida  ViagemStatus = "Concluída"
	ViagemCancelada  ViagemStatus = "Cancelada"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ViagemStatus) Valid() bool {
	switch s {
	case ViagemAgendada, ViagemEmTransito, ViagemConcluida, ViagemCancelada:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s ViagemStatus) Terminal() bool {
	return s == ViagemConcluida || s == ViagemCancelada
}

// Vendavel reports whether tickets may still be sold for a trip in
// this state.
func (s ViagemStatus) Vendavel() bool {
	return s == ViagemAgendada || s == ViagemEmTransito
}

// CanTransition encodes the trip state machine:
// Agendada → Em Trânsito, Agendada → Cancelada, Em Trânsito → Concluída.
// Cancellation is only reachable from Agendada.
func (s ViagemStatus) CanTransition(to ViagemStatus) bool {
	switch s {
	case ViagemAgendada:
		return to == ViagemEmTransito || to == ViagemCancelada
	case ViagemEmTransito:
		return to == ViagemConcluida
	}
	return false
}

type Viagem struct {
	ID              int64        `json:"id"`
	RotaID          int64        `json:"rota_id"`
	OnibusID        int64        `json:"onibus_id"`
	MotoristaID     int64        `json:"motorista_id"`
	PartidaPrevista time.Time    `json:"data_partida_prevista"`
	ChegadaPrevista time.Time    `json:"data_chegada_prevista"`
	Status          ViagemStatus `json:"status"`
}

// ViagemDetalhe is the materialized snapshot returned by listing
// endpoints: the trip plus the catalog rows it references.
type ViagemDetalhe struct {
	Viagem
	Rota      Rota      `json:"rota"`
	Onibus    Onibus    `json:"onibus"`
	Motorista Motorista `json:"motorista"`
}

// ViagemUpdate supports PATCH-style updates via key presence. A full
// edit is only accepted while the trip is Agendada.
type ViagemUpdate struct {
	RotaID          *int64        `json:"rota_id"`
	OnibusID        *int64        `json:"onibus_id"`
	MotoristaID     *int64        `json:"motorista_id"`
	PartidaPrevista *time.Time    `json:"data_partida_prevista"`
	ChegadaPrevista *time.Time    `json:"data_chegada_prevista"`
	Status          *ViagemStatus `json:"status"`
}
