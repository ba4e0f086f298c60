package services

import (
	"context"
	"fmt"
	"time"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
)

// RegistroService records field reports against trips and, when a
// report requests it, drives the trip state machine.
type RegistroService struct {
	RegistroRepo repositories.RegistroRepository
	ViagemSvc    ViagemService
	RequestID    string
}

// RegistroInput carries one operational event. NovoStatus is optional
// and only honored at creation time, under the trip transition rules.
type RegistroInput struct {
	ViagemID          int64
	ChegadaReal       *time.Time
	SaidaReal         *time.Time
	PassChegaram      int
	PassEmbarcaram    int
	PassDesembarcaram int
	PassFinal         int
	Observacoes       string
	NovoStatus        *models.ViagemStatus
}

// RecordEvent validates the counts, then persists the entry and the
// requested status transition in one repository transaction, so the
// trip and its register move together or not at all.
func (s RegistroService) RecordEvent(ctx context.Context, operador domain.Operator, in RegistroInput) (models.RegistroOperacional, error) {
	if in.ViagemID <= 0 {
		return models.RegistroOperacional{}, domain.ValidationError{Field: "viagem_id", Msg: "obrigatório"}
	}
	for campo, n := range map[string]int{
		"pass_chegaram":      in.PassChegaram,
		"pass_embarcaram":    in.PassEmbarcaram,
		"pass_desembarcaram": in.PassDesembarcaram,
		"pass_final":         in.PassFinal,
	} {
		if n < 0 {
			return models.RegistroOperacional{}, domain.ValidationError{Field: campo, Msg: "não pode ser negativo"}
		}
	}

	viagem, err := s.ViagemSvc.ViagemRepo.GetByID(in.ViagemID)
	if err != nil {
		return models.RegistroOperacional{}, err
	}

	if in.NovoStatus != nil {
		novo := *in.NovoStatus
		if !novo.Valid() {
			return models.RegistroOperacional{}, domain.ValidationError{Field: "novo_status_viagem", Msg: "status de viagem desconhecido"}
		}
		// Register entries may only advance a trip, never cancel it.
		if novo == models.ViagemCancelada {
			return models.RegistroOperacional{}, domain.ConflictError{Resource: "viagem", Msg: "registro operacional não pode cancelar viagem"}
		}
		if !viagem.Status.CanTransition(novo) {
			return models.RegistroOperacional{}, domain.ConflictError{
				Resource: "viagem",
				Msg:      fmt.Sprintf("transição inválida: %s -> %s", viagem.Status, novo),
			}
		}
	}

	novoRegistro := models.RegistroOperacional{
		ViagemID:          in.ViagemID,
		UsuarioID:         int64(operador.ID),
		ChegadaReal:       in.ChegadaReal,
		SaidaReal:         in.SaidaReal,
		PassChegaram:      in.PassChegaram,
		PassEmbarcaram:    in.PassEmbarcaram,
		PassDesembarcaram: in.PassDesembarcaram,
		PassFinal:         in.PassFinal,
		Observacoes:       in.Observacoes,
		CriadoEm:          time.Now(),
	}

	var registro models.RegistroOperacional
	if in.NovoStatus != nil {
		registro, err = s.RegistroRepo.CreateAvancandoViagem(ctx, novoRegistro, viagem.Status, *in.NovoStatus)
		if err == nil {
			logger.Event(s.RequestID, "viagem", "transicao", fmt.Sprintf("viagem_id=%d %s->%s", viagem.ID, viagem.Status, *in.NovoStatus))
		}
	} else {
		registro, err = s.RegistroRepo.Create(novoRegistro)
	}
	if err != nil {
		return models.RegistroOperacional{}, err
	}
	logger.Event(s.RequestID, "registro", "criar", fmt.Sprintf("registro_id=%d viagem_id=%d", registro.ID, registro.ViagemID))
	return registro, nil
}

// DeleteEvent removes an entry unconditionally: register entries carry
// no downstream dependents.
func (s RegistroService) DeleteEvent(id int64) error {
	if err := s.RegistroRepo.Delete(id); err != nil {
		return err
	}
	logger.Event(s.RequestID, "registro", "excluir", fmt.Sprintf("registro_id=%d", id))
	return nil
}

func (s RegistroService) ListByViagem(viagemID int64) ([]models.RegistroOperacional, error) {
	return s.RegistroRepo.ListByViagem(viagemID)
}

func (s RegistroService) ListAll() ([]models.RegistroOperacional, error) {
	return s.RegistroRepo.ListAll()
}
