package services

import (
	"fmt"
	"time"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
)

// ViagemService owns trip scheduling and the trip state machine.
type ViagemService struct {
	ViagemRepo   repositories.ViagemRepository
	CatalogoRepo repositories.CatalogoRepository
	Guard        GuardService
	RequestID    string
}

// ViagemInput carries the fields of a new trip.
type ViagemInput struct {
	RotaID          int64
	OnibusID        int64
	MotoristaID     int64
	PartidaPrevista time.Time
	ChegadaPrevista time.Time
}

// Create validates references against the catalog with fresh reads and
// the schedule ordering, then persists the trip as Agendada.
func (s ViagemService) Create(in ViagemInput) (models.Viagem, error) {
	if err := s.validarReferencias(in.RotaID, in.OnibusID, in.MotoristaID); err != nil {
		return models.Viagem{}, err
	}
	if err := validarHorarios(in.PartidaPrevista, in.ChegadaPrevista); err != nil {
		return models.Viagem{}, err
	}

	viagem, err := s.ViagemRepo.Create(models.Viagem{
		RotaID:          in.RotaID,
		OnibusID:        in.OnibusID,
		MotoristaID:     in.MotoristaID,
		PartidaPrevista: in.PartidaPrevista,
		ChegadaPrevista: in.ChegadaPrevista,
		Status:          models.ViagemAgendada,
	})
	if err != nil {
		return models.Viagem{}, err
	}
	logger.Event(s.RequestID, "viagem", "criar", fmt.Sprintf("viagem_id=%d rota_id=%d", viagem.ID, viagem.RotaID))
	return viagem, nil
}

// Update applies a PATCH-style edit. While Agendada the whole trip is
// editable (with the same validations as Create). While Em Trânsito
// only a transition to Concluída is accepted. Terminal states reject
// everything. Cancellation is an admin action and only from Agendada.
func (s ViagemService) Update(operador domain.Operator, id int64, upd models.ViagemUpdate) (models.Viagem, error) {
	viagem, err := s.ViagemRepo.GetByID(id)
	if err != nil {
		return models.Viagem{}, err
	}

	if upd.Status != nil {
		novo := *upd.Status
		if !novo.Valid() {
			return models.Viagem{}, domain.ValidationError{Field: "status", Msg: "status de viagem desconhecido"}
		}
		if !viagem.Status.CanTransition(novo) {
			return models.Viagem{}, domain.ConflictError{
				Resource: "viagem",
				Msg:      fmt.Sprintf("transição inválida: %s → %s", viagem.Status, novo),
			}
		}
		if novo == models.ViagemCancelada && !operador.IsAdmin() {
			return models.Viagem{}, domain.AuthorizationError{Msg: "apenas admin pode cancelar viagens"}
		}
	}

	switch viagem.Status {
	case models.ViagemAgendada:
		if upd.RotaID != nil {
			viagem.RotaID = *upd.RotaID
		}
		if upd.OnibusID != nil {
			viagem.OnibusID = *upd.OnibusID
		}
		if upd.MotoristaID != nil {
			viagem.MotoristaID = *upd.MotoristaID
		}
		if upd.PartidaPrevista != nil {
			viagem.PartidaPrevista = *upd.PartidaPrevista
		}
		if upd.ChegadaPrevista != nil {
			viagem.ChegadaPrevista = *upd.ChegadaPrevista
		}
		if upd.RotaID != nil || upd.OnibusID != nil || upd.MotoristaID != nil {
			if err := s.validarReferencias(viagem.RotaID, viagem.OnibusID, viagem.MotoristaID); err != nil {
				return models.Viagem{}, err
			}
		}
		if err := validarHorarios(viagem.PartidaPrevista, viagem.ChegadaPrevista); err != nil {
			return models.Viagem{}, err
		}
	case models.ViagemEmTransito:
		if upd.RotaID != nil || upd.OnibusID != nil || upd.MotoristaID != nil ||
			upd.PartidaPrevista != nil || upd.ChegadaPrevista != nil {
			return models.Viagem{}, domain.ConflictError{Resource: "viagem", Msg: "viagem em trânsito só aceita conclusão"}
		}
	default:
		return models.Viagem{}, domain.ConflictError{Resource: "viagem", Msg: "viagem encerrada não pode ser alterada"}
	}

	if upd.Status != nil {
		viagem.Status = *upd.Status
	}
	if err := s.ViagemRepo.Update(viagem); err != nil {
		return models.Viagem{}, err
	}
	logger.Event(s.RequestID, "viagem", "atualizar", fmt.Sprintf("viagem_id=%d status=%s", viagem.ID, viagem.Status))
	return viagem, nil
}

// Delete removes a trip unless sales or register entries reference it.
func (s ViagemService) Delete(id int64) error {
	if _, err := s.ViagemRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.Guard.EnsureDeletable(domain.KindViagem, id); err != nil {
		return err
	}
	if err := s.ViagemRepo.Delete(id); err != nil {
		return err
	}
	logger.Event(s.RequestID, "viagem", "excluir", fmt.Sprintf("viagem_id=%d", id))
	return nil
}

func (s ViagemService) Get(id int64) (models.ViagemDetalhe, error) {
	return s.ViagemRepo.GetDetalheByID(id)
}

func (s ViagemService) List(f repositories.ViagemFilter) ([]models.ViagemDetalhe, error) {
	return s.ViagemRepo.List(f)
}

func (s ViagemService) validarReferencias(rotaID, onibusID, motoristaID int64) error {
	if _, err := s.CatalogoRepo.GetRota(rotaID); err != nil {
		return err
	}
	if _, err := s.CatalogoRepo.GetOnibus(onibusID); err != nil {
		return err
	}
	if _, err := s.CatalogoRepo.GetMotorista(motoristaID); err != nil {
		return err
	}
	return nil
}

func validarHorarios(partida, chegada time.Time) error {
	if partida.IsZero() || chegada.IsZero() {
		return domain.ValidationError{Field: "horários", Msg: "partida e chegada previstas são obrigatórias"}
	}
	if !chegada.After(partida) {
		return domain.ValidationError{Field: "data_chegada_prevista", Msg: "deve ser posterior à partida"}
	}
	return nil
}
