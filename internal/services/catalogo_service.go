package services

import (
	"fmt"
	"strings"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
	"transportes/internal/utils"
)

// CatalogoService covers the CRUD of motoristas, ônibus and rotas plus
// the composite read used to populate trip forms.
type CatalogoService struct {
	Repo      repositories.CatalogoRepository
	Guard     GuardService
	RequestID string
}

// Catalogo is the composite snapshot of all three catalog listings.
type Catalogo struct {
	Motoristas []models.Motorista `json:"motoristas"`
	Onibus     []models.Onibus    `json:"onibus"`
	Rotas      []models.Rota      `json:"rotas"`
}

// Snapshot returns the three catalog lists in one call.
func (s CatalogoService) Snapshot() (Catalogo, error) {
	motoristas, err := s.Repo.ListMotoristas()
	if err != nil {
		return Catalogo{}, err
	}
	onibus, err := s.Repo.ListOnibus()
	if err != nil {
		return Catalogo{}, err
	}
	rotas, err := s.Repo.ListRotas()
	if err != nil {
		return Catalogo{}, err
	}
	return Catalogo{Motoristas: motoristas, Onibus: onibus, Rotas: rotas}, nil
}

// --- Motoristas ---

func (s CatalogoService) CreateMotorista(m models.Motorista) (models.Motorista, error) {
	m.NomeCompleto = utils.NormalizeSpace(m.NomeCompleto)
	if m.NomeCompleto == "" {
		return m, domain.ValidationError{Field: "nome_completo", Msg: "obrigatório"}
	}
	criado, err := s.Repo.CreateMotorista(m)
	if err != nil {
		return m, err
	}
	logger.Event(s.RequestID, "catalogo", "criar_motorista", fmt.Sprintf("motorista_id=%d", criado.ID))
	return criado, nil
}

func (s CatalogoService) UpdateMotorista(m models.Motorista) (models.Motorista, error) {
	existente, err := s.Repo.GetMotorista(m.ID)
	if err != nil {
		return m, err
	}
	if strings.TrimSpace(m.NomeCompleto) == "" {
		m.NomeCompleto = existente.NomeCompleto
	}
	if err := s.Repo.UpdateMotorista(m); err != nil {
		return m, err
	}
	return s.Repo.GetMotorista(m.ID)
}

func (s CatalogoService) DeleteMotorista(id int64) error {
	if _, err := s.Repo.GetMotorista(id); err != nil {
		return err
	}
	if err := s.Guard.EnsureDeletable(domain.KindMotorista, id); err != nil {
		return err
	}
	return s.Repo.DeleteMotorista(id)
}

// --- Ônibus ---

func (s CatalogoService) CreateOnibus(o models.Onibus) (models.Onibus, error) {
	o.NumeroOnibus = strings.TrimSpace(o.NumeroOnibus)
	if o.NumeroOnibus == "" {
		return o, domain.ValidationError{Field: "numero_onibus", Msg: "obrigatório"}
	}
	if o.Capacidade == 0 {
		o.Capacidade = models.OnibusCapacidadePadrao
	}
	if o.Capacidade < 1 {
		return o, domain.ValidationError{Field: "capacidade", Msg: "deve ser positiva"}
	}
	if strings.TrimSpace(o.EmpresaParceira) == "" {
		o.EmpresaParceira = models.EmpresaParceiraPadrao
	}
	criado, err := s.Repo.CreateOnibus(o)
	if err != nil {
		return o, err
	}
	logger.Event(s.RequestID, "catalogo", "criar_onibus", fmt.Sprintf("onibus_id=%d numero=%s", criado.ID, criado.NumeroOnibus))
	return criado, nil
}

func (s CatalogoService) UpdateOnibus(o models.Onibus) (models.Onibus, error) {
	existente, err := s.Repo.GetOnibus(o.ID)
	if err != nil {
		return o, err
	}
	if strings.TrimSpace(o.NumeroOnibus) == "" {
		o.NumeroOnibus = existente.NumeroOnibus
	}
	if o.Capacidade == 0 {
		o.Capacidade = existente.Capacidade
	}
	if o.Capacidade < 1 {
		return o, domain.ValidationError{Field: "capacidade", Msg: "deve ser positiva"}
	}
	if strings.TrimSpace(o.EmpresaParceira) == "" {
		o.EmpresaParceira = existente.EmpresaParceira
	}
	if err := s.Repo.UpdateOnibus(o); err != nil {
		return o, err
	}
	return s.Repo.GetOnibus(o.ID)
}

func (s CatalogoService) DeleteOnibus(id int64) error {
	if _, err := s.Repo.GetOnibus(id); err != nil {
		return err
	}
	if err := s.Guard.EnsureDeletable(domain.KindOnibus, id); err != nil {
		return err
	}
	return s.Repo.DeleteOnibus(id)
}

// --- Rotas ---

func (s CatalogoService) CreateRota(r models.Rota) (models.Rota, error) {
	r.Origem = utils.NormalizeSpace(r.Origem)
	r.Destino = utils.NormalizeSpace(r.Destino)
	if r.Origem == "" || r.Destino == "" {
		return r, domain.ValidationError{Field: "origem/destino", Msg: "obrigatórios"}
	}
	if strings.TrimSpace(r.TipoRota) == "" {
		r.TipoRota = models.TipoRotaPadrao
	}
	criada, err := s.Repo.CreateRota(r)
	if err != nil {
		return r, err
	}
	logger.Event(s.RequestID, "catalogo", "criar_rota", fmt.Sprintf("rota_id=%d", criada.ID))
	return criada, nil
}

func (s CatalogoService) UpdateRota(r models.Rota) (models.Rota, error) {
	existente, err := s.Repo.GetRota(r.ID)
	if err != nil {
		return r, err
	}
	if strings.TrimSpace(r.Origem) == "" {
		r.Origem = existente.Origem
	}
	if strings.TrimSpace(r.Destino) == "" {
		r.Destino = existente.Destino
	}
	if strings.TrimSpace(r.TipoRota) == "" {
		r.TipoRota = existente.TipoRota
	}
	if err := s.Repo.UpdateRota(r); err != nil {
		return r, err
	}
	return s.Repo.GetRota(r.ID)
}

func (s CatalogoService) DeleteRota(id int64) error {
	if _, err := s.Repo.GetRota(id); err != nil {
		return err
	}
	if err := s.Guard.EnsureDeletable(domain.KindRota, id); err != nil {
		return err
	}
	return s.Repo.DeleteRota(id)
}
