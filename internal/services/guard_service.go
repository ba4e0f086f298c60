package services

import (
	"transportes/internal/domain"
	"transportes/internal/repositories"
)

// GuardService is the referential-integrity check shared by every
// delete path: an entity with dependent sales, register entries,
// trips or caixas must not be removed.
type GuardService struct {
	Repo repositories.DependentesRepository
}

var guardMessages = map[domain.EntityKind]string{
	domain.KindMotorista: "motorista possui viagens vinculadas e não pode ser excluído",
	domain.KindOnibus:    "ônibus possui viagens vinculadas e não pode ser excluído",
	domain.KindRota:      "rota possui viagens vinculadas e não pode ser excluída",
	domain.KindViagem:    "viagem possui vendas ou registros operacionais e não pode ser excluída",
	domain.KindUsuario:   "usuário está associado a vendas, registros ou caixas e não pode ser excluído",
}

// EnsureDeletable returns a DependencyError when dependents exist.
func (s GuardService) EnsureDeletable(kind domain.EntityKind, id int64) error {
	has, err := s.Repo.HasDependents(kind, id)
	if err != nil {
		return err
	}
	if has {
		return domain.DependencyError{Resource: string(kind), Msg: guardMessages[kind]}
	}
	return nil
}
