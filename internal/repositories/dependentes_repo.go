package repositories

import (
	"database/sql"
	"fmt"

	intconfig "transportes/internal/config"
	"transportes/internal/domain"
)

// DependentesRepository answers "does anything still reference this
// row". Catalog, trip and user delete paths consult it before acting.
type DependentesRepository struct {
	DB *sql.DB
}

func (r DependentesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// HasDependents returns true when any dependent record references the
// entity. Which tables count as dependents varies per kind:
// catalog entities are blocked by trips; trips by sales and register
// entries; users by sales, register entries and caixas (open or
// closed).
func (r DependentesRepository) HasDependents(kind domain.EntityKind, id int64) (bool, error) {
	var queries []string
	switch kind {
	case domain.KindMotorista:
		queries = []string{`SELECT COUNT(*) FROM viagens WHERE motorista_id=?`}
	case domain.KindOnibus:
		queries = []string{`SELECT COUNT(*) FROM viagens WHERE onibus_id=?`}
	case domain.KindRota:
		queries = []string{`SELECT COUNT(*) FROM viagens WHERE rota_id=?`}
	case domain.KindViagem:
		queries = []string{
			`SELECT COUNT(*) FROM vendas WHERE viagem_id=?`,
			`SELECT COUNT(*) FROM registros_operacionais WHERE viagem_id=?`,
		}
	case domain.KindUsuario:
		queries = []string{
			`SELECT COUNT(*) FROM vendas WHERE usuario_id=?`,
			`SELECT COUNT(*) FROM registros_operacionais WHERE usuario_id=?`,
			`SELECT COUNT(*) FROM caixas WHERE usuario_id=?`,
		}
	default:
		return false, fmt.Errorf("tipo de entidade desconhecido: %q", kind)
	}

	for _, q := range queries {
		var count int
		if err := r.db().QueryRow(q, id).Scan(&count); err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
