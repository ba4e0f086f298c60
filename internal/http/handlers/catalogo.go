package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain/models"
)

// GET /api/catalogo — composite read used to populate trip forms.
func GetCatalogo(c *gin.Context) {
	snap, err := catalogoSvc(c).Snapshot()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// --- Motoristas ---

func ListMotoristas(c *gin.Context) {
	out, err := catalogoSvc(c).Repo.ListMotoristas()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetMotorista(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	m, err := catalogoSvc(c).Repo.GetMotorista(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func CreateMotorista(c *gin.Context) {
	var req models.Motorista
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := catalogoSvc(c).CreateMotorista(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func UpdateMotorista(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req models.Motorista
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	m, err := catalogoSvc(c).UpdateMotorista(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func DeleteMotorista(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := catalogoSvc(c).DeleteMotorista(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "motorista excluído"})
}

// --- Ônibus ---

func ListOnibus(c *gin.Context) {
	out, err := catalogoSvc(c).Repo.ListOnibus()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetOnibus(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	o, err := catalogoSvc(c).Repo.GetOnibus(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func CreateOnibus(c *gin.Context) {
	var req models.Onibus
	if !BindJSONOrError(c, &req) {
		return
	}
	o, err := catalogoSvc(c).CreateOnibus(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func UpdateOnibus(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req models.Onibus
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	o, err := catalogoSvc(c).UpdateOnibus(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func DeleteOnibus(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := catalogoSvc(c).DeleteOnibus(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ônibus excluído"})
}

// --- Rotas ---

func ListRotas(c *gin.Context) {
	out, err := catalogoSvc(c).Repo.ListRotas()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetRota(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	r, err := catalogoSvc(c).Repo.GetRota(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func CreateRota(c *gin.Context) {
	var req models.Rota
	if !BindJSONOrError(c, &req) {
		return
	}
	r, err := catalogoSvc(c).CreateRota(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func UpdateRota(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req models.Rota
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	r, err := catalogoSvc(c).UpdateRota(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func DeleteRota(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := catalogoSvc(c).DeleteRota(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rota excluída"})
}
