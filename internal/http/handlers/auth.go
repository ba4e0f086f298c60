package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportes/internal/domain/models"
	"transportes/internal/http/middleware"
	"transportes/internal/services"
)

type loginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Usuario == "" || req.Senha == "" {
		RespondError(c, http.StatusBadRequest, "usuário e senha são obrigatórios", nil)
		return
	}

	token, usuario, err := authSvc(c).Login(req.Usuario, req.Senha)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "login realizado",
		"access_token": token,
		"usuario":      usuario,
	})
}

// GET /api/auth/perfil
func Perfil(c *gin.Context) {
	operador, ok := middleware.CurrentOperator(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "operador não autenticado", nil)
		return
	}
	usuario, err := authSvc(c).GetUsuario(int64(operador.ID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": usuario})
}

type usuarioRequest struct {
	NomeCompleto string `json:"nome_completo"`
	Usuario      string `json:"usuario"`
	Senha        string `json:"senha"`
	NivelAcesso  string `json:"nivel_acesso"`
}

// POST /api/auth/usuarios (admin)
func CreateUsuario(c *gin.Context) {
	var req usuarioRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	usuario, err := authSvc(c).CreateUsuario(services.UsuarioInput{
		NomeCompleto: req.NomeCompleto,
		Usuario:      req.Usuario,
		Senha:        req.Senha,
		NivelAcesso:  req.NivelAcesso,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "usuário criado", "usuario": usuario})
}

// GET /api/auth/usuarios (admin)
func ListUsuarios(c *gin.Context) {
	usuarios, err := authSvc(c).ListUsuarios()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

// PUT /api/auth/usuarios/:id (admin)
func UpdateUsuario(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var upd models.UsuarioUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	usuario, err := authSvc(c).UpdateUsuario(id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// DELETE /api/auth/usuarios/:id (admin)
func DeleteUsuario(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	operador, _ := middleware.CurrentOperator(c)
	if err := authSvc(c).DeleteUsuario(operador, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "usuário excluído"})
}

type resetSenhaRequest struct {
	NovaSenha string `json:"nova_senha"`
}

// POST /api/auth/usuarios/:id/reset-senha (admin)
func ResetSenha(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req resetSenhaRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := authSvc(c).ResetSenha(id, req.NovaSenha); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "senha atualizada"})
}
