package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "transportes/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "banco de dados não conectado"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM usuarios`).Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar o banco: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conexão com o banco OK", "usuarios": count})
}
