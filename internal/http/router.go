package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "transportes/internal/config"
	"transportes/internal/domain"
	h "transportes/internal/http/handlers"
	"transportes/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.POST("/auth/login", h.Login)

		autenticado := api.Group("")
		autenticado.Use(middleware.Auth(h.AuthSvcForMiddleware()))
		{
			autenticado.GET("/auth/perfil", h.Perfil)

			// Catálogo
			autenticado.GET("/catalogo", h.GetCatalogo)

			motoristas := autenticado.Group("/motoristas")
			motoristas.GET("", h.ListMotoristas)
			motoristas.GET("/:id", h.GetMotorista)
			motoristas.POST("", h.CreateMotorista)
			motoristas.PUT("/:id", h.UpdateMotorista)
			motoristas.DELETE("/:id", h.DeleteMotorista)

			onibus := autenticado.Group("/onibus")
			onibus.GET("", h.ListOnibus)
			onibus.GET("/:id", h.GetOnibus)
			onibus.POST("", h.CreateOnibus)
			onibus.PUT("/:id", h.UpdateOnibus)
			onibus.DELETE("/:id", h.DeleteOnibus)

			rotas := autenticado.Group("/rotas")
			rotas.GET("", h.ListRotas)
			rotas.GET("/:id", h.GetRota)
			rotas.POST("", h.CreateRota)
			rotas.PUT("/:id", h.UpdateRota)
			rotas.DELETE("/:id", h.DeleteRota)

			// Viagens
			viagens := autenticado.Group("/viagens")
			viagens.GET("", h.ListViagens)
			viagens.GET("/:id", h.GetViagem)
			viagens.POST("", h.CreateViagem)
			viagens.PUT("/:id", h.UpdateViagem)
			viagens.DELETE("/:id", h.DeleteViagem)

			// Registros operacionais
			registros := autenticado.Group("/registros")
			registros.GET("", h.ListRegistros)
			registros.POST("", h.CreateRegistro)
			registros.DELETE("/:id", h.DeleteRegistro)

			// Caixa e vendas
			caixas := autenticado.Group("/caixas")
			caixas.GET("", h.ListCaixas)
			caixas.GET("/ativo", h.CaixaAtivo)
			caixas.POST("", h.AbrirCaixa)
			caixas.PUT("/:id/fechar", h.FecharCaixa)

			vendas := autenticado.Group("/vendas")
			vendas.GET("", h.ListVendas)
			vendas.POST("", h.CreateVenda)

			// Relatórios
			relatorios := autenticado.Group("/relatorios")
			relatorios.GET("/caixas/:id/pdf", h.FechoCaixaPDF)
			relatorios.GET("/viagens/:id/manifesto", h.ManifestoViagemPDF)

			// Administração de usuários
			admin := autenticado.Group("/usuarios")
			admin.Use(middleware.RequireRoles(domain.RoleAdmin))
			admin.GET("", h.ListUsuarios)
			admin.POST("", h.CreateUsuario)
			admin.PUT("/:id", h.UpdateUsuario)
			admin.DELETE("/:id", h.DeleteUsuario)
			admin.PUT("/:id/senha", h.ResetSenha)
		}
	}

	return r
}
