package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"transportes/internal/http/middleware"
	"transportes/internal/repositories"
	"transportes/internal/services"
)

// Handlers build service values per request so every log line carries
// the request id. Repositories fall back to the shared DB connection.

var (
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// Configure injects the secrets the handlers need. Called once by the
// router before any route is mounted.
func Configure(secret string) {
	jwtSecret = []byte(secret)
}

func authSvc(c *gin.Context) services.AuthService {
	return services.AuthService{
		UsuarioRepo: repositories.UsuarioRepository{},
		Guard:       guardSvc(),
		JWTSecret:   jwtSecret,
		TokenTTL:    tokenTTL,
		RequestID:   middleware.GetRequestID(c),
	}
}

// AuthSvcForMiddleware builds the token parser used by the auth
// middleware, outside any request.
func AuthSvcForMiddleware() services.AuthService {
	return services.AuthService{
		UsuarioRepo: repositories.UsuarioRepository{},
		JWTSecret:   jwtSecret,
	}
}

func guardSvc() services.GuardService {
	return services.GuardService{Repo: repositories.DependentesRepository{}}
}

func catalogoSvc(c *gin.Context) services.CatalogoService {
	return services.CatalogoService{
		Repo:      repositories.CatalogoRepository{},
		Guard:     guardSvc(),
		RequestID: middleware.GetRequestID(c),
	}
}

func viagemSvc(c *gin.Context) services.ViagemService {
	return services.ViagemService{
		ViagemRepo:   repositories.ViagemRepository{},
		CatalogoRepo: repositories.CatalogoRepository{},
		Guard:        guardSvc(),
		RequestID:    middleware.GetRequestID(c),
	}
}

func registroSvc(c *gin.Context) services.RegistroService {
	return services.RegistroService{
		RegistroRepo: repositories.RegistroRepository{},
		ViagemSvc:    viagemSvc(c),
		RequestID:    middleware.GetRequestID(c),
	}
}

func ledgerSvc(c *gin.Context) services.LedgerService {
	return services.LedgerService{
		CaixaRepo: repositories.CaixaRepository{},
		VendaRepo: repositories.VendaRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func reportsSvc(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		CaixaRepo:  repositories.CaixaRepository{},
		VendaRepo:  repositories.VendaRepository{},
		ViagemRepo: repositories.ViagemRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}
