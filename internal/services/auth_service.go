package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"transportes/internal/domain"
	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
)

// AuthService issues session tokens and manages user accounts. User
// management is admin-only, enforced at the router.
type AuthService struct {
	UsuarioRepo repositories.UsuarioRepository
	Guard       GuardService
	JWTSecret   []byte
	TokenTTL    time.Duration
	RequestID   string
}

func (s AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// Login checks credentials and returns the signed token plus the
// public user view. Invalid login and invalid password produce the
// same error so the response does not leak which accounts exist.
func (s AuthService) Login(login, senha string) (string, models.Usuario, error) {
	usuario, err := s.UsuarioRepo.GetByLogin(strings.TrimSpace(login))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.Usuario{}, domain.AuthorizationError{Msg: "credenciais inválidas"}
		}
		return "", models.Usuario{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(senha)) != nil {
		return "", models.Usuario{}, domain.AuthorizationError{Msg: "credenciais inválidas"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      usuario.ID,
		"nome":         usuario.NomeCompleto,
		"nivel_acesso": usuario.NivelAcesso,
		"exp":          time.Now().Add(s.tokenTTL()).Unix(),
	})
	assinado, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", models.Usuario{}, domain.InternalError{Msg: "falha ao gerar token", Err: err}
	}

	logger.Event(s.RequestID, "auth", "login", fmt.Sprintf("usuario_id=%d", usuario.ID))
	return assinado, usuario, nil
}

// ParseToken validates a bearer token and rebuilds the operator
// identity carried on every core call.
func (s AuthService) ParseToken(tokenString string) (domain.Operator, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.Operator{}, domain.AuthorizationError{Msg: "token inválido ou expirado", Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Operator{}, domain.AuthorizationError{Msg: "token inválido"}
	}

	id, _ := claims["user_id"].(float64)
	nome, _ := claims["nome"].(string)
	role, _ := claims["nivel_acesso"].(string)
	if id <= 0 || role == "" {
		return domain.Operator{}, domain.AuthorizationError{Msg: "token sem identidade de operador"}
	}
	return domain.Operator{ID: domain.ID(int64(id)), Nome: nome, Role: role}, nil
}

// UsuarioInput carries account creation/update fields.
type UsuarioInput struct {
	NomeCompleto string
	Usuario      string
	Senha        string
	NivelAcesso  string
}

func (s AuthService) CreateUsuario(in UsuarioInput) (models.Usuario, error) {
	in.NomeCompleto = strings.TrimSpace(in.NomeCompleto)
	in.Usuario = strings.TrimSpace(in.Usuario)
	if in.NomeCompleto == "" || in.Usuario == "" || in.Senha == "" {
		return models.Usuario{}, domain.ValidationError{Msg: "nome_completo, usuario e senha são obrigatórios"}
	}
	if in.NivelAcesso == "" {
		in.NivelAcesso = domain.RoleBilheteiro
	}
	if in.NivelAcesso != domain.RoleAdmin && in.NivelAcesso != domain.RoleBilheteiro {
		return models.Usuario{}, domain.ValidationError{Field: "nivel_acesso", Msg: "deve ser admin ou bilheteiro"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return models.Usuario{}, domain.InternalError{Msg: "falha ao gerar hash de senha", Err: err}
	}

	criado, err := s.UsuarioRepo.Create(models.Usuario{
		NomeCompleto: in.NomeCompleto,
		Usuario:      in.Usuario,
		SenhaHash:    string(hash),
		NivelAcesso:  in.NivelAcesso,
	})
	if err != nil {
		return models.Usuario{}, err
	}
	logger.Event(s.RequestID, "auth", "criar_usuario", fmt.Sprintf("usuario_id=%d nivel=%s", criado.ID, criado.NivelAcesso))
	return criado, nil
}

func (s AuthService) GetUsuario(id int64) (models.Usuario, error) {
	return s.UsuarioRepo.GetByID(id)
}

func (s AuthService) ListUsuarios() ([]models.Usuario, error) {
	return s.UsuarioRepo.List()
}

func (s AuthService) UpdateUsuario(id int64, upd models.UsuarioUpdate) (models.Usuario, error) {
	if upd.NivelAcesso != nil {
		nivel := *upd.NivelAcesso
		if nivel != domain.RoleAdmin && nivel != domain.RoleBilheteiro {
			return models.Usuario{}, domain.ValidationError{Field: "nivel_acesso", Msg: "deve ser admin ou bilheteiro"}
		}
	}
	return s.UsuarioRepo.Update(id, upd)
}

// ResetSenha lets an admin set a new password for any account.
func (s AuthService) ResetSenha(id int64, novaSenha string) error {
	if strings.TrimSpace(novaSenha) == "" {
		return domain.ValidationError{Field: "nova_senha", Msg: "obrigatória"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "falha ao gerar hash de senha", Err: err}
	}
	if err := s.UsuarioRepo.UpdateSenha(id, string(hash)); err != nil {
		return err
	}
	logger.Event(s.RequestID, "auth", "reset_senha", fmt.Sprintf("usuario_id=%d", id))
	return nil
}

// DeleteUsuario removes an account. Self-deletion is forbidden, and an
// operator with sales, register entries or caixas (open or closed) is
// kept for the audit trail.
func (s AuthService) DeleteUsuario(operador domain.Operator, id int64) error {
	if int64(operador.ID) == id {
		return domain.AuthorizationError{Msg: "você não pode excluir a si mesmo"}
	}
	if _, err := s.UsuarioRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.Guard.EnsureDeletable(domain.KindUsuario, id); err != nil {
		return err
	}
	if err := s.UsuarioRepo.Delete(id); err != nil {
		return err
	}
	logger.Event(s.RequestID, "auth", "excluir_usuario", fmt.Sprintf("usuario_id=%d", id))
	return nil
}
