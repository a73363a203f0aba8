package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/pkg/jwt"
)

// CookieAuthToken nome do cookie de sessão emitido no login.
const CookieAuthToken = "auth-token"

// LocalSessao chave de c.Locals para o contexto verificado da sessão.
const LocalSessao = "sessao"

// AuthMiddleware valida o token JWT (cookie auth-token ou header Bearer)
// e carrega o contexto de tenancy em c.Locals. Token ausente, inválido,
// expirado ou com role desconhecido responde 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extrairToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "não autenticado"})
		}
		sess, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "token inválido ou expirado"})
		}
		role, ok := entity.ParseRole(sess.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "token inválido ou expirado"})
		}
		c.Locals(LocalSessao, tenant.Contexto{
			UserID:        sess.UserID,
			EmpresaID:     sess.EmpresaID,
			OrganizacaoID: sess.OrganizacaoID,
			Role:          role,
		})
		return c.Next()
	}
}

// extrairToken procura o token no cookie de sessão e, na falta dele, no
// header Authorization (Bearer).
func extrairToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(CookieAuthToken); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetSessao devolve o contexto da sessão (depois do AuthMiddleware).
func GetSessao(c *fiber.Ctx) tenant.Contexto {
	v := c.Locals(LocalSessao)
	if v == nil {
		return tenant.Contexto{}
	}
	sess, _ := v.(tenant.Contexto)
	return sess
}
