package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// RequirePermissao devolve um middleware que verifica a permissão na
// matriz fechada do role da sessão. Deve vir DEPOIS do AuthMiddleware.
//
//   - 401 → sessão ausente (AuthMiddleware não rodou ou falhou).
//   - 403 → a matriz do role não concede (módulo, ação).
func RequirePermissao(modulo entity.Modulo, acao entity.Acao) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSessao(c)
		if sess.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "não autenticado"})
		}
		if !sess.Role.Permite(entity.Permissao{Modulo: modulo, Acao: acao}) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "permissão negada"})
		}
		return c.Next()
	}
}
