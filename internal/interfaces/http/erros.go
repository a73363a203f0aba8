package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/domain"
)

// responderErro mapeia os erros-sentinela do domínio para status HTTP.
// Erros desconhecidos são logados e viram 500 com mensagem genérica.
func responderErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "dados inválidos"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUsuarioNotFound):
		// Credencial errada e usuário inexistente respondem igual: não
		// revelar quais e-mails existem.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrAutoModificacao):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "registro não encontrado"})
	case errors.Is(err, domain.ErrEmailJaCadastrado),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrMembroJaExiste),
		errors.Is(err, domain.ErrClienteComPedidos),
		errors.Is(err, domain.ErrNumeroPedidoEmUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrEmpresaNaoSelecionada):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("erro não mapeado na resposta HTTP")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "erro interno"})
	}
}

// bodyInvalido resposta padrão para JSON malformado.
func bodyInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "corpo inválido"})
}
