package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// MembroHandler maneja as rotas de membros da organização.
type MembroHandler struct {
	uc *usecase.MembroUseCase
}

// NewMembroHandler constrói o handler.
func NewMembroHandler(uc *usecase.MembroUseCase) *MembroHandler {
	return &MembroHandler{uc: uc}
}

// List GET /api/configuracoes/membros (e /api/membros, /api/usuarios) —
// aberto a qualquer membro autenticado da organização.
func (h *MembroHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Convidar POST /api/configuracoes/membros — cria o usuário se o e-mail
// ainda não existe e o vincula à organização.
func (h *MembroHandler) Convidar(c *fiber.Ctx) error {
	var in dto.ConviteMembroRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Convidar(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AlterarRole PUT /api/membros/:id
func (h *MembroHandler) AlterarRole(c *fiber.Ctx) error {
	var in dto.UpdateMembroRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	if err := h.uc.AlterarRole(c.UserContext(), GetSessao(c), c.Params("id"), in); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "role atualizado"})
}

// Remover DELETE /api/membros/:id — auto-remoção é recusada (403).
func (h *MembroHandler) Remover(c *fiber.Ctx) error {
	if err := h.uc.Remover(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "membro removido"})
}
