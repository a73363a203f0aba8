package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// ClienteHandler maneja as rotas de clientes (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler constrói o handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// List GET /api/clientes?empresaId=...
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSessao(c), c.Query("empresaId"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/clientes/:id
func (h *ClienteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/clientes/:id — recusa clientes com pedidos (409).
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente removido"})
}

// Summary GET /api/clientes/summary?empresaId=...
func (h *ClienteHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetSessao(c), c.Query("empresaId"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
