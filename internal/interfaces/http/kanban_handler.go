package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// KanbanHandler maneja as rotas de stages do kanban.
type KanbanHandler struct {
	uc *usecase.KanbanUseCase
}

// NewKanbanHandler constrói o handler.
func NewKanbanHandler(uc *usecase.KanbanUseCase) *KanbanHandler {
	return &KanbanHandler{uc: uc}
}

// List GET /api/kanban/stages — ordenado por ordem.
func (h *KanbanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/kanban/stages
func (h *KanbanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/kanban/stages/:id
func (h *KanbanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/kanban/stages/:id — eventos da stage ficam sem stage
// (FK com SET NULL).
func (h *KanbanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "stage removida"})
}
