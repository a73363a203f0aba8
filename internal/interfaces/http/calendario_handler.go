package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// CalendarioHandler maneja as rotas do calendário/kanban de eventos.
type CalendarioHandler struct {
	uc *usecase.CalendarioUseCase
}

// NewCalendarioHandler constrói o handler.
func NewCalendarioHandler(uc *usecase.CalendarioUseCase) *CalendarioHandler {
	return &CalendarioHandler{uc: uc}
}

// List GET /api/calendario?start=&end=&usuarioId=
// Devolve os eventos que INTERSECTAM a janela [start, end].
func (h *CalendarioHandler) List(c *fiber.Ctx) error {
	start, err := parseDataQuery(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "start inválido"})
	}
	end, err := parseDataQuery(c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "end inválido"})
	}
	out, err := h.uc.List(c.UserContext(), GetSessao(c), start, end, c.Query("usuarioId"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/calendario
func (h *CalendarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/calendario/:id — também cobre o drag-and-drop
// (mudança de datas ou de stage).
func (h *CalendarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEventoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/calendario/:id
func (h *CalendarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "evento removido"})
}

// Clone POST /api/calendario/:id/clone
func (h *CalendarioHandler) Clone(c *fiber.Ctx) error {
	out, err := h.uc.Clone(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary GET /api/calendario/summary
func (h *CalendarioHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// parseDataQuery aceita RFC3339 ou YYYY-MM-DD; vazio devolve nil.
func parseDataQuery(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
