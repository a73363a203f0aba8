package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// FinanceiroHandler maneja as rotas de transações financeiras e do
// dashboard financeiro.
type FinanceiroHandler struct {
	uc *usecase.FinanceiroUseCase
}

// NewFinanceiroHandler constrói o handler.
func NewFinanceiroHandler(uc *usecase.FinanceiroUseCase) *FinanceiroHandler {
	return &FinanceiroHandler{uc: uc}
}

// List GET /api/financeiro/transacoes?tipo=&status=&page=1&limit=20
func (h *FinanceiroHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	out, err := h.uc.List(c.UserContext(), GetSessao(c), c.Query("tipo"), c.Query("status"), page, limit)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/financeiro/transacoes
func (h *FinanceiroHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/financeiro/transacoes/:id — marcar como PAGA sem data de
// pagamento carimba a data atual.
func (h *FinanceiroHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/financeiro/transacoes/:id
func (h *FinanceiroHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "transação removida"})
}

// Summary GET /api/financeiro/summary
func (h *FinanceiroHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// DashboardData GET /api/financeiro/dashboard-data — totais do mês e fluxo
// dos últimos seis meses.
func (h *FinanceiroHandler) DashboardData(c *fiber.Ctx) error {
	out, err := h.uc.DashboardData(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
