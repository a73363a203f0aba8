package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// ProdutoHandler maneja as rotas de produtos e serviços do estoque.
type ProdutoHandler struct {
	uc *usecase.ProdutoUseCase
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(uc *usecase.ProdutoUseCase) *ProdutoHandler {
	return &ProdutoHandler{uc: uc}
}

// List GET /api/estoque/produtos?empresaId=&busca=&tipo=&limit=50&offset=0
func (h *ProdutoHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	out, err := h.uc.List(c.UserContext(), GetSessao(c),
		c.Query("empresaId"), c.Query("busca"), c.Query("tipo"), limit, offset)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/estoque/produtos
func (h *ProdutoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/estoque/produtos/:id
func (h *ProdutoHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/estoque/produtos/:id — o estoque em si não é editável
// por aqui; ele só muda por movimentação.
func (h *ProdutoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Desativar DELETE /api/estoque/produtos/:id — soft delete (ativo=false),
// preservando o histórico de movimentações e itens de pedido.
func (h *ProdutoHandler) Desativar(c *fiber.Ctx) error {
	if err := h.uc.Desativar(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "produto desativado"})
}

// Metricas GET /api/estoque/metricas?empresaId=...
func (h *ProdutoHandler) Metricas(c *fiber.Ctx) error {
	out, err := h.uc.Metricas(c.UserContext(), GetSessao(c), c.Query("empresaId"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
