package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/vendas"
)

// VendaHandler maneja as rotas de vendas: listagem, venda rápida, criação
// completa de pedido, summary e PDF.
type VendaHandler struct {
	vendasUC *vendas.VendasUseCase
	createUC *vendas.CreatePedidoUseCase
	pdfUC    *vendas.PDFUseCase
}

// NewVendaHandler constrói o handler.
func NewVendaHandler(vendasUC *vendas.VendasUseCase, createUC *vendas.CreatePedidoUseCase, pdfUC *vendas.PDFUseCase) *VendaHandler {
	return &VendaHandler{vendasUC: vendasUC, createUC: createUC, pdfUC: pdfUC}
}

// List GET /api/vendas?empresaId=&usuarioId=&status=&dataInicio=&dataFim=
func (h *VendaHandler) List(c *fiber.Ctx) error {
	filtro, err := filtroListagemDaQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "data inválida (use YYYY-MM-DD)"})
	}
	out, err := h.vendasUC.List(c.UserContext(), GetSessao(c), filtro)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// CriarVenda POST /api/vendas — venda rápida: número sequencial automático,
// status ORCAMENTO, preços do cadastro.
func (h *VendaHandler) CriarVenda(c *fiber.Ctx) error {
	var in dto.CreateVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.vendasUC.CriarVenda(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CriarPedido POST /api/pedidos — criação completa: número informado pelo
// chamador, itens com preço explícito, baixa de estoque se VENDIDO.
func (h *VendaHandler) CriarPedido(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.createUC.Create(c.UserContext(), GetSessao(c), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/vendas/:id
func (h *VendaHandler) Get(c *fiber.Ctx) error {
	out, err := h.vendasUC.Get(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/vendas/:id
func (h *VendaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.vendasUC.UpdateVenda(c.UserContext(), GetSessao(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/vendas/:id — estorna o estoque se o pedido estava
// VENDIDO.
func (h *VendaHandler) Delete(c *fiber.Ctx) error {
	if err := h.vendasUC.DeleteVenda(c.UserContext(), GetSessao(c), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(fiber.Map{"message": "venda removida"})
}

// Summary GET /api/vendas/summary — sempre devolve os quatro status, com
// zeros quando não há pedidos.
func (h *VendaHandler) Summary(c *fiber.Ctx) error {
	filtro, err := filtroListagemDaQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "data inválida (use YYYY-MM-DD)"})
	}
	out, err := h.vendasUC.Summary(c.UserContext(), GetSessao(c), filtro)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/vendas/:id/pdf — devolve o documento gerado inline.
func (h *VendaHandler) PDF(c *fiber.Ctx) error {
	conteudo, nome, err := h.pdfUC.GerarPDF(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+nome+`"`)
	return c.Send(conteudo)
}

// filtroListagemDaQuery monta o filtro comum de listagem/summary a partir
// da query string. Datas no formato YYYY-MM-DD; dataFim é inclusiva (vai
// até o fim do dia).
func filtroListagemDaQuery(c *fiber.Ctx) (vendas.FiltroListagem, error) {
	filtro := vendas.FiltroListagem{
		EmpresaID: c.Query("empresaId"),
		UsuarioID: c.Query("usuarioId"),
		Status:    c.Query("status"),
	}
	if v := c.Query("dataInicio"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filtro, err
		}
		filtro.DataInicio = &t
	}
	if v := c.Query("dataFim"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filtro, err
		}
		fim := t.Add(24*time.Hour - time.Nanosecond)
		filtro.DataFim = &fim
	}
	return filtro, nil
}
