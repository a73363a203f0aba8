package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/usecase"
)

// OrganizacaoHandler maneja as rotas de organização e empresas.
type OrganizacaoHandler struct {
	uc *usecase.OrganizacaoUseCase
}

// NewOrganizacaoHandler constrói o handler.
func NewOrganizacaoHandler(uc *usecase.OrganizacaoUseCase) *OrganizacaoHandler {
	return &OrganizacaoHandler{uc: uc}
}

// Current GET /api/organizacao/current — a organização da sessão com suas
// empresas ativas.
func (h *OrganizacaoHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// ListEmpresas GET /api/organizacoes/:id/empresas — com contadores de
// clientes, produtos e pedidos por empresa.
func (h *OrganizacaoHandler) ListEmpresas(c *fiber.Ctx) error {
	out, err := h.uc.ListEmpresas(c.UserContext(), GetSessao(c), c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// CreateEmpresa POST /api/organizacoes/:id/empresas
func (h *OrganizacaoHandler) CreateEmpresa(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.CreateEmpresa(c.UserContext(), GetSessao(c), c.Params("id"), in, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEmpresaAtiva GET /api/empresa — a empresa ativa da sessão.
func (h *OrganizacaoHandler) GetEmpresaAtiva(c *fiber.Ctx) error {
	out, err := h.uc.GetEmpresaAtiva(c.UserContext(), GetSessao(c))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// UpdateEmpresaAtiva PUT /api/empresa — atualiza o cadastro da empresa
// ativa, com registro de auditoria.
func (h *OrganizacaoHandler) UpdateEmpresaAtiva(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.UpdateEmpresaAtiva(c.UserContext(), GetSessao(c), in, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
