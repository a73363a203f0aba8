package vendas

import (
	"context"
	"fmt"

	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// PDFUseCase gera o PDF de um pedido/orçamento para envio ao cliente.
type PDFUseCase struct {
	resolver    *tenant.Resolver
	pedidoRepo  repository.PedidoRepository
	empresaRepo repository.EmpresaRepository
	clienteRepo repository.ClienteRepository
	generator   PedidoPDFGenerator
}

// NewPDFUseCase constrói o caso de uso.
func NewPDFUseCase(
	resolver *tenant.Resolver,
	pedidoRepo repository.PedidoRepository,
	empresaRepo repository.EmpresaRepository,
	clienteRepo repository.ClienteRepository,
	generator PedidoPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		resolver:    resolver,
		pedidoRepo:  pedidoRepo,
		empresaRepo: empresaRepo,
		clienteRepo: clienteRepo,
		generator:   generator,
	}
}

// GerarPDF monta os dados do pedido e delega ao gerador. Devolve o nome
// sugerido do arquivo junto com os bytes.
func (uc *PDFUseCase) GerarPDF(ctx context.Context, sess tenant.Contexto, pedidoID string) ([]byte, string, error) {
	pedido, err := uc.pedidoRepo.GetByID(ctx, pedidoID, "")
	if err != nil {
		return nil, "", err
	}
	if pedido == nil {
		return nil, "", domain.ErrNotFound
	}
	if err := uc.resolver.ValidarAcesso(ctx, sess, pedido.EmpresaID); err != nil {
		return nil, "", err
	}

	empresa, err := uc.empresaRepo.GetByID(ctx, pedido.EmpresaID)
	if err != nil {
		return nil, "", err
	}
	cliente, err := uc.clienteRepo.GetByID(ctx, pedido.ClienteID, pedido.EmpresaID)
	if err != nil {
		return nil, "", err
	}
	itens, err := uc.pedidoRepo.ListItens(ctx, pedido.ID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.generator.GerarPedidoPDF(ctx, pedido, empresa, cliente, itens)
	if err != nil {
		return nil, "", err
	}
	nome := fmt.Sprintf("pedido-%d.pdf", pedido.NumeroPedido)
	return pdf, nome, nil
}
