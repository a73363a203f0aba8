package vendas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// VendasUseCase operações do módulo de vendas: listagem org-wide, venda
// rápida com numeração automática, atualização com estorno/rebaixa de
// estoque, exclusão e resumo por status.
type VendasUseCase struct {
	txRunner    TxRunner
	resolver    *tenant.Resolver
	pedidoRepo  repository.PedidoRepository
	clienteRepo repository.ClienteRepository
	produtoRepo repository.ProdutoRepository
}

// NewVendasUseCase constrói o caso de uso.
func NewVendasUseCase(
	txRunner TxRunner,
	resolver *tenant.Resolver,
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	produtoRepo repository.ProdutoRepository,
) *VendasUseCase {
	return &VendasUseCase{
		txRunner:    txRunner,
		resolver:    resolver,
		pedidoRepo:  pedidoRepo,
		clienteRepo: clienteRepo,
		produtoRepo: produtoRepo,
	}
}

// FiltroListagem parâmetros de consulta da listagem de vendas.
type FiltroListagem struct {
	EmpresaID  string // vazio = todas as empresas da organização
	UsuarioID  string
	Status     string
	DataInicio *time.Time
	DataFim    *time.Time
}

// List devolve os pedidos do escopo resolvido, com nomes de cliente e
// vendedor para a grade da listagem.
func (uc *VendasUseCase) List(ctx context.Context, sess tenant.Contexto, filtro FiltroListagem) ([]dto.PedidoResponse, error) {
	repoFiltro, err := uc.montarFiltro(ctx, sess, filtro)
	if err != nil {
		return nil, err
	}
	rows, err := uc.pedidoRepo.List(ctx, repoFiltro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(rows))
	for _, row := range rows {
		resp := toPedidoResponse(&row.Pedido, nil)
		resp.ClienteNome = row.ClienteNome
		resp.UsuarioNome = row.UsuarioNome
		out = append(out, resp)
	}
	return out, nil
}

// Get devolve um pedido com as linhas, validando que a empresa dona
// pertence à organização da sessão.
func (uc *VendasUseCase) Get(ctx context.Context, sess tenant.Contexto, id string) (*dto.PedidoResponse, error) {
	pedido, itens, err := uc.carregarPedido(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	resp := toPedidoResponse(pedido, itens)
	return &resp, nil
}

// CriarVenda venda rápida: numeração sequencial automática, preços vindos
// do cadastro do produto e status inicial ORCAMENTO (sem efeito de
// estoque até a conversão para VENDIDO).
func (uc *VendasUseCase) CriarVenda(ctx context.Context, sess tenant.Contexto, in dto.CreateVendaRequest) (*dto.PedidoResponse, error) {
	if in.ClienteID == "" || len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}

	cliente, err := uc.clienteRepo.GetByID(ctx, in.ClienteID, empresaID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	pedido := &entity.Pedido{
		ID:                    uuid.New().String(),
		EmpresaID:             empresaID,
		ClienteID:             in.ClienteID,
		UsuarioID:             sess.UserID,
		Status:                entity.PedidoOrcamento,
		Frete:                 decimal.Zero,
		DataPedido:            now,
		InformacoesNegociacao: in.Observacoes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	var itens []*entity.ItemPedido
	err = uc.txRunner.Run(ctx, func(
		pedidos repository.PedidoRepository,
		produtos repository.ProdutoRepository,
		movs repository.MovimentacaoRepository,
		clientes repository.ClienteRepository,
	) error {
		numero, err := pedidos.ProximoNumero(ctx, empresaID)
		if err != nil {
			return err
		}
		pedido.NumeroPedido = numero

		itens, err = montarItensVenda(ctx, produtos, empresaID, pedido.ID, in.Itens)
		if err != nil {
			return err
		}
		pedido.ValorTotal = somarItens(itens, pedido.Frete)

		if err := pedidos.Create(ctx, pedido); err != nil {
			return err
		}
		for _, item := range itens {
			if err := pedidos.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return pedidos.CreateHistorico(ctx, &entity.HistoricoPedido{
			ID:        uuid.New().String(),
			PedidoID:  pedido.ID,
			Descricao: fmt.Sprintf("Pedido criado com status: %s", entity.PedidoOrcamento),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toPedidoResponse(pedido, itens)
	resp.ClienteNome = cliente.Nome
	return &resp, nil
}

// UpdateVenda atualiza cliente, status, observações e, quando Itens vem
// preenchido, substitui todas as linhas. Estoque é tratado em duas fases
// simétricas: estorna o efeito do estado antigo (se era VENDIDO) e aplica
// a baixa do estado novo (se ficou VENDIDO), sempre na mesma transação.
func (uc *VendasUseCase) UpdateVenda(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateVendaRequest) (*dto.PedidoResponse, error) {
	pedido, _, err := uc.carregarPedido(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	novoStatus := pedido.Status
	if in.Status != nil {
		parsed, ok := entity.ParseStatusPedido(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		novoStatus = parsed
	}
	if in.ClienteID != nil {
		cliente, err := uc.clienteRepo.GetByID(ctx, *in.ClienteID, pedido.EmpresaID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNotFound
		}
		pedido.ClienteID = *in.ClienteID
	}
	if in.Observacoes != nil {
		pedido.InformacoesNegociacao = *in.Observacoes
	}

	statusAntigo := pedido.Status
	var itensFinais []*entity.ItemPedido

	err = uc.txRunner.Run(ctx, func(
		pedidos repository.PedidoRepository,
		produtos repository.ProdutoRepository,
		movs repository.MovimentacaoRepository,
		clientes repository.ClienteRepository,
	) error {
		itensAtuais, err := pedidos.ListItens(ctx, pedido.ID)
		if err != nil {
			return err
		}

		// Fase 1: desfaz o efeito do estado antigo.
		if statusAntigo == entity.PedidoVendido {
			if err := estornarEstoque(ctx, produtos, movs, pedido.EmpresaID, pedido.NumeroPedido, itensAtuais); err != nil {
				return err
			}
		}

		itensFinais = itensAtuais
		if in.Itens != nil {
			if err := pedidos.DeleteItens(ctx, pedido.ID); err != nil {
				return err
			}
			itensFinais, err = montarItensVenda(ctx, produtos, pedido.EmpresaID, pedido.ID, in.Itens)
			if err != nil {
				return err
			}
			for _, item := range itensFinais {
				if err := pedidos.CreateItem(ctx, item); err != nil {
					return err
				}
			}
		}
		pedido.ValorTotal = somarItens(itensFinais, pedido.Frete)

		// Fase 2: aplica o efeito do estado novo.
		if novoStatus == entity.PedidoVendido {
			if err := baixarEstoque(ctx, produtos, movs, pedido.EmpresaID, pedido.NumeroPedido, itensFinais); err != nil {
				return err
			}
			if err := clientes.MarcarPrimeiraCompra(ctx, pedido.ClienteID); err != nil {
				return err
			}
		}

		if novoStatus != statusAntigo {
			if err := pedidos.CreateHistorico(ctx, &entity.HistoricoPedido{
				ID:        uuid.New().String(),
				PedidoID:  pedido.ID,
				Descricao: fmt.Sprintf("Status alterado de %s para %s", statusAntigo, novoStatus),
				CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
		}
		pedido.Status = novoStatus
		pedido.UpdatedAt = time.Now()
		return pedidos.Update(ctx, pedido)
	})
	if err != nil {
		return nil, err
	}

	resp := toPedidoResponse(pedido, itensFinais)
	return &resp, nil
}

// DeleteVenda exclui o pedido e as linhas; se estava VENDIDO, devolve as
// quantidades ao estoque antes de apagar.
func (uc *VendasUseCase) DeleteVenda(ctx context.Context, sess tenant.Contexto, id string) error {
	pedido, _, err := uc.carregarPedido(ctx, sess, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		pedidos repository.PedidoRepository,
		produtos repository.ProdutoRepository,
		movs repository.MovimentacaoRepository,
		clientes repository.ClienteRepository,
	) error {
		itens, err := pedidos.ListItens(ctx, pedido.ID)
		if err != nil {
			return err
		}
		if pedido.Status == entity.PedidoVendido {
			if err := estornarEstoque(ctx, produtos, movs, pedido.EmpresaID, pedido.NumeroPedido, itens); err != nil {
				return err
			}
		}
		if err := pedidos.DeleteItens(ctx, pedido.ID); err != nil {
			return err
		}
		return pedidos.Delete(ctx, pedido.ID, pedido.EmpresaID)
	})
}

// Summary resumo por status do escopo; sempre devolve os quatro status,
// zerados quando ausentes.
func (uc *VendasUseCase) Summary(ctx context.Context, sess tenant.Contexto, filtro FiltroListagem) (*dto.VendasSummaryResponse, error) {
	repoFiltro, err := uc.montarFiltro(ctx, sess, filtro)
	if err != nil {
		return nil, err
	}
	rows, err := uc.pedidoRepo.SummaryPorStatus(ctx, repoFiltro)
	if err != nil {
		return nil, err
	}
	resp := &dto.VendasSummaryResponse{
		Vendido:   dto.StatusSummaryEntry{Total: decimal.Zero},
		Orcamento: dto.StatusSummaryEntry{Total: decimal.Zero},
		Recusado:  dto.StatusSummaryEntry{Total: decimal.Zero},
		Pendente:  dto.StatusSummaryEntry{Total: decimal.Zero},
	}
	for _, row := range rows {
		entry := dto.StatusSummaryEntry{Count: row.Count, Total: row.Total}
		switch row.Status {
		case entity.PedidoVendido:
			resp.Vendido = entry
		case entity.PedidoOrcamento:
			resp.Orcamento = entry
		case entity.PedidoRecusado:
			resp.Recusado = entry
		case entity.PedidoPendente:
			resp.Pendente = entry
		}
	}
	return resp, nil
}

// carregarPedido busca o pedido e as linhas, validando o acesso da sessão
// à empresa dona. Pedido fora da organização devolve ErrForbidden.
func (uc *VendasUseCase) carregarPedido(ctx context.Context, sess tenant.Contexto, id string) (*entity.Pedido, []*entity.ItemPedido, error) {
	pedido, err := uc.pedidoRepo.GetByID(ctx, id, "")
	if err != nil {
		return nil, nil, err
	}
	if pedido == nil {
		return nil, nil, domain.ErrNotFound
	}
	if err := uc.resolver.ValidarAcesso(ctx, sess, pedido.EmpresaID); err != nil {
		return nil, nil, err
	}
	itens, err := uc.pedidoRepo.ListItens(ctx, pedido.ID)
	if err != nil {
		return nil, nil, err
	}
	return pedido, itens, nil
}

func (uc *VendasUseCase) montarFiltro(ctx context.Context, sess tenant.Contexto, filtro FiltroListagem) (repository.FiltroPedidos, error) {
	empresaIDs, err := uc.resolver.EmpresasDoEscopo(ctx, sess, filtro.EmpresaID)
	if err != nil {
		return repository.FiltroPedidos{}, err
	}
	out := repository.FiltroPedidos{
		EmpresaIDs: empresaIDs,
		UsuarioID:  filtro.UsuarioID,
		DataInicio: filtro.DataInicio,
		DataFim:    filtro.DataFim,
	}
	if filtro.Status != "" {
		status, ok := entity.ParseStatusPedido(filtro.Status)
		if !ok {
			return repository.FiltroPedidos{}, domain.ErrInvalidInput
		}
		out.Status = status
	}
	return out, nil
}

// montarItensVenda constrói as linhas da venda rápida a partir do cadastro
// dos produtos (preço e descrição vêm de lá, não do chamador).
func montarItensVenda(
	ctx context.Context,
	produtos repository.ProdutoRepository,
	empresaID, pedidoID string,
	itens []dto.ItemVendaRequest,
) ([]*entity.ItemPedido, error) {
	out := make([]*entity.ItemPedido, 0, len(itens))
	for _, it := range itens {
		if it.ProdutoID == "" || it.Quantidade <= 0 {
			return nil, domain.ErrInvalidInput
		}
		produto, err := produtos.GetByID(ctx, it.ProdutoID)
		if err != nil {
			return nil, err
		}
		if produto == nil || produto.EmpresaID != empresaID {
			return nil, domain.ErrNotFound
		}
		produtoID := produto.ID
		out = append(out, &entity.ItemPedido{
			ID:            uuid.New().String(),
			PedidoID:      pedidoID,
			ProdutoID:     &produtoID,
			Descricao:     produto.Nome,
			Tipo:          produto.Tipo,
			Quantidade:    it.Quantidade,
			PrecoUnitario: produto.Preco,
			Subtotal:      produto.Preco.Mul(decimal.NewFromInt(int64(it.Quantidade))),
		})
	}
	return out, nil
}

func somarItens(itens []*entity.ItemPedido, frete decimal.Decimal) decimal.Decimal {
	total := frete
	for _, item := range itens {
		total = total.Add(item.Subtotal)
	}
	return total
}

func toPedidoResponse(pedido *entity.Pedido, itens []*entity.ItemPedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:                    pedido.ID,
		EmpresaID:             pedido.EmpresaID,
		NumeroPedido:          pedido.NumeroPedido,
		ClienteID:             pedido.ClienteID,
		UsuarioID:             pedido.UsuarioID,
		Status:                string(pedido.Status),
		ValorTotal:            pedido.ValorTotal,
		Frete:                 pedido.Frete,
		DataPedido:            pedido.DataPedido,
		ValidadeOrcamento:     pedido.ValidadeOrcamento,
		DataEntrega:           pedido.DataEntrega,
		InformacoesNegociacao: pedido.InformacoesNegociacao,
		ObservacoesNF:         pedido.ObservacoesNF,
		CreatedAt:             pedido.CreatedAt,
	}
	for _, item := range itens {
		resp.Itens = append(resp.Itens, dto.ItemPedidoResponse{
			ID:            item.ID,
			ProdutoID:     item.ProdutoID,
			Descricao:     item.Descricao,
			Tipo:          string(item.Tipo),
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.Subtotal,
		})
	}
	return resp
}
