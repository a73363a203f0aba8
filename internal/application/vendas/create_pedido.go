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

// CreatePedidoUseCase cria um pedido completo com número explícito:
// valida unicidade do número, grava pedido, itens e histórico e aplica a
// baixa de estoque quando o status é VENDIDO, tudo em uma transação.
type CreatePedidoUseCase struct {
	txRunner    TxRunner
	resolver    *tenant.Resolver
	clienteRepo repository.ClienteRepository
}

// NewCreatePedidoUseCase constrói o caso de uso.
func NewCreatePedidoUseCase(txRunner TxRunner, resolver *tenant.Resolver, clienteRepo repository.ClienteRepository) *CreatePedidoUseCase {
	return &CreatePedidoUseCase{txRunner: txRunner, resolver: resolver, clienteRepo: clienteRepo}
}

// Create executa a criação. Número já usado na empresa devolve
// ErrNumeroPedidoEmUso sem deixar nenhuma linha parcial.
func (uc *CreatePedidoUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if err := validarCreatePedido(in); err != nil {
		return nil, err
	}

	// Barreira de tenant: a empresa alvo precisa ser da organização da sessão.
	if err := uc.resolver.ValidarAcesso(ctx, sess, in.EmpresaID); err != nil {
		return nil, err
	}

	cliente, err := uc.clienteRepo.GetByID(ctx, in.ClienteID, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}

	status, _ := entity.ParseStatusPedido(in.Status)
	now := time.Now()

	pedido := &entity.Pedido{
		ID:                    uuid.New().String(),
		EmpresaID:             in.EmpresaID,
		ClienteID:             in.ClienteID,
		UsuarioID:             sess.UserID,
		NumeroPedido:          in.NumeroPedido,
		Status:                status,
		Frete:                 in.Frete,
		DataPedido:            now,
		ValidadeOrcamento:     in.ValidadeOrcamento,
		DataEntrega:           in.DataEntrega,
		InformacoesNegociacao: in.InformacoesNegociacao,
		ObservacoesNF:         in.ObservacoesNF,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	itens := make([]*entity.ItemPedido, 0, len(in.Itens))
	valorTotal := in.Frete
	for _, it := range in.Itens {
		tipo, _ := entity.ParseTipoItem(it.Tipo)
		subtotal := it.PrecoUnitario.Mul(decimal.NewFromInt(int64(it.Quantidade)))
		valorTotal = valorTotal.Add(subtotal)
		itens = append(itens, &entity.ItemPedido{
			ID:            uuid.New().String(),
			PedidoID:      pedido.ID,
			ProdutoID:     it.ProdutoID,
			Descricao:     it.Descricao,
			Tipo:          tipo,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      subtotal,
		})
	}
	pedido.ValorTotal = valorTotal

	err = uc.txRunner.Run(ctx, func(
		pedidos repository.PedidoRepository,
		produtos repository.ProdutoRepository,
		movs repository.MovimentacaoRepository,
		clientes repository.ClienteRepository,
	) error {
		existente, err := pedidos.GetByNumero(ctx, in.EmpresaID, in.NumeroPedido)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrNumeroPedidoEmUso
		}

		if err := pedidos.Create(ctx, pedido); err != nil {
			return err
		}
		if err := pedidos.CreateHistorico(ctx, &entity.HistoricoPedido{
			ID:        uuid.New().String(),
			PedidoID:  pedido.ID,
			Descricao: fmt.Sprintf("Pedido criado com status: %s", status),
			CreatedAt: now,
		}); err != nil {
			return err
		}
		for _, item := range itens {
			if err := pedidos.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		if status == entity.PedidoVendido {
			if err := baixarEstoque(ctx, produtos, movs, in.EmpresaID, pedido.NumeroPedido, itens); err != nil {
				return err
			}
			if err := clientes.MarcarPrimeiraCompra(ctx, in.ClienteID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toPedidoResponse(pedido, itens)
	return &resp, nil
}

func validarCreatePedido(in dto.CreatePedidoRequest) error {
	if in.EmpresaID == "" || in.ClienteID == "" || in.NumeroPedido <= 0 || len(in.Itens) == 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := entity.ParseStatusPedido(in.Status); !ok {
		return domain.ErrInvalidInput
	}
	if in.Frete.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, it := range in.Itens {
		if it.Descricao == "" || it.Quantidade <= 0 || it.PrecoUnitario.IsNegative() {
			return domain.ErrInvalidInput
		}
		if _, ok := entity.ParseTipoItem(it.Tipo); !ok {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
