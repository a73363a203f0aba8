package vendas

import (
	"context"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// TxRunner executa fn com repositórios atados a uma mesma transação.
// Qualquer erro de fn aborta o conjunto inteiro (pedido, itens, histórico,
// estoque e movimentações: tudo ou nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		pedidos repository.PedidoRepository,
		produtos repository.ProdutoRepository,
		movs repository.MovimentacaoRepository,
		clientes repository.ClienteRepository,
	) error) error
}

// PedidoPDFGenerator gera a representação em PDF de um pedido/orçamento.
type PedidoPDFGenerator interface {
	GerarPedidoPDF(
		ctx context.Context,
		pedido *entity.Pedido,
		empresa *entity.Empresa,
		cliente *entity.Cliente,
		itens []*entity.ItemPedido,
	) ([]byte, error)
}
