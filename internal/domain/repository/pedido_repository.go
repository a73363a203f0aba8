package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// FiltroPedidos filtros das listagens de pedidos.
type FiltroPedidos struct {
	EmpresaIDs []string
	UsuarioID  string
	Status     entity.StatusPedido
	DataInicio *time.Time
	DataFim    *time.Time
}

// PedidoComNomes pedido com os nomes do cliente e do vendedor (listagens).
type PedidoComNomes struct {
	Pedido      entity.Pedido
	ClienteNome string
	UsuarioNome string
}

// StatusSummary contagem e soma por status de pedido.
type StatusSummary struct {
	Status entity.StatusPedido
	Count  int
	Total  decimal.Decimal
}

// PedidoRepository porto de persistência para Pedido e seus agregados
// (itens e histórico, que vivem e morrem com o pai).
type PedidoRepository interface {
	Create(ctx context.Context, pedido *entity.Pedido) error
	GetByID(ctx context.Context, id, empresaID string) (*entity.Pedido, error)
	// GetByNumero resolve a unicidade (empresaId, numeroPedido).
	GetByNumero(ctx context.Context, empresaID string, numero int) (*entity.Pedido, error)
	// ProximoNumero devolve max(numeroPedido)+1 da empresa (1 se não houver).
	ProximoNumero(ctx context.Context, empresaID string) (int, error)
	Update(ctx context.Context, pedido *entity.Pedido) error
	Delete(ctx context.Context, id, empresaID string) error
	List(ctx context.Context, filtro FiltroPedidos) ([]PedidoComNomes, error)
	SummaryPorStatus(ctx context.Context, filtro FiltroPedidos) ([]StatusSummary, error)

	CreateItem(ctx context.Context, item *entity.ItemPedido) error
	ListItens(ctx context.Context, pedidoID string) ([]*entity.ItemPedido, error)
	DeleteItens(ctx context.Context, pedidoID string) error
	CreateHistorico(ctx context.Context, hist *entity.HistoricoPedido) error
}
