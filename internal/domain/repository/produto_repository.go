package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// FiltroProdutos filtros da listagem org-wide de estoque.
type FiltroProdutos struct {
	EmpresaIDs []string
	Busca      string // nome ou SKU, case-insensitive
	Tipo       entity.TipoItem
	Limit      int
	Offset     int
}

// MetricasEstoque agregados do painel de estoque.
type MetricasEstoque struct {
	TotalProdutos       int
	ValorEstoqueCusto   decimal.Decimal
	ValorEstoqueVenda   decimal.Decimal
	ProdutosEstoqueBaixo int
	ProdutosSemEstoque  int
}

// ProdutoRepository porto de persistência para Produto.
type ProdutoRepository interface {
	Create(ctx context.Context, produto *entity.Produto) error
	GetByID(ctx context.Context, id string) (*entity.Produto, error)
	GetBySKU(ctx context.Context, empresaID, sku string) (*entity.Produto, error)
	Update(ctx context.Context, produto *entity.Produto) error
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Produto, error)
	List(ctx context.Context, filtro FiltroProdutos) ([]*entity.Produto, error)
	CountByEmpresa(ctx context.Context, empresaID string) (int, error)
	// AjustarEstoque aplica um delta relativo (negativo = baixa) no próprio
	// UPDATE, preservando atomicidade dentro da transação corrente.
	AjustarEstoque(ctx context.Context, produtoID string, delta int) error
	Metricas(ctx context.Context, empresaID string) (MetricasEstoque, error)
}

// MovimentacaoRepository porto do razão de estoque (append-only).
type MovimentacaoRepository interface {
	Create(ctx context.Context, mov *entity.MovimentacaoEstoque) error
}
