package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProdutoRequest cadastro de produto ou serviço. EmpresaID é opcional:
// quando presente, o resolver de tenant valida o acesso; ausente, usa a
// empresa da sessão. SKU vazio é autogerado (PROD####/SERV####).
type CreateProdutoRequest struct {
	EmpresaID         string          `json:"empresaId"`
	Nome              string          `json:"nome"`
	Descricao         string          `json:"descricao"`
	SKU               string          `json:"sku"`
	Tipo              string          `json:"tipo"`
	Preco             decimal.Decimal `json:"preco"`
	Custo             decimal.Decimal `json:"custo"`
	QuantidadeEstoque int             `json:"quantidadeEstoque"`
	EstoqueMinimo     int             `json:"estoqueMinimo"`
}

// UpdateProdutoRequest patch parcial de produto. Estoque não é editável por
// aqui; muda apenas via movimentações.
type UpdateProdutoRequest struct {
	Nome          *string          `json:"nome"`
	Descricao     *string          `json:"descricao"`
	Preco         *decimal.Decimal `json:"preco"`
	Custo         *decimal.Decimal `json:"custo"`
	EstoqueMinimo *int             `json:"estoqueMinimo"`
	Ativo         *bool            `json:"ativo"`
}

// ProdutoResponse saída de produto.
type ProdutoResponse struct {
	ID                string          `json:"id"`
	EmpresaID         string          `json:"empresaId"`
	Nome              string          `json:"nome"`
	Descricao         string          `json:"descricao,omitempty"`
	SKU               string          `json:"sku"`
	Tipo              string          `json:"tipo"`
	Preco             decimal.Decimal `json:"preco"`
	Custo             decimal.Decimal `json:"custo"`
	QuantidadeEstoque int             `json:"quantidadeEstoque"`
	EstoqueMinimo     int             `json:"estoqueMinimo"`
	Ativo             bool            `json:"ativo"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// MetricasEstoqueResponse agregados do painel de estoque.
type MetricasEstoqueResponse struct {
	TotalProdutos        int             `json:"totalProdutos"`
	ValorEstoqueCusto    decimal.Decimal `json:"valorEstoqueCusto"`
	ValorEstoqueVenda    decimal.Decimal `json:"valorEstoqueVenda"`
	ProdutosEstoqueBaixo int             `json:"produtosEstoqueBaixo"`
	ProdutosSemEstoque   int             `json:"produtosSemEstoque"`
}
