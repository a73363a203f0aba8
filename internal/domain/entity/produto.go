package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoItem distingue produto físico (controla estoque) de serviço.
type TipoItem string

const (
	ItemProduto TipoItem = "PRODUTO"
	ItemServico TipoItem = "SERVICO"
)

// ParseTipoItem valida a string vinda da API.
func ParseTipoItem(s string) (TipoItem, bool) {
	switch TipoItem(s) {
	case ItemProduto, ItemServico:
		return TipoItem(s), true
	}
	return "", false
}

// Produto item vendável da empresa. QuantidadeEstoque só se aplica a
// tipo PRODUTO; serviços mantêm zero e nunca geram movimentação.
type Produto struct {
	ID                string
	EmpresaID         string
	Nome              string
	Descricao         string
	SKU               string // único por empresa entre produtos ativos
	Tipo              TipoItem
	Preco             decimal.Decimal
	Custo             decimal.Decimal
	QuantidadeEstoque int
	EstoqueMinimo     int
	Ativo             bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TipoMovimentacao sentido de um lançamento no razão de estoque.
type TipoMovimentacao string

const (
	MovimentacaoEntrada TipoMovimentacao = "ENTRADA"
	MovimentacaoSaida   TipoMovimentacao = "SAIDA"
)

// MovimentacaoEstoque lançamento imutável do razão de estoque. Toda baixa ou
// estorno disparado por venda referencia o pedido na observação.
type MovimentacaoEstoque struct {
	ID         string
	EmpresaID  string
	ProdutoID  string
	Tipo       TipoMovimentacao
	Quantidade int
	Observacao string
	CreatedAt  time.Time
}
