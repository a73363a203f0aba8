package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPedidoRequest linha de pedido na criação/atualização. ProdutoID é
// opcional (item livre); Tipo decide se há efeito de estoque.
type ItemPedidoRequest struct {
	ProdutoID     *string         `json:"produtoId"`
	Descricao     string          `json:"descricao"`
	Tipo          string          `json:"tipo"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"precoUnitario"`
}

// CreatePedidoRequest criação completa de pedido (POST /api/pedidos).
// NumeroPedido vem do chamador e deve ser único na empresa.
type CreatePedidoRequest struct {
	EmpresaID             string              `json:"empresaId"`
	NumeroPedido          int                 `json:"numeroPedido"`
	ClienteID             string              `json:"clienteId"`
	Status                string              `json:"status"`
	ValidadeOrcamento     *time.Time          `json:"validadeOrcamento"`
	DataEntrega           *time.Time          `json:"dataEntrega"`
	Frete                 decimal.Decimal     `json:"frete"`
	InformacoesNegociacao string              `json:"informacoesNegociacao"`
	ObservacoesNF         string              `json:"observacoesNF"`
	Itens                 []ItemPedidoRequest `json:"itens"`
}

// ItemVendaRequest linha simplificada da venda rápida: o preço vem do
// cadastro do produto.
type ItemVendaRequest struct {
	ProdutoID  string `json:"produtoId"`
	Quantidade int    `json:"quantidade"`
}

// CreateVendaRequest venda rápida (POST /api/vendas): numeroPedido é
// sequencial automático e o status inicial é ORCAMENTO.
type CreateVendaRequest struct {
	ClienteID   string             `json:"clienteId"`
	Itens       []ItemVendaRequest `json:"itens"`
	Observacoes string             `json:"observacoes"`
}

// UpdateVendaRequest atualização de pedido; Itens não-nulo substitui todas
// as linhas (com estorno e nova baixa de estoque).
type UpdateVendaRequest struct {
	ClienteID   *string            `json:"clienteId"`
	Status      *string            `json:"status"`
	Observacoes *string            `json:"observacoes"`
	Itens       []ItemVendaRequest `json:"itens"`
}

// ItemPedidoResponse linha de pedido na saída.
type ItemPedidoResponse struct {
	ID            string          `json:"id"`
	ProdutoID     *string         `json:"produtoId"`
	Descricao     string          `json:"descricao"`
	Tipo          string          `json:"tipo"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"precoUnitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// PedidoResponse saída de pedido. ClienteNome/UsuarioNome preenchidos nas
// listagens; Itens apenas no detalhe e em /api/vendas.
type PedidoResponse struct {
	ID                    string               `json:"id"`
	EmpresaID             string               `json:"empresaId"`
	NumeroPedido          int                  `json:"numeroPedido"`
	ClienteID             string               `json:"clienteId"`
	ClienteNome           string               `json:"clienteNome,omitempty"`
	UsuarioID             string               `json:"usuarioId"`
	UsuarioNome           string               `json:"usuarioNome,omitempty"`
	Status                string               `json:"status"`
	ValorTotal            decimal.Decimal      `json:"valorTotal"`
	Frete                 decimal.Decimal      `json:"frete"`
	DataPedido            time.Time            `json:"dataPedido"`
	ValidadeOrcamento     *time.Time           `json:"validadeOrcamento,omitempty"`
	DataEntrega           *time.Time           `json:"dataEntrega,omitempty"`
	InformacoesNegociacao string               `json:"informacoesNegociacao,omitempty"`
	ObservacoesNF         string               `json:"observacoesNF,omitempty"`
	Itens                 []ItemPedidoResponse `json:"itens,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
}

// StatusSummaryEntry contagem e soma de um status.
type StatusSummaryEntry struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// VendasSummaryResponse resumo por status; sempre traz os quatro status,
// zerados quando não há pedidos.
type VendasSummaryResponse struct {
	Vendido   StatusSummaryEntry `json:"VENDIDO"`
	Orcamento StatusSummaryEntry `json:"ORCAMENTO"`
	Recusado  StatusSummaryEntry `json:"RECUSADO"`
	Pendente  StatusSummaryEntry `json:"PENDENTE"`
}
