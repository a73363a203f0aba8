package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPedido ciclo de vida do pedido. ORCAMENTO pode virar VENDIDO ou
// RECUSADO; somente VENDIDO produz efeitos de estoque e marca a primeira
// compra do cliente.
type StatusPedido string

const (
	PedidoOrcamento StatusPedido = "ORCAMENTO"
	PedidoVendido   StatusPedido = "VENDIDO"
	PedidoRecusado  StatusPedido = "RECUSADO"
	PedidoPendente  StatusPedido = "PENDENTE"
)

// ParseStatusPedido valida a string vinda da API.
func ParseStatusPedido(s string) (StatusPedido, bool) {
	switch StatusPedido(s) {
	case PedidoOrcamento, PedidoVendido, PedidoRecusado, PedidoPendente:
		return StatusPedido(s), true
	}
	return "", false
}

// Pedido pedido de venda/orçamento. NumeroPedido é sequencial e único por
// empresa; ValorTotal = Σ subtotais dos itens + frete.
type Pedido struct {
	ID                    string
	EmpresaID             string
	ClienteID             string
	UsuarioID             string
	NumeroPedido          int
	Status                StatusPedido
	ValorTotal            decimal.Decimal
	Frete                 decimal.Decimal
	DataPedido            time.Time
	ValidadeOrcamento     *time.Time
	DataEntrega           *time.Time
	InformacoesNegociacao string
	ObservacoesNF         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ItemPedido linha do pedido; vive e morre com o pai. ProdutoID é nil para
// itens livres (descrição avulsa) e para serviços sem cadastro.
type ItemPedido struct {
	ID            string
	PedidoID      string
	ProdutoID     *string
	Descricao     string
	Tipo          TipoItem
	Quantidade    int
	PrecoUnitario decimal.Decimal
	Subtotal      decimal.Decimal
}

// HistoricoPedido trilha de eventos do pedido (criação, mudança de status).
type HistoricoPedido struct {
	ID        string
	PedidoID  string
	Descricao string
	CreatedAt time.Time
}
