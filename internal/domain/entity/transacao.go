package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoTransacao natureza do lançamento financeiro.
type TipoTransacao string

const (
	TransacaoReceita TipoTransacao = "RECEITA"
	TransacaoDespesa TipoTransacao = "DESPESA"
)

// ParseTipoTransacao valida a string vinda da API.
func ParseTipoTransacao(s string) (TipoTransacao, bool) {
	switch TipoTransacao(s) {
	case TransacaoReceita, TransacaoDespesa:
		return TipoTransacao(s), true
	}
	return "", false
}

// StatusTransacao situação de cobrança/pagamento.
type StatusTransacao string

const (
	TransacaoPendente  StatusTransacao = "PENDENTE"
	TransacaoPaga      StatusTransacao = "PAGA"
	TransacaoAtrasada  StatusTransacao = "ATRASADA"
	TransacaoCancelada StatusTransacao = "CANCELADA"
)

// ParseStatusTransacao valida a string vinda da API.
func ParseStatusTransacao(s string) (StatusTransacao, bool) {
	switch StatusTransacao(s) {
	case TransacaoPendente, TransacaoPaga, TransacaoAtrasada, TransacaoCancelada:
		return StatusTransacao(s), true
	}
	return "", false
}

// TransacaoFinanceira conta a receber ou a pagar da empresa.
type TransacaoFinanceira struct {
	ID             string
	EmpresaID      string
	ClienteID      *string
	Descricao      string
	Valor          decimal.Decimal
	Tipo           TipoTransacao
	Status         StatusTransacao
	Categoria      string
	DataVencimento time.Time
	DataPagamento  *time.Time
	Observacoes    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
