package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransacaoRequest lançamento financeiro (receita ou despesa).
type CreateTransacaoRequest struct {
	Descricao      string          `json:"descricao"`
	Valor          decimal.Decimal `json:"valor"`
	Tipo           string          `json:"tipo"`
	Status         string          `json:"status"`
	Categoria      string          `json:"categoria"`
	DataVencimento *time.Time      `json:"dataVencimento"`
	DataPagamento  *time.Time      `json:"dataPagamento"`
	Observacoes    string          `json:"observacoes"`
	ClienteID      *string         `json:"clienteId"`
}

// UpdateTransacaoRequest patch parcial de transação.
type UpdateTransacaoRequest struct {
	Descricao      *string          `json:"descricao"`
	Valor          *decimal.Decimal `json:"valor"`
	Status         *string          `json:"status"`
	Categoria      *string          `json:"categoria"`
	DataVencimento *time.Time       `json:"dataVencimento"`
	DataPagamento  *time.Time       `json:"dataPagamento"`
	Observacoes    *string          `json:"observacoes"`
}

// ClienteRef referência mínima ao cliente vinculado.
type ClienteRef struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// TransacaoResponse saída de transação financeira.
type TransacaoResponse struct {
	ID             string          `json:"id"`
	EmpresaID      string          `json:"empresaId"`
	Descricao      string          `json:"descricao"`
	Valor          decimal.Decimal `json:"valor"`
	Tipo           string          `json:"tipo"`
	Status         string          `json:"status"`
	Categoria      string          `json:"categoria,omitempty"`
	DataVencimento time.Time       `json:"dataVencimento"`
	DataPagamento  *time.Time      `json:"dataPagamento,omitempty"`
	Observacoes    string          `json:"observacoes,omitempty"`
	Cliente        *ClienteRef     `json:"cliente,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TransacoesPageResponse página de transações.
type TransacoesPageResponse struct {
	Transacoes []TransacaoResponse `json:"transacoes"`
	Pagination Pagination          `json:"pagination"`
}

// FinanceiroSummaryResponse visão rápida do financeiro.
type FinanceiroSummaryResponse struct {
	AReceber      decimal.Decimal `json:"aReceber"`
	APagar        decimal.Decimal `json:"aPagar"`
	SaldoMes      decimal.Decimal `json:"saldoMes"`
	ContasVencendo int            `json:"contasVencendo"`
}

// FluxoMensalEntry entradas e saídas de um mês do fluxo.
type FluxoMensalEntry struct {
	Mes      string          `json:"mes"` // AAAA-MM
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
}

// DashboardFinanceiroResponse dados completos do dashboard financeiro.
type DashboardFinanceiroResponse struct {
	EntradasMes       decimal.Decimal    `json:"entradasMes"`
	EntradasPendentes decimal.Decimal    `json:"entradasPendentes"`
	SaidasMes         decimal.Decimal    `json:"saidasMes"`
	SaidasPendentes   decimal.Decimal    `json:"saidasPendentes"`
	Saldo             decimal.Decimal    `json:"saldo"`
	ContasVencendo    int                `json:"contasVencendo"`
	FluxoMensal       []FluxoMensalEntry `json:"fluxoMensal"`
}
