package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// FiltroTransacoes filtros e paginação da listagem financeira.
type FiltroTransacoes struct {
	EmpresaID string
	Tipo      entity.TipoTransacao
	Status    entity.StatusTransacao
	Limit     int
	Offset    int
}

// TransacaoComCliente transação com o nome do cliente vinculado (se houver).
type TransacaoComCliente struct {
	Transacao   entity.TransacaoFinanceira
	ClienteNome *string
}

// TransacaoRepository porto de persistência para TransacaoFinanceira.
type TransacaoRepository interface {
	Create(ctx context.Context, t *entity.TransacaoFinanceira) error
	GetByID(ctx context.Context, id, empresaID string) (*entity.TransacaoFinanceira, error)
	Update(ctx context.Context, t *entity.TransacaoFinanceira) error
	Delete(ctx context.Context, id, empresaID string) error
	List(ctx context.Context, filtro FiltroTransacoes) ([]TransacaoComCliente, error)
	Count(ctx context.Context, filtro FiltroTransacoes) (int, error)

	// SumPendentes soma pendentes do tipo dado (a receber / a pagar).
	SumPendentes(ctx context.Context, empresaID string, tipo entity.TipoTransacao) (decimal.Decimal, error)
	// SumPagasNoPeriodo soma pagas do tipo dado com dataPagamento na janela.
	SumPagasNoPeriodo(ctx context.Context, empresaID string, tipo entity.TipoTransacao, de, ate time.Time) (decimal.Decimal, error)
	// CountVencendo conta pendentes com vencimento dentro da janela.
	CountVencendo(ctx context.Context, empresaID string, de, ate time.Time) (int, error)
	// ListPorVencimento devolve as transações com vencimento na janela
	// (dashboard calcula entradas/saídas e fluxo mensal em memória).
	ListPorVencimento(ctx context.Context, empresaID string, de, ate time.Time) ([]*entity.TransacaoFinanceira, error)
}
