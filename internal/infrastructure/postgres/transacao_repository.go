package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ repository.TransacaoRepository = (*TransacaoRepo)(nil)

const transacaoCols = `id, empresa_id, cliente_id, descricao, valor, tipo, status, categoria, data_vencimento, data_pagamento, observacoes, created_at, updated_at`

// TransacaoRepo implementação do porto TransacaoRepository sobre
// PostgreSQL (usável com pool ou tx).
type TransacaoRepo struct {
	q Querier
}

// NewTransacaoRepository constrói o adaptador de persistência financeira.
func NewTransacaoRepository(q Querier) *TransacaoRepo {
	return &TransacaoRepo{q: q}
}

// Create persiste um lançamento.
func (r *TransacaoRepo) Create(ctx context.Context, t *entity.TransacaoFinanceira) error {
	query := `
		INSERT INTO transacoes_financeiras (` + transacaoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.EmpresaID, t.ClienteID, t.Descricao, t.Valor, string(t.Tipo), string(t.Status),
		t.Categoria, t.DataVencimento, t.DataPagamento, t.Observacoes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transacao: %w", err)
	}
	return nil
}

// GetByID busca o lançamento dentro da empresa; nil quando não existe.
func (r *TransacaoRepo) GetByID(ctx context.Context, id, empresaID string) (*entity.TransacaoFinanceira, error) {
	query := `SELECT ` + transacaoCols + ` FROM transacoes_financeiras WHERE id = $1 AND empresa_id = $2`
	var t entity.TransacaoFinanceira
	var tipo, status string
	err := r.q.QueryRow(ctx, query, id, empresaID).Scan(
		&t.ID, &t.EmpresaID, &t.ClienteID, &t.Descricao, &t.Valor, &tipo, &status,
		&t.Categoria, &t.DataVencimento, &t.DataPagamento, &t.Observacoes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transacao: %w", err)
	}
	t.Tipo = entity.TipoTransacao(tipo)
	t.Status = entity.StatusTransacao(status)
	return &t, nil
}

// Update atualiza o lançamento.
func (r *TransacaoRepo) Update(ctx context.Context, t *entity.TransacaoFinanceira) error {
	query := `
		UPDATE transacoes_financeiras SET descricao = $3, valor = $4, status = $5, categoria = $6,
			data_vencimento = $7, data_pagamento = $8, observacoes = $9, updated_at = $10
		WHERE id = $1 AND empresa_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.EmpresaID, t.Descricao, t.Valor, string(t.Status), t.Categoria,
		t.DataVencimento, t.DataPagamento, t.Observacoes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transacao: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o lançamento.
func (r *TransacaoRepo) Delete(ctx context.Context, id, empresaID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transacoes_financeiras WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete transacao: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List página de lançamentos com o nome do cliente vinculado, vencimento
// mais recente primeiro.
func (r *TransacaoRepo) List(ctx context.Context, filtro repository.FiltroTransacoes) ([]repository.TransacaoComCliente, error) {
	query := `
		SELECT t.id, t.empresa_id, t.cliente_id, t.descricao, t.valor, t.tipo, t.status, t.categoria,
			t.data_vencimento, t.data_pagamento, t.observacoes, t.created_at, t.updated_at, c.nome
		FROM transacoes_financeiras t
		LEFT JOIN clientes c ON c.id = t.cliente_id
		WHERE t.empresa_id = $1`
	args := []any{filtro.EmpresaID}
	query, args = aplicarFiltroTransacoes(query, args, filtro, "t.")
	n := len(args) + 1
	query += fmt.Sprintf(" ORDER BY t.data_vencimento DESC LIMIT $%d OFFSET $%d", n, n+1)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transacoes: %w", err)
	}
	defer rows.Close()

	var out []repository.TransacaoComCliente
	for rows.Next() {
		var row repository.TransacaoComCliente
		var tipo, status string
		err := rows.Scan(
			&row.Transacao.ID, &row.Transacao.EmpresaID, &row.Transacao.ClienteID, &row.Transacao.Descricao,
			&row.Transacao.Valor, &tipo, &status, &row.Transacao.Categoria,
			&row.Transacao.DataVencimento, &row.Transacao.DataPagamento, &row.Transacao.Observacoes,
			&row.Transacao.CreatedAt, &row.Transacao.UpdatedAt, &row.ClienteNome,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transacao: %w", err)
		}
		row.Transacao.Tipo = entity.TipoTransacao(tipo)
		row.Transacao.Status = entity.StatusTransacao(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count total de lançamentos do filtro (paginação).
func (r *TransacaoRepo) Count(ctx context.Context, filtro repository.FiltroTransacoes) (int, error) {
	query := `SELECT count(*) FROM transacoes_financeiras WHERE empresa_id = $1`
	args := []any{filtro.EmpresaID}
	query, args = aplicarFiltroTransacoes(query, args, filtro, "")

	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transacoes: %w", err)
	}
	return count, nil
}

// SumPendentes soma pendentes do tipo dado (a receber / a pagar).
func (r *TransacaoRepo) SumPendentes(ctx context.Context, empresaID string, tipo entity.TipoTransacao) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(sum(valor), 0) FROM transacoes_financeiras
		WHERE empresa_id = $1 AND tipo = $2 AND status = 'PENDENTE'`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, empresaID, string(tipo)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum pendentes: %w", err)
	}
	return total, nil
}

// SumPagasNoPeriodo soma pagas do tipo dado com pagamento na janela.
func (r *TransacaoRepo) SumPagasNoPeriodo(ctx context.Context, empresaID string, tipo entity.TipoTransacao, de, ate time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(sum(valor), 0) FROM transacoes_financeiras
		WHERE empresa_id = $1 AND tipo = $2 AND status = 'PAGA'
			AND data_pagamento >= $3 AND data_pagamento < $4`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, empresaID, string(tipo), de, ate).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum pagas: %w", err)
	}
	return total, nil
}

// CountVencendo pendentes com vencimento dentro da janela.
func (r *TransacaoRepo) CountVencendo(ctx context.Context, empresaID string, de, ate time.Time) (int, error) {
	query := `
		SELECT count(*) FROM transacoes_financeiras
		WHERE empresa_id = $1 AND status = 'PENDENTE' AND data_vencimento >= $2 AND data_vencimento <= $3`
	var count int
	if err := r.q.QueryRow(ctx, query, empresaID, de, ate).Scan(&count); err != nil {
		return 0, fmt.Errorf("count vencendo: %w", err)
	}
	return count, nil
}

// ListPorVencimento lançamentos com vencimento na janela (dashboard).
func (r *TransacaoRepo) ListPorVencimento(ctx context.Context, empresaID string, de, ate time.Time) ([]*entity.TransacaoFinanceira, error) {
	query := `
		SELECT ` + transacaoCols + ` FROM transacoes_financeiras
		WHERE empresa_id = $1 AND data_vencimento >= $2 AND data_vencimento < $3`
	rows, err := r.q.Query(ctx, query, empresaID, de, ate)
	if err != nil {
		return nil, fmt.Errorf("list por vencimento: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransacaoFinanceira
	for rows.Next() {
		var t entity.TransacaoFinanceira
		var tipo, status string
		err := rows.Scan(
			&t.ID, &t.EmpresaID, &t.ClienteID, &t.Descricao, &t.Valor, &tipo, &status,
			&t.Categoria, &t.DataVencimento, &t.DataPagamento, &t.Observacoes, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transacao: %w", err)
		}
		t.Tipo = entity.TipoTransacao(tipo)
		t.Status = entity.StatusTransacao(status)
		out = append(out, &t)
	}
	return out, rows.Err()
}

func aplicarFiltroTransacoes(query string, args []any, filtro repository.FiltroTransacoes, prefix string) (string, []any) {
	n := len(args) + 1
	if filtro.Tipo != "" {
		query += fmt.Sprintf(" AND %stipo = $%d", prefix, n)
		args = append(args, string(filtro.Tipo))
		n++
	}
	if filtro.Status != "" {
		query += fmt.Sprintf(" AND %sstatus = $%d", prefix, n)
		args = append(args, string(filtro.Status))
	}
	return query, args
}
