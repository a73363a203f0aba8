package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)
var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

const produtoCols = `id, empresa_id, nome, descricao, sku, tipo, preco, custo, quantidade_estoque, estoque_minimo, ativo, created_at, updated_at`

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// Create persiste um novo produto. SKU repetido na empresa vira ErrDuplicate.
func (r *ProdutoRepo) Create(ctx context.Context, p *entity.Produto) error {
	query := `
		INSERT INTO produtos (` + produtoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.Nome, p.Descricao, p.SKU, string(p.Tipo),
		p.Preco, p.Custo, p.QuantidadeEstoque, p.EstoqueMinimo, p.Ativo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID busca o produto por ID; nil quando não existe.
func (r *ProdutoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	return scanProdutoRow(r.q.QueryRow(ctx, `SELECT `+produtoCols+` FROM produtos WHERE id = $1`, id))
}

// GetBySKU busca o produto pelo SKU dentro da empresa.
func (r *ProdutoRepo) GetBySKU(ctx context.Context, empresaID, sku string) (*entity.Produto, error) {
	query := `SELECT ` + produtoCols + ` FROM produtos WHERE empresa_id = $1 AND sku = $2`
	return scanProdutoRow(r.q.QueryRow(ctx, query, empresaID, sku))
}

// Update atualiza o cadastro. quantidade_estoque fica de fora: só muda
// via AjustarEstoque.
func (r *ProdutoRepo) Update(ctx context.Context, p *entity.Produto) error {
	query := `
		UPDATE produtos SET nome = $2, descricao = $3, preco = $4, custo = $5,
			estoque_minimo = $6, ativo = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Nome, p.Descricao, p.Preco, p.Custo, p.EstoqueMinimo, p.Ativo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEmpresa produtos da empresa ordenados por nome.
func (r *ProdutoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Produto, error) {
	query := `SELECT ` + produtoCols + ` FROM produtos WHERE empresa_id = $1 ORDER BY nome`
	rows, err := r.q.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	return collectProdutos(rows)
}

// List listagem org-wide com busca por nome/SKU e filtro de tipo.
func (r *ProdutoRepo) List(ctx context.Context, filtro repository.FiltroProdutos) ([]*entity.Produto, error) {
	query := `SELECT ` + produtoCols + ` FROM produtos WHERE empresa_id = ANY($1)`
	args := []any{filtro.EmpresaIDs}
	n := 2
	if filtro.Busca != "" {
		query += fmt.Sprintf(" AND (nome ILIKE $%d OR sku ILIKE $%d)", n, n)
		args = append(args, "%"+filtro.Busca+"%")
		n++
	}
	if filtro.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", n)
		args = append(args, string(filtro.Tipo))
		n++
	}
	query += " ORDER BY nome"
	if filtro.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filtro.Limit)
		n++
	}
	if filtro.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filtro.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	return collectProdutos(rows)
}

// CountByEmpresa total de produtos cadastrados (geração de SKU sequencial).
func (r *ProdutoRepo) CountByEmpresa(ctx context.Context, empresaID string) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM produtos WHERE empresa_id = $1`, empresaID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count produtos: %w", err)
	}
	return count, nil
}

// AjustarEstoque aplica um delta relativo no próprio UPDATE (negativo =
// baixa); o valor corrente nunca é lido antes, então ajustes concorrentes
// não se perdem.
func (r *ProdutoRepo) AjustarEstoque(ctx context.Context, produtoID string, delta int) error {
	query := `UPDATE produtos SET quantidade_estoque = quantidade_estoque + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, produtoID, delta)
	if err != nil {
		return fmt.Errorf("ajustar estoque: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Metricas agregados do painel de estoque. Estoque baixo conta 0 < qtd ≤
// mínimo; serviços ficam fora das contagens de estoque.
func (r *ProdutoRepo) Metricas(ctx context.Context, empresaID string) (repository.MetricasEstoque, error) {
	query := `
		SELECT count(*),
			COALESCE(sum(custo * quantidade_estoque) FILTER (WHERE tipo = 'PRODUTO'), 0),
			COALESCE(sum(preco * quantidade_estoque) FILTER (WHERE tipo = 'PRODUTO'), 0),
			count(*) FILTER (WHERE tipo = 'PRODUTO' AND quantidade_estoque > 0 AND quantidade_estoque <= estoque_minimo),
			count(*) FILTER (WHERE tipo = 'PRODUTO' AND quantidade_estoque <= 0)
		FROM produtos WHERE empresa_id = $1 AND ativo`
	var m repository.MetricasEstoque
	err := r.q.QueryRow(ctx, query, empresaID).Scan(
		&m.TotalProdutos, &m.ValorEstoqueCusto, &m.ValorEstoqueVenda,
		&m.ProdutosEstoqueBaixo, &m.ProdutosSemEstoque,
	)
	if err != nil {
		return repository.MetricasEstoque{}, fmt.Errorf("metricas estoque: %w", err)
	}
	return m, nil
}

func scanProdutoRow(row pgx.Row) (*entity.Produto, error) {
	p, err := scanProduto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	var tipo string
	err := row.Scan(
		&p.ID, &p.EmpresaID, &p.Nome, &p.Descricao, &p.SKU, &tipo,
		&p.Preco, &p.Custo, &p.QuantidadeEstoque, &p.EstoqueMinimo, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan produto: %w", err)
	}
	p.Tipo = entity.TipoItem(tipo)
	return &p, nil
}

func collectProdutos(rows pgx.Rows) ([]*entity.Produto, error) {
	var out []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MovimentacaoRepo implementação do razão de estoque (append-only).
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador do razão de estoque.
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Create registra um lançamento imutável.
func (r *MovimentacaoRepo) Create(ctx context.Context, m *entity.MovimentacaoEstoque) error {
	query := `
		INSERT INTO movimentacoes_estoque (id, empresa_id, produto_id, tipo, quantidade, observacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.EmpresaID, m.ProdutoID, string(m.Tipo), m.Quantidade, m.Observacao, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}
