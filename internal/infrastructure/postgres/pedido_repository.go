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

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

const pedidoCols = `id, empresa_id, cliente_id, usuario_id, numero_pedido, status, valor_total, frete, data_pedido, validade_orcamento, data_entrega, informacoes_negociacao, observacoes_nf, created_at, updated_at`

// PedidoRepo implementação do porto PedidoRepository sobre PostgreSQL
// (usável com pool ou tx). Itens e histórico vivem nas tabelas filhas.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository constrói o adaptador de persistência de pedidos.
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create persiste um novo pedido. Número repetido na empresa vira
// ErrNumeroPedidoEmUso.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (` + pedidoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.ClienteID, p.UsuarioID, p.NumeroPedido, string(p.Status),
		p.ValorTotal, p.Frete, p.DataPedido, p.ValidadeOrcamento, p.DataEntrega,
		p.InformacoesNegociacao, p.ObservacoesNF, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumeroPedidoEmUso
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID busca o pedido por ID; empresaID vazio não filtra por empresa
// (o chamador valida o acesso pela organização).
func (r *PedidoRepo) GetByID(ctx context.Context, id, empresaID string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoCols + ` FROM pedidos WHERE id = $1 AND ($2 = '' OR empresa_id = $2)`
	return scanPedidoRow(r.q.QueryRow(ctx, query, id, empresaID))
}

// GetByNumero resolve a unicidade (empresaId, numeroPedido).
func (r *PedidoRepo) GetByNumero(ctx context.Context, empresaID string, numero int) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoCols + ` FROM pedidos WHERE empresa_id = $1 AND numero_pedido = $2`
	return scanPedidoRow(r.q.QueryRow(ctx, query, empresaID, numero))
}

// ProximoNumero devolve max(numero_pedido)+1 da empresa (1 se não houver).
func (r *PedidoRepo) ProximoNumero(ctx context.Context, empresaID string) (int, error) {
	var numero int
	query := `SELECT COALESCE(max(numero_pedido), 0) + 1 FROM pedidos WHERE empresa_id = $1`
	if err := r.q.QueryRow(ctx, query, empresaID).Scan(&numero); err != nil {
		return 0, fmt.Errorf("proximo numero: %w", err)
	}
	return numero, nil
}

// Update atualiza o pedido.
func (r *PedidoRepo) Update(ctx context.Context, p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET cliente_id = $3, status = $4, valor_total = $5, frete = $6,
			validade_orcamento = $7, data_entrega = $8, informacoes_negociacao = $9,
			observacoes_nf = $10, updated_at = $11
		WHERE id = $1 AND empresa_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.ClienteID, string(p.Status), p.ValorTotal, p.Frete,
		p.ValidadeOrcamento, p.DataEntrega, p.InformacoesNegociacao, p.ObservacoesNF, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o pedido; o histórico cai via ON DELETE CASCADE.
func (r *PedidoRepo) Delete(ctx context.Context, id, empresaID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pedidos do escopo com nomes do cliente e do vendedor, mais recentes
// primeiro.
func (r *PedidoRepo) List(ctx context.Context, filtro repository.FiltroPedidos) ([]repository.PedidoComNomes, error) {
	query := `
		SELECT p.id, p.empresa_id, p.cliente_id, p.usuario_id, p.numero_pedido, p.status, p.valor_total,
			p.frete, p.data_pedido, p.validade_orcamento, p.data_entrega, p.informacoes_negociacao,
			p.observacoes_nf, p.created_at, p.updated_at, c.nome, u.nome
		FROM pedidos p
		JOIN clientes c ON c.id = p.cliente_id
		JOIN usuarios u ON u.id = p.usuario_id
		WHERE p.empresa_id = ANY($1)`
	args := []any{filtro.EmpresaIDs}
	query, args = aplicarFiltroPedidos(query, args, filtro, "p.")
	query += " ORDER BY p.data_pedido DESC, p.numero_pedido DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var out []repository.PedidoComNomes
	for rows.Next() {
		var row repository.PedidoComNomes
		var status string
		err := rows.Scan(
			&row.Pedido.ID, &row.Pedido.EmpresaID, &row.Pedido.ClienteID, &row.Pedido.UsuarioID,
			&row.Pedido.NumeroPedido, &status, &row.Pedido.ValorTotal, &row.Pedido.Frete,
			&row.Pedido.DataPedido, &row.Pedido.ValidadeOrcamento, &row.Pedido.DataEntrega,
			&row.Pedido.InformacoesNegociacao, &row.Pedido.ObservacoesNF,
			&row.Pedido.CreatedAt, &row.Pedido.UpdatedAt, &row.ClienteNome, &row.UsuarioNome,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		row.Pedido.Status = entity.StatusPedido(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

// SummaryPorStatus contagem e soma por status dentro do escopo.
func (r *PedidoRepo) SummaryPorStatus(ctx context.Context, filtro repository.FiltroPedidos) ([]repository.StatusSummary, error) {
	query := `
		SELECT status, count(*), COALESCE(sum(valor_total), 0)
		FROM pedidos WHERE empresa_id = ANY($1)`
	args := []any{filtro.EmpresaIDs}
	query, args = aplicarFiltroPedidos(query, args, filtro, "")
	query += " GROUP BY status"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary pedidos: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusSummary
	for rows.Next() {
		var s repository.StatusSummary
		var status string
		if err := rows.Scan(&status, &s.Count, &s.Total); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Status = entity.StatusPedido(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateItem persiste uma linha do pedido.
func (r *PedidoRepo) CreateItem(ctx context.Context, item *entity.ItemPedido) error {
	query := `
		INSERT INTO itens_pedido (id, pedido_id, produto_id, descricao, tipo, quantidade, preco_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.PedidoID, item.ProdutoID, item.Descricao, string(item.Tipo),
		item.Quantidade, item.PrecoUnitario, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert item pedido: %w", err)
	}
	return nil
}

// ListItens linhas do pedido na ordem de inserção.
func (r *PedidoRepo) ListItens(ctx context.Context, pedidoID string) ([]*entity.ItemPedido, error) {
	query := `
		SELECT id, pedido_id, produto_id, descricao, tipo, quantidade, preco_unitario, subtotal
		FROM itens_pedido WHERE pedido_id = $1 ORDER BY ctid`
	rows, err := r.q.Query(ctx, query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()

	var out []*entity.ItemPedido
	for rows.Next() {
		var item entity.ItemPedido
		var tipo string
		err := rows.Scan(&item.ID, &item.PedidoID, &item.ProdutoID, &item.Descricao, &tipo,
			&item.Quantidade, &item.PrecoUnitario, &item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Tipo = entity.TipoItem(tipo)
		out = append(out, &item)
	}
	return out, rows.Err()
}

// DeleteItens apaga todas as linhas do pedido (substituição no update).
func (r *PedidoRepo) DeleteItens(ctx context.Context, pedidoID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM itens_pedido WHERE pedido_id = $1`, pedidoID); err != nil {
		return fmt.Errorf("delete itens: %w", err)
	}
	return nil
}

// CreateHistorico registra um evento na trilha do pedido.
func (r *PedidoRepo) CreateHistorico(ctx context.Context, h *entity.HistoricoPedido) error {
	query := `INSERT INTO historico_pedidos (id, pedido_id, descricao, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, h.ID, h.PedidoID, h.Descricao, h.CreatedAt); err != nil {
		return fmt.Errorf("insert historico: %w", err)
	}
	return nil
}

// aplicarFiltroPedidos anexa os filtros opcionais à query; prefix permite
// reutilizar nas queries com e sem alias de tabela.
func aplicarFiltroPedidos(query string, args []any, filtro repository.FiltroPedidos, prefix string) (string, []any) {
	n := len(args) + 1
	if filtro.UsuarioID != "" {
		query += fmt.Sprintf(" AND %susuario_id = $%d", prefix, n)
		args = append(args, filtro.UsuarioID)
		n++
	}
	if filtro.Status != "" {
		query += fmt.Sprintf(" AND %sstatus = $%d", prefix, n)
		args = append(args, string(filtro.Status))
		n++
	}
	if filtro.DataInicio != nil {
		query += fmt.Sprintf(" AND %sdata_pedido >= $%d", prefix, n)
		args = append(args, *filtro.DataInicio)
		n++
	}
	if filtro.DataFim != nil {
		query += fmt.Sprintf(" AND %sdata_pedido <= $%d", prefix, n)
		args = append(args, *filtro.DataFim)
	}
	return query, args
}

func scanPedidoRow(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	var status string
	err := row.Scan(
		&p.ID, &p.EmpresaID, &p.ClienteID, &p.UsuarioID, &p.NumeroPedido, &status,
		&p.ValorTotal, &p.Frete, &p.DataPedido, &p.ValidadeOrcamento, &p.DataEntrega,
		&p.InformacoesNegociacao, &p.ObservacoesNF, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	p.Status = entity.StatusPedido(status)
	return &p, nil
}
