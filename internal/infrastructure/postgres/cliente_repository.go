package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteCols = `id, empresa_id, nome, tipo_pessoa, cpf_cnpj, email, telefone, cep, rua, numero, complemento, bairro, cidade, uf, ativo, primeira_compra_concluida, created_at, updated_at`

// ClienteRepo implementação do porto ClienteRepository sobre PostgreSQL
// (usável com pool ou tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador de persistência de clientes.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste um novo cliente. CPF/CNPJ repetido na empresa vira
// ErrDuplicate.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.EmpresaID, c.Nome, string(c.TipoPessoa), nullIfEmpty(c.CpfCnpj), c.Email, c.Telefone,
		c.CEP, c.Rua, c.Numero, c.Complemento, c.Bairro, c.Cidade, c.UF,
		c.Ativo, c.PrimeiraCompraConcluida, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID busca o cliente por ID dentro da empresa; nil quando não existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id, empresaID string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE id = $1 AND empresa_id = $2`
	return scanClienteRow(r.q.QueryRow(ctx, query, id, empresaID))
}

// GetByCpfCnpj procura duplicata do documento dentro da empresa.
func (r *ClienteRepo) GetByCpfCnpj(ctx context.Context, empresaID, cpfCnpj string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE empresa_id = $1 AND cpf_cnpj = $2`
	return scanClienteRow(r.q.QueryRow(ctx, query, empresaID, cpfCnpj))
}

// Update atualiza o cadastro do cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nome = $3, tipo_pessoa = $4, cpf_cnpj = $5, email = $6, telefone = $7,
			cep = $8, rua = $9, numero = $10, complemento = $11, bairro = $12, cidade = $13, uf = $14,
			ativo = $15, updated_at = $16
		WHERE id = $1 AND empresa_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.EmpresaID, c.Nome, string(c.TipoPessoa), nullIfEmpty(c.CpfCnpj), c.Email, c.Telefone,
		c.CEP, c.Rua, c.Numero, c.Complemento, c.Bairro, c.Cidade, c.UF, c.Ativo, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o cliente (o use case já barrou clientes com pedidos).
func (r *ClienteRepo) Delete(ctx context.Context, id, empresaID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEmpresa clientes da empresa ordenados por nome.
func (r *ClienteRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE empresa_id = $1 ORDER BY nome`
	rows, err := r.q.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountPedidos conta os pedidos do cliente (bloqueio de exclusão).
func (r *ClienteRepo) CountPedidos(ctx context.Context, clienteID string) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM pedidos WHERE cliente_id = $1`, clienteID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pedidos do cliente: %w", err)
	}
	return count, nil
}

// MarcarPrimeiraCompra marca o flag se ainda não concluída. Idempotente.
func (r *ClienteRepo) MarcarPrimeiraCompra(ctx context.Context, clienteID string) error {
	query := `
		UPDATE clientes SET primeira_compra_concluida = TRUE, updated_at = $2
		WHERE id = $1 AND NOT primeira_compra_concluida`
	if _, err := r.q.Exec(ctx, query, clienteID, time.Now()); err != nil {
		return fmt.Errorf("marcar primeira compra: %w", err)
	}
	return nil
}

// Summary contadores do painel: total, criados a partir de inicioMes,
// ativos e inativos.
func (r *ClienteRepo) Summary(ctx context.Context, empresaID string, inicioMes time.Time) (repository.ClienteSummary, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE created_at >= $2),
			count(*) FILTER (WHERE ativo),
			count(*) FILTER (WHERE NOT ativo)
		FROM clientes WHERE empresa_id = $1`
	var s repository.ClienteSummary
	if err := r.q.QueryRow(ctx, query, empresaID, inicioMes).Scan(&s.Total, &s.Novos, &s.Ativos, &s.Inativos); err != nil {
		return repository.ClienteSummary{}, fmt.Errorf("cliente summary: %w", err)
	}
	return s, nil
}

func scanClienteRow(row pgx.Row) (*entity.Cliente, error) {
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	var tipo string
	var cpfCnpj *string
	err := row.Scan(
		&c.ID, &c.EmpresaID, &c.Nome, &tipo, &cpfCnpj, &c.Email, &c.Telefone,
		&c.CEP, &c.Rua, &c.Numero, &c.Complemento, &c.Bairro, &c.Cidade, &c.UF,
		&c.Ativo, &c.PrimeiraCompraConcluida, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan cliente: %w", err)
	}
	c.TipoPessoa = entity.TipoPessoa(tipo)
	if cpfCnpj != nil {
		c.CpfCnpj = *cpfCnpj
	}
	return &c, nil
}

// nullIfEmpty converte string vazia em NULL para colunas com unique
// parcial (vários clientes sem documento não colidem).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
