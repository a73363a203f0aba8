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

var _ repository.OrganizacaoRepository = (*OrganizacaoRepo)(nil)
var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// OrganizacaoRepo implementação do porto OrganizacaoRepository sobre
// PostgreSQL (usável com pool ou tx).
type OrganizacaoRepo struct {
	q Querier
}

// NewOrganizacaoRepository constrói o adaptador de persistência de
// organizações.
func NewOrganizacaoRepository(q Querier) *OrganizacaoRepo {
	return &OrganizacaoRepo{q: q}
}

// Create persiste uma nova organização.
func (r *OrganizacaoRepo) Create(ctx context.Context, org *entity.Organizacao) error {
	query := `
		INSERT INTO organizacoes (id, nome, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, org.ID, org.Nome, org.CreatedAt, org.UpdatedAt); err != nil {
		return fmt.Errorf("insert organizacao: %w", err)
	}
	return nil
}

// GetByID busca a organização por ID; nil quando não existe.
func (r *OrganizacaoRepo) GetByID(ctx context.Context, id string) (*entity.Organizacao, error) {
	var org entity.Organizacao
	err := r.q.QueryRow(ctx, `SELECT id, nome, created_at, updated_at FROM organizacoes WHERE id = $1`, id).
		Scan(&org.ID, &org.Nome, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organizacao: %w", err)
	}
	return &org, nil
}

const empresaCols = `id, organizacao_id, nome, cnpj, email, telefone, cep, rua, numero, complemento, bairro, cidade, uf, logo_url, ativa, created_at, updated_at`

// EmpresaRepo implementação do porto EmpresaRepository sobre PostgreSQL
// (usável com pool ou tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador de persistência de empresas.
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste uma nova empresa. CNPJ repetido vira ErrDuplicate.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (` + empresaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrganizacaoID, e.Nome, e.CNPJ, e.Email, e.Telefone,
		e.CEP, e.Rua, e.Numero, e.Complemento, e.Bairro, e.Cidade, e.UF,
		e.LogoURL, e.Ativa, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID busca a empresa por ID; nil quando não existe.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.scanOne(r.q.QueryRow(ctx, `SELECT `+empresaCols+` FROM empresas WHERE id = $1`, id))
}

// GetByCNPJ busca a empresa pelo CNPJ; nil quando não existe.
func (r *EmpresaRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Empresa, error) {
	return r.scanOne(r.q.QueryRow(ctx, `SELECT `+empresaCols+` FROM empresas WHERE cnpj = $1`, cnpj))
}

// Update atualiza os dados cadastrais da empresa.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET nome = $2, cnpj = $3, email = $4, telefone = $5, cep = $6, rua = $7,
			numero = $8, complemento = $9, bairro = $10, cidade = $11, uf = $12, logo_url = $13,
			ativa = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.Nome, e.CNPJ, e.Email, e.Telefone, e.CEP, e.Rua, e.Numero,
		e.Complemento, e.Bairro, e.Cidade, e.UF, e.LogoURL, e.Ativa, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAtivasByOrganizacao devolve as empresas ativas ordenadas por nome.
func (r *EmpresaRepo) ListAtivasByOrganizacao(ctx context.Context, organizacaoID string) ([]*entity.Empresa, error) {
	query := `SELECT ` + empresaCols + ` FROM empresas WHERE organizacao_id = $1 AND ativa ORDER BY nome`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Empresa
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListIDsByOrganizacao devolve só os IDs das empresas ativas (escopo de
// listagens org-wide).
func (r *EmpresaRepo) ListIDsByOrganizacao(ctx context.Context, organizacaoID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM empresas WHERE organizacao_id = $1 AND ativa`, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list empresa ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan empresa id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Stats contadores agregados da empresa para a listagem administrativa.
func (r *EmpresaRepo) Stats(ctx context.Context, empresaID string) (repository.EmpresaStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM clientes WHERE empresa_id = $1),
			(SELECT count(*) FROM produtos WHERE empresa_id = $1),
			(SELECT count(*) FROM pedidos WHERE empresa_id = $1)`
	var s repository.EmpresaStats
	if err := r.q.QueryRow(ctx, query, empresaID).Scan(&s.TotalClientes, &s.TotalProdutos, &s.TotalPedidos); err != nil {
		return repository.EmpresaStats{}, fmt.Errorf("empresa stats: %w", err)
	}
	return s, nil
}

func (r *EmpresaRepo) scanOne(row pgx.Row) (*entity.Empresa, error) {
	e, err := scanEmpresa(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(
		&e.ID, &e.OrganizacaoID, &e.Nome, &e.CNPJ, &e.Email, &e.Telefone,
		&e.CEP, &e.Rua, &e.Numero, &e.Complemento, &e.Bairro, &e.Cidade, &e.UF,
		&e.LogoURL, &e.Ativa, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan empresa: %w", err)
	}
	return &e, nil
}
