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

var _ repository.MembroRepository = (*MembroRepo)(nil)

const membroCols = `id, organizacao_id, usuario_id, role, ativo, created_at, updated_at`

// MembroRepo implementação do porto MembroRepository sobre PostgreSQL
// (usável com pool ou tx).
type MembroRepo struct {
	q Querier
}

// NewMembroRepository constrói o adaptador de persistência de membros.
func NewMembroRepository(q Querier) *MembroRepo {
	return &MembroRepo{q: q}
}

// Create persiste um novo vínculo. Vínculo repetido (org, usuário) vira
// ErrMembroJaExiste.
func (r *MembroRepo) Create(ctx context.Context, m *entity.MembroOrganizacao) error {
	query := `
		INSERT INTO membros_organizacao (` + membroCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.OrganizacaoID, m.UsuarioID, string(m.Role), m.Ativo, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMembroJaExiste
		}
		return fmt.Errorf("insert membro: %w", err)
	}
	return nil
}

// GetByID busca o vínculo por ID; nil quando não existe.
func (r *MembroRepo) GetByID(ctx context.Context, id string) (*entity.MembroOrganizacao, error) {
	return scanMembro(r.q.QueryRow(ctx, `SELECT `+membroCols+` FROM membros_organizacao WHERE id = $1`, id))
}

// GetByOrganizacaoEUsuario resolve o vínculo único (org, usuário).
func (r *MembroRepo) GetByOrganizacaoEUsuario(ctx context.Context, organizacaoID, usuarioID string) (*entity.MembroOrganizacao, error) {
	query := `SELECT ` + membroCols + ` FROM membros_organizacao WHERE organizacao_id = $1 AND usuario_id = $2`
	return scanMembro(r.q.QueryRow(ctx, query, organizacaoID, usuarioID))
}

// GetPrimeiroAtivoDoUsuario devolve o vínculo ativo mais antigo do usuário.
func (r *MembroRepo) GetPrimeiroAtivoDoUsuario(ctx context.Context, usuarioID string) (*entity.MembroOrganizacao, error) {
	query := `
		SELECT ` + membroCols + ` FROM membros_organizacao
		WHERE usuario_id = $1 AND ativo
		ORDER BY created_at LIMIT 1`
	return scanMembro(r.q.QueryRow(ctx, query, usuarioID))
}

// ListByOrganizacao membros da organização com os dados do usuário,
// ordenados por nome.
func (r *MembroRepo) ListByOrganizacao(ctx context.Context, organizacaoID string) ([]repository.MembroComUsuario, error) {
	query := `
		SELECT m.id, m.organizacao_id, m.usuario_id, m.role, m.ativo, m.created_at, m.updated_at,
			u.id, u.nome, u.email, u.senha_hash, u.foto_perfil, u.ativo, u.ultimo_login, u.created_at, u.updated_at
		FROM membros_organizacao m
		JOIN usuarios u ON u.id = m.usuario_id
		WHERE m.organizacao_id = $1
		ORDER BY u.nome`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list membros: %w", err)
	}
	defer rows.Close()

	var out []repository.MembroComUsuario
	for rows.Next() {
		var row repository.MembroComUsuario
		var role string
		err := rows.Scan(
			&row.Membro.ID, &row.Membro.OrganizacaoID, &row.Membro.UsuarioID, &role, &row.Membro.Ativo,
			&row.Membro.CreatedAt, &row.Membro.UpdatedAt,
			&row.Usuario.ID, &row.Usuario.Nome, &row.Usuario.Email, &row.Usuario.SenhaHash,
			&row.Usuario.FotoPerfil, &row.Usuario.Ativo, &row.Usuario.UltimoLogin,
			&row.Usuario.CreatedAt, &row.Usuario.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan membro: %w", err)
		}
		row.Membro.Role = entity.Role(role)
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateRole troca o papel do vínculo.
func (r *MembroRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	cmd, err := r.q.Exec(ctx, `UPDATE membros_organizacao SET role = $2, updated_at = $3 WHERE id = $1`, id, string(role), time.Now())
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o vínculo.
func (r *MembroRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM membros_organizacao WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete membro: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMembro(row pgx.Row) (*entity.MembroOrganizacao, error) {
	var m entity.MembroOrganizacao
	var role string
	err := row.Scan(&m.ID, &m.OrganizacaoID, &m.UsuarioID, &role, &m.Ativo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membro: %w", err)
	}
	m.Role = entity.Role(role)
	return &m, nil
}
