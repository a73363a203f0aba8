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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL
// (usável com pool ou tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador de persistência de usuários.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste um novo usuário. E-mail repetido vira ErrEmailJaCadastrado.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nome, email, senha_hash, foto_perfil, ativo, ultimo_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nome, u.Email, u.SenhaHash, u.FotoPerfil, u.Ativo, u.UltimoLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailJaCadastrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID busca o usuário por ID; nil quando não existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `
		SELECT id, nome, email, senha_hash, foto_perfil, ativo, ultimo_login, created_at, updated_at
		FROM usuarios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByEmail busca o usuário pelo e-mail (case-insensitive); nil quando
// não existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `
		SELECT id, nome, email, senha_hash, foto_perfil, ativo, ultimo_login, created_at, updated_at
		FROM usuarios WHERE lower(email) = lower($1)`
	return r.scanOne(r.q.QueryRow(ctx, query, email))
}

// UpdateUltimoLogin carimba o último login.
func (r *UsuarioRepo) UpdateUltimoLogin(ctx context.Context, id string, em time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_login = $2, updated_at = $2 WHERE id = $1`, id, em)
	if err != nil {
		return fmt.Errorf("update ultimo login: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) scanOne(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.FotoPerfil, &u.Ativo, &u.UltimoLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
