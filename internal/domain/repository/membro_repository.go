package repository

import (
	"context"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// MembroComUsuario membro com os dados básicos do usuário (listagens).
type MembroComUsuario struct {
	Membro  entity.MembroOrganizacao
	Usuario entity.Usuario
}

// MembroRepository porto de persistência para MembroOrganizacao.
type MembroRepository interface {
	Create(ctx context.Context, membro *entity.MembroOrganizacao) error
	GetByID(ctx context.Context, id string) (*entity.MembroOrganizacao, error)
	// GetByOrganizacaoEUsuario resolve o vínculo único (org, usuário).
	GetByOrganizacaoEUsuario(ctx context.Context, organizacaoID, usuarioID string) (*entity.MembroOrganizacao, error)
	// GetPrimeiroAtivoDoUsuario devolve o primeiro vínculo ativo do usuário
	// (resolução de organização no login e em /organizacao/current).
	GetPrimeiroAtivoDoUsuario(ctx context.Context, usuarioID string) (*entity.MembroOrganizacao, error)
	ListByOrganizacao(ctx context.Context, organizacaoID string) ([]MembroComUsuario, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	Delete(ctx context.Context, id string) error
}
