package repository

import (
	"context"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// OrganizacaoRepository porto de persistência para Organizacao.
type OrganizacaoRepository interface {
	Create(ctx context.Context, org *entity.Organizacao) error
	GetByID(ctx context.Context, id string) (*entity.Organizacao, error)
}

// EmpresaStats contadores agregados de uma empresa (listagem administrativa).
type EmpresaStats struct {
	TotalClientes int
	TotalProdutos int
	TotalPedidos  int
}

// EmpresaRepository porto de persistência para Empresa.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
	// ListAtivasByOrganizacao devolve as empresas ativas ordenadas por nome.
	ListAtivasByOrganizacao(ctx context.Context, organizacaoID string) ([]*entity.Empresa, error)
	// ListIDsByOrganizacao devolve só os IDs (filtros org-wide de listagens).
	ListIDsByOrganizacao(ctx context.Context, organizacaoID string) ([]string, error)
	Stats(ctx context.Context, empresaID string) (EmpresaStats, error)
}
