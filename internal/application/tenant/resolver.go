// Package tenant resolve o escopo de dados de cada requisição: qual empresa
// (sub-tenant) uma consulta pode alcançar, dado o contexto verificado da
// sessão. É a barreira contra vazamento entre organizações.
package tenant

import (
	"context"

	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// Contexto identidade verificada de uma requisição. Construído pelo
// middleware de auth e passado explicitamente aos use cases; nunca há
// estado ambiente de sessão.
type Contexto struct {
	UserID        string
	EmpresaID     string
	OrganizacaoID string
	Role          entity.Role
}

// Resolver valida parâmetros de empresa contra a organização da sessão.
type Resolver struct {
	empresaRepo repository.EmpresaRepository
}

// NewResolver constrói o resolver.
func NewResolver(empresaRepo repository.EmpresaRepository) *Resolver {
	return &Resolver{empresaRepo: empresaRepo}
}

// ResolverEmpresa devolve a empresa alvo de uma operação. Com empresaID
// explícito, confirma que ela pertence à organização da sessão (senão
// ErrForbidden — nunca 404, para não distinguir "não existe" de "não é
// sua"). Sem parâmetro, usa a empresa ativa da sessão.
func (r *Resolver) ResolverEmpresa(ctx context.Context, sess Contexto, empresaID string) (string, error) {
	if empresaID == "" {
		if sess.EmpresaID == "" {
			return "", domain.ErrEmpresaNaoSelecionada
		}
		return sess.EmpresaID, nil
	}
	if err := r.ValidarAcesso(ctx, sess, empresaID); err != nil {
		return "", err
	}
	return empresaID, nil
}

// ValidarAcesso confirma que a empresa pertence à organização da sessão.
func (r *Resolver) ValidarAcesso(ctx context.Context, sess Contexto, empresaID string) error {
	empresa, err := r.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return err
	}
	if empresa == nil || empresa.OrganizacaoID != sess.OrganizacaoID {
		return domain.ErrForbidden
	}
	return nil
}

// EmpresasDoEscopo devolve os IDs de empresa alcançáveis pela consulta:
// o empresaID validado quando informado, senão todas as empresas da
// organização (listagens org-wide).
func (r *Resolver) EmpresasDoEscopo(ctx context.Context, sess Contexto, empresaID string) ([]string, error) {
	if empresaID != "" {
		if err := r.ValidarAcesso(ctx, sess, empresaID); err != nil {
			return nil, err
		}
		return []string{empresaID}, nil
	}
	return r.empresaRepo.ListIDsByOrganizacao(ctx, sess.OrganizacaoID)
}
