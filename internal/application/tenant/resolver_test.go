package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

type fakeEmpresas struct {
	porID map[string]*entity.Empresa
}

func (f *fakeEmpresas) Create(_ context.Context, e *entity.Empresa) error {
	f.porID[e.ID] = e
	return nil
}

func (f *fakeEmpresas) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	return f.porID[id], nil
}

func (f *fakeEmpresas) GetByCNPJ(_ context.Context, _ string) (*entity.Empresa, error) {
	return nil, nil
}

func (f *fakeEmpresas) Update(_ context.Context, e *entity.Empresa) error {
	f.porID[e.ID] = e
	return nil
}

func (f *fakeEmpresas) ListAtivasByOrganizacao(_ context.Context, orgID string) ([]*entity.Empresa, error) {
	var out []*entity.Empresa
	for _, e := range f.porID {
		if e.OrganizacaoID == orgID && e.Ativa {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmpresas) ListIDsByOrganizacao(_ context.Context, orgID string) ([]string, error) {
	var out []string
	for _, e := range f.porID {
		if e.OrganizacaoID == orgID && e.Ativa {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (f *fakeEmpresas) Stats(_ context.Context, _ string) (repository.EmpresaStats, error) {
	return repository.EmpresaStats{}, nil
}

func novoResolver() *tenant.Resolver {
	now := time.Now()
	return tenant.NewResolver(&fakeEmpresas{porID: map[string]*entity.Empresa{
		"emp-1": {ID: "emp-1", OrganizacaoID: "org-1", Nome: "Matriz", Ativa: true, CreatedAt: now},
		"emp-2": {ID: "emp-2", OrganizacaoID: "org-1", Nome: "Filial", Ativa: true, CreatedAt: now},
		"emp-x": {ID: "emp-x", OrganizacaoID: "org-2", Nome: "Alheia", Ativa: true, CreatedAt: now},
	}})
}

func sessao() tenant.Contexto {
	return tenant.Contexto{UserID: "u1", EmpresaID: "emp-1", OrganizacaoID: "org-1", Role: entity.RoleGestor}
}

func TestResolverEmpresa_SemParametroUsaEmpresaDaSessao(t *testing.T) {
	r := novoResolver()
	id, err := r.ResolverEmpresa(context.Background(), sessao(), "")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", id)
}

func TestResolverEmpresa_SemEmpresaNaSessao_ErrEmpresaNaoSelecionada(t *testing.T) {
	r := novoResolver()
	sess := sessao()
	sess.EmpresaID = ""
	_, err := r.ResolverEmpresa(context.Background(), sess, "")
	assert.ErrorIs(t, err, domain.ErrEmpresaNaoSelecionada)
}

func TestResolverEmpresa_ExplicitaDaMesmaOrganizacao(t *testing.T) {
	r := novoResolver()
	id, err := r.ResolverEmpresa(context.Background(), sessao(), "emp-2")
	require.NoError(t, err)
	assert.Equal(t, "emp-2", id)
}

// Empresas de outra organização e inexistentes respondem o MESMO erro:
// forbidden nunca revela se o recurso existe.
func TestResolverEmpresa_ForaDaOrganizacao_ErrForbidden(t *testing.T) {
	r := novoResolver()

	_, err := r.ResolverEmpresa(context.Background(), sessao(), "emp-x")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = r.ResolverEmpresa(context.Background(), sessao(), "emp-inexistente")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEmpresasDoEscopo_OrgWideSemParametro(t *testing.T) {
	r := novoResolver()
	ids, err := r.EmpresasDoEscopo(context.Background(), sessao(), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, ids,
		"sem empresaId a consulta alcança todas as empresas da organização")
}

func TestEmpresasDoEscopo_ComParametroRestringe(t *testing.T) {
	r := novoResolver()
	ids, err := r.EmpresasDoEscopo(context.Background(), sessao(), "emp-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-2"}, ids)
}

func TestEmpresasDoEscopo_ParametroAlheio_ErrForbidden(t *testing.T) {
	r := novoResolver()
	_, err := r.EmpresasDoEscopo(context.Background(), sessao(), "emp-x")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
