package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"ADMIN", "GESTOR", "OPERADOR", "VISUALIZADOR"} {
		r, ok := entity.ParseRole(s)
		require.True(t, ok, "role %s deve ser aceito", s)
		assert.Equal(t, entity.Role(s), r)
	}

	for _, s := range []string{"", "admin", "SUPERUSER", "Gestor"} {
		_, ok := entity.ParseRole(s)
		assert.False(t, ok, "role %q deve ser rejeitado", s)
	}
}

// A matriz é hierárquica: todo role superior concede tudo que o inferior
// concede. Verificado por inclusão de conjuntos, não caso a caso.
func TestMatriz_HierarquiaDeRoles(t *testing.T) {
	ordem := []entity.Role{
		entity.RoleVisualizador, entity.RoleOperador, entity.RoleGestor, entity.RoleAdmin,
	}
	for i := 0; i < len(ordem)-1; i++ {
		inferior, superior := ordem[i], ordem[i+1]
		for _, p := range inferior.Permissoes() {
			assert.True(t, superior.Permite(p),
				"%s deve conceder %v/%v porque %s concede", superior, p.Modulo, p.Acao, inferior)
		}
	}
}

func TestMatriz_VisualizadorNuncaEscreve(t *testing.T) {
	escritas := []entity.Acao{
		entity.AcaoCriar, entity.AcaoEditar, entity.AcaoExcluir,
		entity.AcaoGerenciarMembros, entity.AcaoGerenciarEmpresa,
	}
	for _, p := range entity.RoleVisualizador.Permissoes() {
		for _, a := range escritas {
			assert.NotEqual(t, a, p.Acao, "VISUALIZADOR não deve ter ação de escrita %s", a)
		}
	}
}

func TestMatriz_OperadorFinanceiroSomenteLeitura(t *testing.T) {
	op := entity.RoleOperador
	assert.True(t, op.Permite(entity.Permissao{Modulo: entity.ModuloFinanceiro, Acao: entity.AcaoVisualizar}))
	assert.False(t, op.Permite(entity.Permissao{Modulo: entity.ModuloFinanceiro, Acao: entity.AcaoCriar}))
	assert.False(t, op.Permite(entity.Permissao{Modulo: entity.ModuloFinanceiro, Acao: entity.AcaoExcluir}))
}

func TestMatriz_GestaoDeMembrosEEmpresas(t *testing.T) {
	assert.True(t, entity.RoleAdmin.PodeGerenciarMembros())
	assert.True(t, entity.RoleGestor.PodeGerenciarMembros())
	assert.False(t, entity.RoleOperador.PodeGerenciarMembros())
	assert.False(t, entity.RoleVisualizador.PodeGerenciarMembros())

	// Só ADMIN administra empresas da organização.
	gerenciarEmpresa := entity.Permissao{Modulo: entity.ModuloConfiguracoes, Acao: entity.AcaoGerenciarEmpresa}
	assert.True(t, entity.RoleAdmin.Permite(gerenciarEmpresa))
	assert.False(t, entity.RoleGestor.Permite(gerenciarEmpresa))
}

func TestMatriz_RoleDesconhecidoNaoConcedeNada(t *testing.T) {
	var r entity.Role = "SUPERUSER"
	assert.False(t, r.Permite(entity.Permissao{Modulo: entity.ModuloVendas, Acao: entity.AcaoVisualizar}))
	assert.Empty(t, r.Permissoes())
}
