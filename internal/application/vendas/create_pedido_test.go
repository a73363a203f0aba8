package vendas_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/application/vendas"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
)

func novoCreateUC(c *cenario) *vendas.CreatePedidoUseCase {
	empresas := newFakeEmpresaRepo(
		&entity.Empresa{ID: empresaID, OrganizacaoID: orgID, Nome: "Maré Matriz", Ativa: true},
	)
	tx := &fakeTxRunner{pedidos: c.pedidos, produtos: c.produtos, movs: c.movs, clientes: c.clientes}
	return vendas.NewCreatePedidoUseCase(tx, tenant.NewResolver(empresas), c.clientes)
}

func pedidoBase(numero int, status string) dto.CreatePedidoRequest {
	prod1 := "prod-1"
	return dto.CreatePedidoRequest{
		EmpresaID:    empresaID,
		NumeroPedido: numero,
		ClienteID:    clienteID,
		Status:       status,
		Frete:        decimal.NewFromFloat(1.50),
		Itens: []dto.ItemPedidoRequest{
			{ProdutoID: &prod1, Descricao: "Boia Salva-Vidas", Tipo: "PRODUTO", Quantidade: 2, PrecoUnitario: decimal.NewFromFloat(10.00)},
			{Descricao: "Instalação", Tipo: "SERVICO", Quantidade: 3, PrecoUnitario: decimal.NewFromFloat(5.00)},
		},
	}
}

func TestCreatePedido_TotalSomaItensMaisFrete(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	out, err := uc.Create(context.Background(), c.sess, pedidoBase(10, "ORCAMENTO"))
	require.NoError(t, err)

	// 2 × 10.00 + 3 × 5.00 + 1.50 = 36.50
	assert.True(t, out.ValorTotal.Equal(decimal.NewFromFloat(36.50)),
		"valorTotal esperado 36.50, veio %s", out.ValorTotal)
	assert.Equal(t, 10, out.NumeroPedido)
	assert.Len(t, out.Itens, 2)
	require.Len(t, c.pedidos.historicos, 1)
	assert.Contains(t, c.pedidos.historicos[0].Descricao, "ORCAMENTO")
}

func TestCreatePedido_NumeroDuplicado_ErrNumeroPedidoEmUso(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	_, err := uc.Create(context.Background(), c.sess, pedidoBase(10, "ORCAMENTO"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), c.sess, pedidoBase(10, "ORCAMENTO"))
	assert.ErrorIs(t, err, domain.ErrNumeroPedidoEmUso)
}

func TestCreatePedido_VendidoBaixaEstoqueSoDasLinhasFisicas(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	_, err := uc.Create(context.Background(), c.sess, pedidoBase(11, "VENDIDO"))
	require.NoError(t, err)

	// Só a linha fisica com produto cadastrado baixa estoque; a de serviço
	// (sem produtoId) não.
	assert.Equal(t, 48, estoqueDe(t, c, "prod-1"))
	require.Len(t, c.movs.movs, 1)
	assert.Equal(t, entity.MovimentacaoSaida, c.movs.movs[0].Tipo)
	assert.Equal(t, 2, c.movs.movs[0].Quantidade)
	assert.True(t, c.clientes.clientes[clienteID].PrimeiraCompraConcluida)
}

func TestCreatePedido_StatusInvalido_ErrInvalidInput(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	_, err := uc.Create(context.Background(), c.sess, pedidoBase(12, "ENTREGUE"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePedido_EmpresaDeOutraOrganizacao_ErrForbidden(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	intruso := tenant.Contexto{UserID: "user-2", OrganizacaoID: outraOrgID, Role: entity.RoleAdmin}
	_, err := uc.Create(context.Background(), intruso, pedidoBase(13, "ORCAMENTO"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreatePedido_FreteNegativo_ErrInvalidInput(t *testing.T) {
	c := novoCenario(t)
	uc := novoCreateUC(c)

	in := pedidoBase(14, "ORCAMENTO")
	in.Frete = decimal.NewFromFloat(-1)
	_, err := uc.Create(context.Background(), c.sess, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
