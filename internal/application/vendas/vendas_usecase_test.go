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
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

const (
	orgID      = "org-1"
	outraOrgID = "org-2"
	empresaID  = "emp-1"
	usuarioID  = "user-1"
	clienteID  = "cli-1"
)

type cenario struct {
	uc       *vendas.VendasUseCase
	pedidos  *fakePedidoRepo
	produtos *fakeProdutoRepo
	movs     *fakeMovRepo
	clientes *fakeClienteRepo
	sess     tenant.Contexto
}

// novoCenario monta um ambiente com uma empresa, um cliente e dois produtos
// físicos com estoque.
func novoCenario(t *testing.T) *cenario {
	t.Helper()
	empresas := newFakeEmpresaRepo(
		&entity.Empresa{ID: empresaID, OrganizacaoID: orgID, Nome: "Maré Matriz", Ativa: true},
	)
	clientes := newFakeClienteRepo(
		&entity.Cliente{ID: clienteID, EmpresaID: empresaID, Nome: "Cliente Teste", Ativo: true},
	)
	produtos := newFakeProdutoRepo(
		&entity.Produto{
			ID: "prod-1", EmpresaID: empresaID, Nome: "Boia Salva-Vidas", SKU: "PROD0001",
			Tipo: entity.ItemProduto, Preco: decimal.NewFromFloat(10.00), QuantidadeEstoque: 50, Ativo: true,
		},
		&entity.Produto{
			ID: "prod-2", EmpresaID: empresaID, Nome: "Corda Náutica", SKU: "PROD0002",
			Tipo: entity.ItemProduto, Preco: decimal.NewFromFloat(5.00), QuantidadeEstoque: 50, Ativo: true,
		},
	)
	pedidos := newFakePedidoRepo()
	movs := &fakeMovRepo{}
	tx := &fakeTxRunner{pedidos: pedidos, produtos: produtos, movs: movs, clientes: clientes}
	resolver := tenant.NewResolver(empresas)

	return &cenario{
		uc:       vendas.NewVendasUseCase(tx, resolver, pedidos, clientes, produtos),
		pedidos:  pedidos,
		produtos: produtos,
		movs:     movs,
		clientes: clientes,
		sess: tenant.Contexto{
			UserID: usuarioID, EmpresaID: empresaID, OrganizacaoID: orgID, Role: entity.RoleGestor,
		},
	}
}

func (c *cenario) criarVenda(t *testing.T, itens ...dto.ItemVendaRequest) *dto.PedidoResponse {
	t.Helper()
	out, err := c.uc.CriarVenda(context.Background(), c.sess, dto.CreateVendaRequest{
		ClienteID: clienteID,
		Itens:     itens,
	})
	require.NoError(t, err)
	return out
}

func estoqueDe(t *testing.T, c *cenario, produtoID string) int {
	t.Helper()
	p, err := c.produtos.GetByID(context.Background(), produtoID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantidadeEstoque
}

// ──────────────────────────────────────────────────────────────────────────────
// Venda rápida
// ──────────────────────────────────────────────────────────────────────────────

func TestCriarVenda_NumeracaoSequencialEPrecoDoCadastro(t *testing.T) {
	c := novoCenario(t)

	primeira := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 2})
	segunda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-2", Quantidade: 3})

	assert.Equal(t, 1, primeira.NumeroPedido)
	assert.Equal(t, 2, segunda.NumeroPedido, "numeração deve ser sequencial por empresa")

	// Preço vem do cadastro, nunca do chamador: 2 × 10.00 = 20.00.
	assert.True(t, primeira.ValorTotal.Equal(decimal.NewFromFloat(20.00)),
		"valorTotal esperado 20.00, veio %s", primeira.ValorTotal)
	assert.Equal(t, string(entity.PedidoOrcamento), primeira.Status)
}

func TestCriarVenda_OrcamentoNaoMoveEstoque(t *testing.T) {
	c := novoCenario(t)

	c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 10})

	assert.Equal(t, 50, estoqueDe(t, c, "prod-1"),
		"ORCAMENTO não pode baixar estoque")
	assert.Empty(t, c.movs.movs, "não deve haver movimentação")
	assert.False(t, c.clientes.clientes[clienteID].PrimeiraCompraConcluida)
}

func TestCriarVenda_SemItens_ErrInvalidInput(t *testing.T) {
	c := novoCenario(t)
	_, err := c.uc.CriarVenda(context.Background(), c.sess, dto.CreateVendaRequest{ClienteID: clienteID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCriarVenda_ProdutoDeOutraEmpresa_ErrNotFound(t *testing.T) {
	c := novoCenario(t)
	c.produtos.produtos["prod-alheio"] = &entity.Produto{
		ID: "prod-alheio", EmpresaID: "emp-2", Nome: "Alheio",
		Tipo: entity.ItemProduto, Preco: decimal.NewFromInt(1),
	}

	_, err := c.uc.CriarVenda(context.Background(), c.sess, dto.CreateVendaRequest{
		ClienteID: clienteID,
		Itens:     []dto.ItemVendaRequest{{ProdutoID: "prod-alheio", Quantidade: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atualização com estorno/rebaixa
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateVenda_ConversaoParaVendidoBaixaEstoque(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t,
		dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 2},
		dto.ItemVendaRequest{ProdutoID: "prod-2", Quantidade: 3},
	)

	status := string(entity.PedidoVendido)
	out, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, status, out.Status)
	assert.Equal(t, 48, estoqueDe(t, c, "prod-1"))
	assert.Equal(t, 47, estoqueDe(t, c, "prod-2"))
	assert.True(t, c.clientes.clientes[clienteID].PrimeiraCompraConcluida,
		"VENDIDO deve marcar a primeira compra do cliente")

	// Razão: uma SAIDA por linha física.
	require.Len(t, c.movs.movs, 2)
	for _, m := range c.movs.movs {
		assert.Equal(t, entity.MovimentacaoSaida, m.Tipo)
	}
}

func TestUpdateVenda_EstornoDevolveQuantidadesExatas(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 7})

	vendido := string(entity.PedidoVendido)
	_, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &vendido})
	require.NoError(t, err)
	require.Equal(t, 43, estoqueDe(t, c, "prod-1"))

	recusado := string(entity.PedidoRecusado)
	_, err = c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &recusado})
	require.NoError(t, err)

	assert.Equal(t, 50, estoqueDe(t, c, "prod-1"),
		"o estorno deve devolver exatamente as quantidades baixadas")
}

func TestUpdateVenda_TrocaDeItensRecalculaTotal(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 1})

	out, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: "prod-1", Quantidade: 2},
			{ProdutoID: "prod-2", Quantidade: 3},
		},
	})
	require.NoError(t, err)

	// 2 × 10.00 + 3 × 5.00 = 35.00
	assert.True(t, out.ValorTotal.Equal(decimal.NewFromFloat(35.00)),
		"valorTotal esperado 35.00, veio %s", out.ValorTotal)
	assert.Len(t, out.Itens, 2)
}

func TestUpdateVenda_TrocaDeItensEmPedidoVendidoReconciliaEstoque(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 10})

	vendido := string(entity.PedidoVendido)
	_, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &vendido})
	require.NoError(t, err)
	require.Equal(t, 40, estoqueDe(t, c, "prod-1"))

	// Continua VENDIDO, mas agora com 4 unidades: estorna as 10 e baixa 4.
	_, err = c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{
		Itens: []dto.ItemVendaRequest{{ProdutoID: "prod-1", Quantidade: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, 46, estoqueDe(t, c, "prod-1"))
}

func TestUpdateVenda_StatusInvalido_ErrInvalidInput(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 1})

	status := "ENTREGUE"
	_, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exclusão
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteVenda_VendidoEstornaEstoque(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-2", Quantidade: 5})

	vendido := string(entity.PedidoVendido)
	_, err := c.uc.UpdateVenda(context.Background(), c.sess, venda.ID, dto.UpdateVendaRequest{Status: &vendido})
	require.NoError(t, err)
	require.Equal(t, 45, estoqueDe(t, c, "prod-2"))

	require.NoError(t, c.uc.DeleteVenda(context.Background(), c.sess, venda.ID))

	assert.Equal(t, 50, estoqueDe(t, c, "prod-2"))
	_, err = c.uc.Get(context.Background(), c.sess, venda.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteVenda_OrcamentoNaoMoveEstoque(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 5})

	require.NoError(t, c.uc.DeleteVenda(context.Background(), c.sess, venda.ID))

	assert.Equal(t, 50, estoqueDe(t, c, "prod-1"))
	assert.Empty(t, c.movs.movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barreira de tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_PedidoDeOutraOrganizacao_ErrForbidden(t *testing.T) {
	c := novoCenario(t)
	venda := c.criarVenda(t, dto.ItemVendaRequest{ProdutoID: "prod-1", Quantidade: 1})

	intruso := tenant.Contexto{
		UserID: "user-2", OrganizacaoID: outraOrgID, Role: entity.RoleAdmin,
	}
	_, err := c.uc.Get(context.Background(), intruso, venda.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"pedido de outra organização deve devolver forbidden, nunca not found")
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_SempreDevolveOsQuatroStatus(t *testing.T) {
	c := novoCenario(t)
	c.pedidos.summary = []repository.StatusSummary{
		{Status: entity.PedidoVendido, Count: 2, Total: decimal.NewFromFloat(120.50)},
	}

	out, err := c.uc.Summary(context.Background(), c.sess, vendas.FiltroListagem{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Vendido.Count)
	assert.True(t, out.Vendido.Total.Equal(decimal.NewFromFloat(120.50)))

	// Status sem pedidos vêm zerados, não omitidos.
	assert.Equal(t, 0, out.Orcamento.Count)
	assert.True(t, out.Orcamento.Total.Equal(decimal.Zero))
	assert.Equal(t, 0, out.Recusado.Count)
	assert.Equal(t, 0, out.Pendente.Count)
}

func TestSummary_StatusInvalidoNoFiltro_ErrInvalidInput(t *testing.T) {
	c := novoCenario(t)
	_, err := c.uc.Summary(context.Background(), c.sess, vendas.FiltroListagem{Status: "ENTREGUE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
