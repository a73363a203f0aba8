package vendas_test

import (
	"context"
	"time"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// Fakes em memória dos portos de persistência. Sem goroutines nos testes,
// então não há sincronização.

type fakeEmpresaRepo struct {
	empresas map[string]*entity.Empresa
}

func newFakeEmpresaRepo(empresas ...*entity.Empresa) *fakeEmpresaRepo {
	m := make(map[string]*entity.Empresa)
	for _, e := range empresas {
		m[e.ID] = e
	}
	return &fakeEmpresaRepo{empresas: m}
}

func (f *fakeEmpresaRepo) Create(_ context.Context, e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}

func (f *fakeEmpresaRepo) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	return f.empresas[id], nil
}

func (f *fakeEmpresaRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Empresa, error) {
	for _, e := range f.empresas {
		if e.CNPJ == cnpj {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmpresaRepo) Update(_ context.Context, e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}

func (f *fakeEmpresaRepo) ListAtivasByOrganizacao(_ context.Context, orgID string) ([]*entity.Empresa, error) {
	var out []*entity.Empresa
	for _, e := range f.empresas {
		if e.OrganizacaoID == orgID && e.Ativa {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmpresaRepo) ListIDsByOrganizacao(_ context.Context, orgID string) ([]string, error) {
	var out []string
	for _, e := range f.empresas {
		if e.OrganizacaoID == orgID && e.Ativa {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (f *fakeEmpresaRepo) Stats(_ context.Context, _ string) (repository.EmpresaStats, error) {
	return repository.EmpresaStats{}, nil
}

type fakeClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func newFakeClienteRepo(clientes ...*entity.Cliente) *fakeClienteRepo {
	m := make(map[string]*entity.Cliente)
	for _, c := range clientes {
		m[c.ID] = c
	}
	return &fakeClienteRepo{clientes: m}
}

func (f *fakeClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeClienteRepo) GetByID(_ context.Context, id, empresaID string) (*entity.Cliente, error) {
	c, ok := f.clientes[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeClienteRepo) GetByCpfCnpj(_ context.Context, empresaID, doc string) (*entity.Cliente, error) {
	for _, c := range f.clientes {
		if c.EmpresaID == empresaID && c.CpfCnpj == doc && doc != "" {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeClienteRepo) Delete(_ context.Context, id, _ string) error {
	delete(f.clientes, id)
	return nil
}

func (f *fakeClienteRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range f.clientes {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClienteRepo) CountPedidos(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeClienteRepo) MarcarPrimeiraCompra(_ context.Context, id string) error {
	if c, ok := f.clientes[id]; ok {
		c.PrimeiraCompraConcluida = true
	}
	return nil
}

func (f *fakeClienteRepo) Summary(_ context.Context, _ string, _ time.Time) (repository.ClienteSummary, error) {
	return repository.ClienteSummary{}, nil
}

type fakeProdutoRepo struct {
	produtos map[string]*entity.Produto
}

func newFakeProdutoRepo(produtos ...*entity.Produto) *fakeProdutoRepo {
	m := make(map[string]*entity.Produto)
	for _, p := range produtos {
		m[p.ID] = p
	}
	return &fakeProdutoRepo{produtos: m}
}

func (f *fakeProdutoRepo) Create(_ context.Context, p *entity.Produto) error {
	f.produtos[p.ID] = p
	return nil
}

func (f *fakeProdutoRepo) GetByID(_ context.Context, id string) (*entity.Produto, error) {
	return f.produtos[id], nil
}

func (f *fakeProdutoRepo) GetBySKU(_ context.Context, empresaID, sku string) (*entity.Produto, error) {
	for _, p := range f.produtos {
		if p.EmpresaID == empresaID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProdutoRepo) Update(_ context.Context, p *entity.Produto) error {
	f.produtos[p.ID] = p
	return nil
}

func (f *fakeProdutoRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Produto, error) {
	var out []*entity.Produto
	for _, p := range f.produtos {
		if p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProdutoRepo) List(_ context.Context, _ repository.FiltroProdutos) ([]*entity.Produto, error) {
	return nil, nil
}

func (f *fakeProdutoRepo) CountByEmpresa(_ context.Context, empresaID string) (int, error) {
	n := 0
	for _, p := range f.produtos {
		if p.EmpresaID == empresaID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProdutoRepo) AjustarEstoque(_ context.Context, id string, delta int) error {
	if p, ok := f.produtos[id]; ok {
		p.QuantidadeEstoque += delta
	}
	return nil
}

func (f *fakeProdutoRepo) Metricas(_ context.Context, _ string) (repository.MetricasEstoque, error) {
	return repository.MetricasEstoque{}, nil
}

type fakeMovRepo struct {
	movs []*entity.MovimentacaoEstoque
}

func (f *fakeMovRepo) Create(_ context.Context, m *entity.MovimentacaoEstoque) error {
	f.movs = append(f.movs, m)
	return nil
}

type fakePedidoRepo struct {
	pedidos    map[string]*entity.Pedido
	itens      map[string][]*entity.ItemPedido
	historicos []*entity.HistoricoPedido
	summary    []repository.StatusSummary
}

func newFakePedidoRepo(pedidos ...*entity.Pedido) *fakePedidoRepo {
	m := make(map[string]*entity.Pedido)
	for _, p := range pedidos {
		m[p.ID] = p
	}
	return &fakePedidoRepo{pedidos: m, itens: make(map[string][]*entity.ItemPedido)}
}

func (f *fakePedidoRepo) Create(_ context.Context, p *entity.Pedido) error {
	f.pedidos[p.ID] = p
	return nil
}

func (f *fakePedidoRepo) GetByID(_ context.Context, id, empresaID string) (*entity.Pedido, error) {
	p, ok := f.pedidos[id]
	if !ok {
		return nil, nil
	}
	if empresaID != "" && p.EmpresaID != empresaID {
		return nil, nil
	}
	return p, nil
}

func (f *fakePedidoRepo) GetByNumero(_ context.Context, empresaID string, numero int) (*entity.Pedido, error) {
	for _, p := range f.pedidos {
		if p.EmpresaID == empresaID && p.NumeroPedido == numero {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePedidoRepo) ProximoNumero(_ context.Context, empresaID string) (int, error) {
	max := 0
	for _, p := range f.pedidos {
		if p.EmpresaID == empresaID && p.NumeroPedido > max {
			max = p.NumeroPedido
		}
	}
	return max + 1, nil
}

func (f *fakePedidoRepo) Update(_ context.Context, p *entity.Pedido) error {
	f.pedidos[p.ID] = p
	return nil
}

func (f *fakePedidoRepo) Delete(_ context.Context, id, _ string) error {
	delete(f.pedidos, id)
	return nil
}

func (f *fakePedidoRepo) List(_ context.Context, filtro repository.FiltroPedidos) ([]repository.PedidoComNomes, error) {
	var out []repository.PedidoComNomes
	for _, p := range f.pedidos {
		for _, id := range filtro.EmpresaIDs {
			if p.EmpresaID == id {
				out = append(out, repository.PedidoComNomes{Pedido: *p})
			}
		}
	}
	return out, nil
}

func (f *fakePedidoRepo) SummaryPorStatus(_ context.Context, _ repository.FiltroPedidos) ([]repository.StatusSummary, error) {
	return f.summary, nil
}

func (f *fakePedidoRepo) CreateItem(_ context.Context, item *entity.ItemPedido) error {
	f.itens[item.PedidoID] = append(f.itens[item.PedidoID], item)
	return nil
}

func (f *fakePedidoRepo) ListItens(_ context.Context, pedidoID string) ([]*entity.ItemPedido, error) {
	return f.itens[pedidoID], nil
}

func (f *fakePedidoRepo) DeleteItens(_ context.Context, pedidoID string) error {
	delete(f.itens, pedidoID)
	return nil
}

func (f *fakePedidoRepo) CreateHistorico(_ context.Context, h *entity.HistoricoPedido) error {
	f.historicos = append(f.historicos, h)
	return nil
}

// fakeTxRunner entrega os mesmos fakes ao callback, sem transação real.
type fakeTxRunner struct {
	pedidos  *fakePedidoRepo
	produtos *fakeProdutoRepo
	movs     *fakeMovRepo
	clientes *fakeClienteRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	pedidos repository.PedidoRepository,
	produtos repository.ProdutoRepository,
	movs repository.MovimentacaoRepository,
	clientes repository.ClienteRepository,
) error) error {
	return fn(f.pedidos, f.produtos, f.movs, f.clientes)
}
