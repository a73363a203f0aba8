package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/auth"
	"github.com/mare-erp/mare-api/internal/application/usecase"
	"github.com/mare-erp/mare-api/internal/application/vendas"
	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	VendasUC      *vendas.VendasUseCase
	CreatePedido  *vendas.CreatePedidoUseCase
	PDFUC         *vendas.PDFUseCase
	ClienteUC     *usecase.ClienteUseCase
	ProdutoUC     *usecase.ProdutoUseCase
	FinanceiroUC  *usecase.FinanceiroUseCase
	CalendarioUC  *usecase.CalendarioUseCase
	KanbanUC      *usecase.KanbanUseCase
	MembroUC      *usecase.MembroUseCase
	OrganizacaoUC *usecase.OrganizacaoUseCase
	JWTSecret     string
	JWTExpMinutes int
}

// Router registra as rotas da API. Todo grupo protegido passa pelo
// AuthMiddleware; a permissão por módulo/ação vem de RequirePermissao.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (signup/login públicos; me/logout exigem sessão)
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTExpMinutes)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rotas protegidas (cookie auth-token ou Bearer)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Vendas
	vendaHandler := NewVendaHandler(deps.VendasUC, deps.CreatePedido, deps.PDFUC)
	vendasGroup := protected.Group("/vendas")
	vendasGroup.Get("/", RequirePermissao(entity.ModuloVendas, entity.AcaoVisualizar), vendaHandler.List)
	vendasGroup.Post("/", RequirePermissao(entity.ModuloVendas, entity.AcaoCriar), vendaHandler.CriarVenda)
	vendasGroup.Get("/summary", RequirePermissao(entity.ModuloVendas, entity.AcaoVisualizar), vendaHandler.Summary)
	vendasGroup.Get("/:id", RequirePermissao(entity.ModuloVendas, entity.AcaoVisualizar), vendaHandler.Get)
	vendasGroup.Put("/:id", RequirePermissao(entity.ModuloVendas, entity.AcaoEditar), vendaHandler.Update)
	vendasGroup.Delete("/:id", RequirePermissao(entity.ModuloVendas, entity.AcaoExcluir), vendaHandler.Delete)
	vendasGroup.Get("/:id/pdf", RequirePermissao(entity.ModuloVendas, entity.AcaoVisualizar), vendaHandler.PDF)

	// Pedidos: listagem org-wide e criação completa (número explícito)
	protected.Get("/pedidos", RequirePermissao(entity.ModuloVendas, entity.AcaoVisualizar), vendaHandler.List)
	protected.Post("/pedidos", RequirePermissao(entity.ModuloVendas, entity.AcaoCriar), vendaHandler.CriarPedido)

	// Clientes
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientesGroup := protected.Group("/clientes")
	clientesGroup.Get("/", RequirePermissao(entity.ModuloClientes, entity.AcaoVisualizar), clienteHandler.List)
	clientesGroup.Post("/", RequirePermissao(entity.ModuloClientes, entity.AcaoCriar), clienteHandler.Create)
	clientesGroup.Get("/summary", RequirePermissao(entity.ModuloClientes, entity.AcaoVisualizar), clienteHandler.Summary)
	clientesGroup.Get("/:id", RequirePermissao(entity.ModuloClientes, entity.AcaoVisualizar), clienteHandler.Get)
	clientesGroup.Put("/:id", RequirePermissao(entity.ModuloClientes, entity.AcaoEditar), clienteHandler.Update)
	clientesGroup.Delete("/:id", RequirePermissao(entity.ModuloClientes, entity.AcaoExcluir), clienteHandler.Delete)

	// Estoque
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	estoqueGroup := protected.Group("/estoque")
	estoqueGroup.Get("/produtos", RequirePermissao(entity.ModuloEstoque, entity.AcaoVisualizar), produtoHandler.List)
	estoqueGroup.Post("/produtos", RequirePermissao(entity.ModuloEstoque, entity.AcaoCriar), produtoHandler.Create)
	estoqueGroup.Get("/metricas", RequirePermissao(entity.ModuloEstoque, entity.AcaoVisualizar), produtoHandler.Metricas)
	estoqueGroup.Get("/produtos/:id", RequirePermissao(entity.ModuloEstoque, entity.AcaoVisualizar), produtoHandler.Get)
	estoqueGroup.Put("/produtos/:id", RequirePermissao(entity.ModuloEstoque, entity.AcaoEditar), produtoHandler.Update)
	estoqueGroup.Delete("/produtos/:id", RequirePermissao(entity.ModuloEstoque, entity.AcaoExcluir), produtoHandler.Desativar)

	// Aliases usados pela tela de vendas (seletor e cadastro rápido)
	protected.Get("/produtos", RequirePermissao(entity.ModuloEstoque, entity.AcaoVisualizar), produtoHandler.List)
	protected.Post("/produtos", RequirePermissao(entity.ModuloEstoque, entity.AcaoCriar), produtoHandler.Create)

	// Financeiro
	financeiroHandler := NewFinanceiroHandler(deps.FinanceiroUC)
	financeiroGroup := protected.Group("/financeiro")
	financeiroGroup.Get("/transacoes", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoVisualizar), financeiroHandler.List)
	financeiroGroup.Post("/transacoes", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoCriar), financeiroHandler.Create)
	financeiroGroup.Put("/transacoes/:id", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoEditar), financeiroHandler.Update)
	financeiroGroup.Delete("/transacoes/:id", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoExcluir), financeiroHandler.Delete)
	financeiroGroup.Get("/summary", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoVisualizar), financeiroHandler.Summary)
	financeiroGroup.Get("/dashboard-data", RequirePermissao(entity.ModuloFinanceiro, entity.AcaoVisualizar), financeiroHandler.DashboardData)

	// Calendário + kanban
	calendarioHandler := NewCalendarioHandler(deps.CalendarioUC)
	protected.Get("/calendario", RequirePermissao(entity.ModuloCalendario, entity.AcaoVisualizar), calendarioHandler.List)
	protected.Post("/calendario", RequirePermissao(entity.ModuloCalendario, entity.AcaoCriar), calendarioHandler.Create)
	protected.Get("/calendario/summary", RequirePermissao(entity.ModuloCalendario, entity.AcaoVisualizar), calendarioHandler.Summary)
	protected.Put("/calendario/:id", RequirePermissao(entity.ModuloCalendario, entity.AcaoEditar), calendarioHandler.Update)
	protected.Delete("/calendario/:id", RequirePermissao(entity.ModuloCalendario, entity.AcaoExcluir), calendarioHandler.Delete)
	protected.Post("/calendario/:id/clone", RequirePermissao(entity.ModuloCalendario, entity.AcaoCriar), calendarioHandler.Clone)

	kanbanHandler := NewKanbanHandler(deps.KanbanUC)
	kanbanGroup := protected.Group("/kanban/stages")
	kanbanGroup.Get("/", RequirePermissao(entity.ModuloCalendario, entity.AcaoVisualizar), kanbanHandler.List)
	kanbanGroup.Post("/", RequirePermissao(entity.ModuloCalendario, entity.AcaoCriar), kanbanHandler.Create)
	kanbanGroup.Put("/:id", RequirePermissao(entity.ModuloCalendario, entity.AcaoEditar), kanbanHandler.Update)
	kanbanGroup.Delete("/:id", RequirePermissao(entity.ModuloCalendario, entity.AcaoExcluir), kanbanHandler.Delete)

	// Membros da organização. Qualquer membro autenticado pode listar o
	// time; convidar e gerenciar exigem gerenciar-membros (a regra fina
	// fica também no use case). /membros e /usuarios servem a mesma
	// listagem e convite.
	membroHandler := NewMembroHandler(deps.MembroUC)
	protected.Get("/configuracoes/membros", membroHandler.List)
	protected.Post("/configuracoes/membros", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarMembros), membroHandler.Convidar)
	protected.Get("/membros", membroHandler.List)
	protected.Post("/membros", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarMembros), membroHandler.Convidar)
	protected.Put("/membros/:id", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarMembros), membroHandler.AlterarRole)
	protected.Delete("/membros/:id", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarMembros), membroHandler.Remover)
	protected.Get("/usuarios", membroHandler.List)
	protected.Post("/usuarios", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarMembros), membroHandler.Convidar)

	// Organização e empresas
	orgHandler := NewOrganizacaoHandler(deps.OrganizacaoUC)
	protected.Get("/organizacao/current", orgHandler.Current)
	protected.Get("/organizacoes/:id/empresas", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoVisualizar), orgHandler.ListEmpresas)
	protected.Post("/organizacoes/:id/empresas", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarEmpresa), orgHandler.CreateEmpresa)
	protected.Get("/empresa", orgHandler.GetEmpresaAtiva)
	protected.Put("/empresa", RequirePermissao(entity.ModuloConfiguracoes, entity.AcaoGerenciarEmpresa), orgHandler.UpdateEmpresaAtiva)
}
