package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mare-erp/mare-api/internal/application/auditoria"
	"github.com/mare-erp/mare-api/internal/application/auth"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/application/usecase"
	"github.com/mare-erp/mare-api/internal/application/vendas"
	infrapdf "github.com/mare-erp/mare-api/internal/infrastructure/pdf"
	"github.com/mare-erp/mare-api/internal/infrastructure/postgres"
	httpRouter "github.com/mare-erp/mare-api/internal/interfaces/http"
	"github.com/mare-erp/mare-api/pkg/config"
	"github.com/mare-erp/mare-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	orgRepo := postgres.NewOrganizacaoRepository(pool)
	empresaRepo := postgres.NewEmpresaRepository(pool)
	membroRepo := postgres.NewMembroRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	movRepo := postgres.NewMovimentacaoRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	transacaoRepo := postgres.NewTransacaoRepository(pool)
	eventoRepo := postgres.NewEventoRepository(pool)
	stageRepo := postgres.NewStageRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := tenant.NewResolver(empresaRepo)
	auditor := auditoria.NewAuditor(auditoriaRepo, log.Zerolog())

	authUC := auth.NewAuthUseCase(txRunner, usuarioRepo, orgRepo, empresaRepo, membroRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	vendasUC := vendas.NewVendasUseCase(txRunner, resolver, pedidoRepo, clienteRepo, produtoRepo)
	createPedidoUC := vendas.NewCreatePedidoUseCase(txRunner, resolver, clienteRepo)

	// PDF: representação imprimível do pedido/orçamento
	pdfGenerator := infrapdf.NewMarotoPedidoGenerator()
	pdfUC := vendas.NewPDFUseCase(resolver, pedidoRepo, empresaRepo, clienteRepo, pdfGenerator)

	clienteUC := usecase.NewClienteUseCase(clienteRepo, resolver)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo, movRepo, resolver)
	financeiroUC := usecase.NewFinanceiroUseCase(transacaoRepo, clienteRepo, resolver)
	calendarioUC := usecase.NewCalendarioUseCase(eventoRepo, stageRepo)
	kanbanUC := usecase.NewKanbanUseCase(stageRepo)
	membroUC := usecase.NewMembroUseCase(txRunner, membroRepo, usuarioRepo)
	organizacaoUC := usecase.NewOrganizacaoUseCase(orgRepo, empresaRepo, resolver, auditor)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Maré ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		VendasUC:      vendasUC,
		CreatePedido:  createPedidoUC,
		PDFUC:         pdfUC,
		ClienteUC:     clienteUC,
		ProdutoUC:     produtoUC,
		FinanceiroUC:  financeiroUC,
		CalendarioUC:  calendarioUC,
		KanbanUC:      kanbanUC,
		MembroUC:      membroUC,
		OrganizacaoUC: organizacaoUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTExpMinutes: cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
