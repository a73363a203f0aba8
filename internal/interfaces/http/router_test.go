package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/application/usecase"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
	apphttp "github.com/mare-erp/mare-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabela de rotas
// ──────────────────────────────────────────────────────────────────────────────

// rotasRegistradas coleta "MÉTODO caminho" do app, com a barra final
// normalizada (grupos do Fiber registram "/api/vendas/" para o GET raiz).
func rotasRegistradas(app *fiber.App) map[string]bool {
	out := make(map[string]bool)
	for _, r := range app.GetRoutes(true) {
		path := r.Path
		if path != "/" {
			path = strings.TrimSuffix(path, "/")
		}
		out[r.Method+" "+path] = true
	}
	return out
}

// Os caminhos públicos da API são contrato com o front: cada operação deve
// estar registrada exatamente nestes paths.
func TestRouter_CaminhosPublicosDaAPI(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	rotas := rotasRegistradas(app)
	esperadas := []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"GET /api/auth/me",

		"GET /api/vendas",
		"POST /api/vendas",
		"GET /api/vendas/summary",
		"GET /api/vendas/:id",
		"PUT /api/vendas/:id",
		"DELETE /api/vendas/:id",
		"GET /api/vendas/:id/pdf",

		"GET /api/pedidos",
		"POST /api/pedidos",

		"GET /api/clientes",
		"POST /api/clientes",
		"GET /api/clientes/summary",
		"GET /api/clientes/:id",
		"PUT /api/clientes/:id",
		"DELETE /api/clientes/:id",

		"GET /api/estoque/produtos",
		"POST /api/estoque/produtos",
		"GET /api/estoque/metricas",
		"GET /api/produtos",
		"POST /api/produtos",

		"GET /api/financeiro/transacoes",
		"POST /api/financeiro/transacoes",
		"GET /api/financeiro/summary",
		"GET /api/financeiro/dashboard-data",

		"GET /api/calendario",
		"POST /api/calendario",
		"GET /api/calendario/summary",
		"PUT /api/calendario/:id",
		"DELETE /api/calendario/:id",
		"POST /api/calendario/:id/clone",

		"GET /api/kanban/stages",
		"POST /api/kanban/stages",

		"GET /api/configuracoes/membros",
		"POST /api/configuracoes/membros",
		"GET /api/membros",
		"POST /api/membros",
		"PUT /api/membros/:id",
		"DELETE /api/membros/:id",
		"GET /api/usuarios",
		"POST /api/usuarios",

		"GET /api/organizacao/current",
		"GET /api/organizacoes/:id/empresas",
		"POST /api/organizacoes/:id/empresas",
		"GET /api/empresa",
		"PUT /api/empresa",
	}
	for _, rota := range esperadas {
		assert.True(t, rotas[rota], "rota ausente: %s", rota)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate da listagem de membros
// ──────────────────────────────────────────────────────────────────────────────

// stubMembroRepo devolve sempre o mesmo time de um membro.
type stubMembroRepo struct{}

func (stubMembroRepo) Create(_ context.Context, _ *entity.MembroOrganizacao) error { return nil }
func (stubMembroRepo) GetByID(_ context.Context, _ string) (*entity.MembroOrganizacao, error) {
	return nil, nil
}
func (stubMembroRepo) GetByOrganizacaoEUsuario(_ context.Context, _, _ string) (*entity.MembroOrganizacao, error) {
	return nil, nil
}
func (stubMembroRepo) GetPrimeiroAtivoDoUsuario(_ context.Context, _ string) (*entity.MembroOrganizacao, error) {
	return nil, nil
}
func (stubMembroRepo) ListByOrganizacao(_ context.Context, organizacaoID string) ([]repository.MembroComUsuario, error) {
	return []repository.MembroComUsuario{{
		Membro:  entity.MembroOrganizacao{ID: "m1", OrganizacaoID: organizacaoID, UsuarioID: "u1", Role: entity.RoleAdmin, Ativo: true},
		Usuario: entity.Usuario{ID: "u1", Nome: "Ana", Email: "ana@mare.dev", Ativo: true},
	}}, nil
}
func (stubMembroRepo) UpdateRole(_ context.Context, _ string, _ entity.Role) error { return nil }
func (stubMembroRepo) Delete(_ context.Context, _ string) error                    { return nil }

func appComMembros() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MembroUC:  usecase.NewMembroUseCase(nil, stubMembroRepo{}, nil),
		JWTSecret: testJWTSecret,
	})
	return app
}

// Qualquer membro autenticado pode ver o time, inclusive VISUALIZADOR.
func TestRouter_VisualizadorListaMembros(t *testing.T) {
	app := appComMembros()
	for _, path := range []string{"/api/configuracoes/membros", "/api/membros", "/api/usuarios"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "VISUALIZADOR"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s deve ser aberto a qualquer membro", path)

		var membros []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&membros))
		resp.Body.Close()
		require.Len(t, membros, 1)
		assert.Equal(t, "m1", membros[0]["id"])
	}
}

// Convidar continua restrito a quem tem gerenciar-membros.
func TestRouter_VisualizadorNaoConvidaMembro(t *testing.T) {
	app := appComMembros()
	req := httptest.NewRequest(http.MethodPost, "/api/membros", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "VISUALIZADOR"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
