package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	apphttp "github.com/mare-erp/mare-api/internal/interfaces/http"
	pkgjwt "github.com/mare-erp/mare-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmpresaID = "00000000-0000-0000-0000-000000000002"
	testOrgID     = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "mare-erp-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com:
//   - AuthMiddleware para validar o JWT e carregar o contexto da sessão
//   - RequirePermissao para autorizar o acesso
//   - Um handler dummy que devolve 200 se passar pelos middlewares
func buildTestApp(modulo entity.Modulo, acao entity.Acao) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermissao(modulo, acao),
		func(c *fiber.Ctx) error {
			sess := apphttp.GetSessao(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": string(sess.Role),
			})
		},
	)
	return app
}

// tokenForRole gera um JWT com o role indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmpresaID, testOrgID, role, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return tok
}

// doRequest dispara GET /protected com o token no header Authorization.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermissao
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: o role concede a permissão → deve passar (HTTP 200).
func TestRequirePermissao_AdminExcluiVenda(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoExcluir)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"ADMIN deve poder excluir vendas")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "a resposta deve incluir ok:true")
	assert.Equal(t, "ADMIN", body["role"])
}

// Caso 1b: OPERADOR pode criar venda → HTTP 200.
func TestRequirePermissao_OperadorCriaVenda(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoCriar)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "OPERADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"OPERADOR deve poder criar vendas")
}

// Caso 2: a matriz não concede (módulo, ação) → HTTP 403 Forbidden.
func TestRequirePermissao_VisualizadorBloqueadoAoCriar(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoCriar)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "VISUALIZADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"VISUALIZADOR nunca deve poder criar")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "permissão negada")
}

// Caso 2b: OPERADOR não exclui clientes → HTTP 403.
func TestRequirePermissao_OperadorBloqueadoAoExcluirCliente(t *testing.T) {
	app := buildTestApp(entity.ModuloClientes, entity.AcaoExcluir)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "OPERADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 2c: só ADMIN gerencia empresas; GESTOR é bloqueado → HTTP 403.
func TestRequirePermissao_GestorBloqueadoAoGerenciarEmpresa(t *testing.T) {
	app := buildTestApp(entity.ModuloConfiguracoes, entity.AcaoGerenciarEmpresa)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "GESTOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: token com role desconhecido → HTTP 401 (token rejeitado no parse
// do role, nunca cai num default permissivo).
func TestAuthMiddleware_RoleDesconhecido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoVisualizar)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "SUPERUSER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"role fora da matriz deve retornar 401")
}

// Caso 4: sem credencial nenhuma → HTTP 401.
func TestAuthMiddleware_SemToken_Retorna401(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoVisualizar)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token inválido / malformado → HTTP 401.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoVisualizar)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — cookie e extração do contexto
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_AceitaCookieDeSessao(t *testing.T) {
	app := buildTestApp(entity.ModuloVendas, entity.AcaoVisualizar)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieAuthToken, Value: tokenForRole(t, "GESTOR")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"o cookie auth-token deve valer como credencial")
}

func TestAuthMiddleware_ExtraiContextoDaSessao(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		sess := apphttp.GetSessao(c)
		return c.JSON(fiber.Map{
			"userId":        sess.UserID,
			"empresaId":     sess.EmpresaID,
			"organizacaoId": sess.OrganizacaoID,
			"role":          string(sess.Role),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "ADMIN"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, testEmpresaID, body["empresaId"])
	assert.Equal(t, testOrgID, body["organizacaoId"])
	assert.Equal(t, "ADMIN", body["role"])
}
