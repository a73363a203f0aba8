package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/pkg/jwt"
)

const (
	testSecret = "unit-test-secret"
	testUser   = "00000000-0000-0000-0000-000000000001"
	testEmp    = "00000000-0000-0000-0000-000000000002"
	testOrg    = "00000000-0000-0000-0000-000000000003"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testUser, testEmp, testOrg, "GESTOR", "mare-erp", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sess, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUser, sess.UserID)
	assert.Equal(t, testEmp, sess.EmpresaID)
	assert.Equal(t, testOrg, sess.OrganizacaoID)
	assert.Equal(t, "GESTOR", sess.Role)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Expiração -1 minuto: já nasce expirado.
	tok, err := jwt.Generate(testSecret, testUser, testEmp, testOrg, "ADMIN", "mare-erp", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestParse_SecretIncorreto(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testUser, testEmp, testOrg, "ADMIN", "mare-erp", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := jwt.Generate("", testUser, testEmp, testOrg, "ADMIN", "mare-erp", 60)
	assert.Error(t, err)
}

func TestParse_EmpresaVazia(t *testing.T) {
	// Usuário sem empresa ativa loga com empresaId vazio no token.
	tok, err := jwt.Generate(testSecret, testUser, "", testOrg, "VISUALIZADOR", "mare-erp", 60)
	require.NoError(t, err)

	sess, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, sess.EmpresaID)
}
