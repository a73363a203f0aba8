package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/domain"
)

func capturarLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })
	return &buf
}

func dispararErro(t *testing.T, err error) (*http.Response, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/recurso", func(c *fiber.Ctx) error {
		return responderErro(c, err)
	})
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/recurso", nil), -1)
	require.NoError(t, testErr)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

// Erro sem sentinela: 500 com mensagem genérica para o cliente e o erro
// real no log do servidor.
func TestResponderErro_ErroDesconhecido_LogadoComMensagemGenerica(t *testing.T) {
	buf := capturarLog(t)

	resp, body := dispararErro(t, errors.New("pgx: conexão recusada"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "erro interno")
	assert.NotContains(t, body, "conexão recusada", "detalhe interno não pode vazar ao cliente")

	logado := buf.String()
	assert.Contains(t, logado, "conexão recusada")
	assert.Contains(t, logado, "/recurso")
}

// Sentinela conhecida não passa pelo log de erro interno.
func TestResponderErro_SentinelaNaoGeraLogDeErroInterno(t *testing.T) {
	buf := capturarLog(t)

	resp, _ := dispararErro(t, domain.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, buf.String())
}
