package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mare-erp/mare-api/internal/application/auth"
	"github.com/mare-erp/mare-api/internal/application/dto"
)

// AuthHandler maneja as rotas de autenticação (signup, login, logout, me).
type AuthHandler struct {
	uc         *auth.AuthUseCase
	expMinutes int
}

// NewAuthHandler constrói o handler. expMinutes controla a validade do
// cookie de sessão (a mesma do token).
func NewAuthHandler(uc *auth.AuthUseCase, expMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, expMinutes: expMinutes}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return responderErro(c, err)
	}
	h.setCookieSessao(c, out.Token)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyInvalido(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return responderErro(c, err)
	}
	h.setCookieSessao(c, out.Token)
	return c.JSON(out)
}

// Logout POST /api/auth/logout — apenas expira o cookie; o token em si
// continua válido até o exp (sem blacklist server-side).
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieAuthToken,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{"message": "sessão encerrada"})
}

// Me GET /api/auth/me (protegido)
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSessao(c)
	out, err := h.uc.Me(c.UserContext(), sess.UserID, sess.OrganizacaoID, sess.Role)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

func (h *AuthHandler) setCookieSessao(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieAuthToken,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(h.expMinutes) * time.Minute),
	})
}
