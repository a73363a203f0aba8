package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mare-erp/mare-api/internal/application/auth"
	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

const (
	loginEmail = "ana@mare.dev"
	loginSenha = "senha-forte"
)

// fakeUsuarios um único usuário cadastrado; UpdateUltimoLogin pode ser
// configurado para falhar.
type fakeUsuarios struct {
	usuario          *entity.Usuario
	falhaUltimoLogin bool
}

func (f *fakeUsuarios) Create(_ context.Context, _ *entity.Usuario) error { return nil }
func (f *fakeUsuarios) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	if f.usuario != nil && f.usuario.ID == id {
		return f.usuario, nil
	}
	return nil, nil
}
func (f *fakeUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	if f.usuario != nil && f.usuario.Email == email {
		return f.usuario, nil
	}
	return nil, nil
}
func (f *fakeUsuarios) UpdateUltimoLogin(_ context.Context, _ string, _ time.Time) error {
	if f.falhaUltimoLogin {
		return errors.New("conexão perdida")
	}
	return nil
}

type fakeMembros struct{}

func (fakeMembros) Create(_ context.Context, _ *entity.MembroOrganizacao) error { return nil }
func (fakeMembros) GetByID(_ context.Context, _ string) (*entity.MembroOrganizacao, error) {
	return nil, nil
}
func (fakeMembros) GetByOrganizacaoEUsuario(_ context.Context, _, _ string) (*entity.MembroOrganizacao, error) {
	return nil, nil
}
func (fakeMembros) GetPrimeiroAtivoDoUsuario(_ context.Context, usuarioID string) (*entity.MembroOrganizacao, error) {
	return &entity.MembroOrganizacao{
		ID:            "m1",
		OrganizacaoID: "org-1",
		UsuarioID:     usuarioID,
		Role:          entity.RoleAdmin,
		Ativo:         true,
	}, nil
}
func (fakeMembros) ListByOrganizacao(_ context.Context, _ string) ([]repository.MembroComUsuario, error) {
	return nil, nil
}
func (fakeMembros) UpdateRole(_ context.Context, _ string, _ entity.Role) error { return nil }
func (fakeMembros) Delete(_ context.Context, _ string) error                    { return nil }

type fakeOrgs struct{}

func (fakeOrgs) Create(_ context.Context, _ *entity.Organizacao) error { return nil }
func (fakeOrgs) GetByID(_ context.Context, id string) (*entity.Organizacao, error) {
	return &entity.Organizacao{ID: id, Nome: "Org Teste"}, nil
}

type fakeEmpresas struct{}

func (fakeEmpresas) Create(_ context.Context, _ *entity.Empresa) error { return nil }
func (fakeEmpresas) GetByID(_ context.Context, _ string) (*entity.Empresa, error) {
	return nil, nil
}
func (fakeEmpresas) GetByCNPJ(_ context.Context, _ string) (*entity.Empresa, error) {
	return nil, nil
}
func (fakeEmpresas) Update(_ context.Context, _ *entity.Empresa) error { return nil }
func (fakeEmpresas) ListAtivasByOrganizacao(_ context.Context, organizacaoID string) ([]*entity.Empresa, error) {
	return []*entity.Empresa{{ID: "emp-1", OrganizacaoID: organizacaoID, Nome: "Matriz", Ativa: true}}, nil
}
func (fakeEmpresas) ListIDsByOrganizacao(_ context.Context, _ string) ([]string, error) {
	return []string{"emp-1"}, nil
}
func (fakeEmpresas) Stats(_ context.Context, _ string) (repository.EmpresaStats, error) {
	return repository.EmpresaStats{}, nil
}

func novoAuthUC(t *testing.T, usuarios *fakeUsuarios) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(nil, usuarios, fakeOrgs{}, fakeEmpresas{}, fakeMembros{}, auth.JWTConfig{
		Secret:     "segredo-de-teste",
		ExpMinutes: 60,
		Issuer:     "mare-erp-test",
	})
}

func usuarioAtivo(t *testing.T) *entity.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(loginSenha), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Usuario{
		ID:        "u1",
		Nome:      "Ana",
		Email:     loginEmail,
		SenhaHash: string(hash),
		Ativo:     true,
	}
}

func TestLogin_Sucesso(t *testing.T) {
	uc := novoAuthUC(t, &fakeUsuarios{usuario: usuarioAtivo(t)})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: loginEmail, Senha: loginSenha})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u1", out.Usuario.ID)
	assert.Equal(t, string(entity.RoleAdmin), out.Role)
}

// O carimbo de último login é acessório: falha no update não derruba o
// login, apenas deixa o campo sem atualizar.
func TestLogin_FalhaNoUltimoLogin_NaoDerrubaLogin(t *testing.T) {
	usuario := usuarioAtivo(t)
	uc := novoAuthUC(t, &fakeUsuarios{usuario: usuario, falhaUltimoLogin: true})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: loginEmail, Senha: loginSenha})
	require.NoError(t, err, "o login deve seguir mesmo sem registrar o último acesso")

	assert.NotEmpty(t, out.Token)
	assert.Nil(t, usuario.UltimoLogin, "o carimbo não pode ser aplicado quando a persistência falhou")
}

func TestLogin_SenhaErrada_ErrUnauthorized(t *testing.T) {
	uc := novoAuthUC(t, &fakeUsuarios{usuario: usuarioAtivo(t)})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: loginEmail, Senha: "outra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconhecido_ErrUsuarioNotFound(t *testing.T) {
	uc := novoAuthUC(t, &fakeUsuarios{})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@mare.dev", Senha: loginSenha})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
