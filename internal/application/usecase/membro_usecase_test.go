package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/application/usecase"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

type fakeUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	f.usuarios[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return f.usuarios[id], nil
}

func (f *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsuarioRepo) UpdateUltimoLogin(_ context.Context, id string, em time.Time) error {
	if u, ok := f.usuarios[id]; ok {
		u.UltimoLogin = &em
	}
	return nil
}

type fakeMembroRepo struct {
	membros  map[string]*entity.MembroOrganizacao
	usuarios *fakeUsuarioRepo
}

func (f *fakeMembroRepo) Create(_ context.Context, m *entity.MembroOrganizacao) error {
	f.membros[m.ID] = m
	return nil
}

func (f *fakeMembroRepo) GetByID(_ context.Context, id string) (*entity.MembroOrganizacao, error) {
	return f.membros[id], nil
}

func (f *fakeMembroRepo) GetByOrganizacaoEUsuario(_ context.Context, orgID, usuarioID string) (*entity.MembroOrganizacao, error) {
	for _, m := range f.membros {
		if m.OrganizacaoID == orgID && m.UsuarioID == usuarioID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembroRepo) GetPrimeiroAtivoDoUsuario(_ context.Context, usuarioID string) (*entity.MembroOrganizacao, error) {
	for _, m := range f.membros {
		if m.UsuarioID == usuarioID && m.Ativo {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembroRepo) ListByOrganizacao(_ context.Context, orgID string) ([]repository.MembroComUsuario, error) {
	var out []repository.MembroComUsuario
	for _, m := range f.membros {
		if m.OrganizacaoID != orgID {
			continue
		}
		row := repository.MembroComUsuario{Membro: *m}
		if u := f.usuarios.usuarios[m.UsuarioID]; u != nil {
			row.Usuario = *u
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeMembroRepo) UpdateRole(_ context.Context, id string, role entity.Role) error {
	if m, ok := f.membros[id]; ok {
		m.Role = role
	}
	return nil
}

func (f *fakeMembroRepo) Delete(_ context.Context, id string) error {
	delete(f.membros, id)
	return nil
}

type fakeMembroTx struct {
	usuarios *fakeUsuarioRepo
	membros  *fakeMembroRepo
}

func (f *fakeMembroTx) RunMembros(ctx context.Context, fn func(
	usuarios repository.UsuarioRepository,
	membros repository.MembroRepository,
) error) error {
	return fn(f.usuarios, f.membros)
}

const (
	orgID       = "org-1"
	adminUserID = "user-admin"
)

func novoMembroUC() (*usecase.MembroUseCase, *fakeMembroRepo, *fakeUsuarioRepo) {
	usuarios := &fakeUsuarioRepo{usuarios: map[string]*entity.Usuario{
		adminUserID: {ID: adminUserID, Nome: "Admin", Email: "admin@mare.com", Ativo: true},
	}}
	membros := &fakeMembroRepo{membros: map[string]*entity.MembroOrganizacao{
		"m-admin": {ID: "m-admin", OrganizacaoID: orgID, UsuarioID: adminUserID, Role: entity.RoleAdmin, Ativo: true},
	}, usuarios: usuarios}
	tx := &fakeMembroTx{usuarios: usuarios, membros: membros}
	return usecase.NewMembroUseCase(tx, membros, usuarios), membros, usuarios
}

func sessaoAdmin() tenant.Contexto {
	return tenant.Contexto{UserID: adminUserID, OrganizacaoID: orgID, Role: entity.RoleAdmin}
}

func TestConvidar_CriaUsuarioQuandoEmailNovo(t *testing.T) {
	uc, membros, usuarios := novoMembroUC()

	out, err := uc.Convidar(context.Background(), sessaoAdmin(), dto.ConviteMembroRequest{
		Nome: "Nova Pessoa", Email: "nova@mare.com", Role: "OPERADOR",
	})
	require.NoError(t, err)

	assert.Equal(t, "OPERADOR", out.Role)
	assert.Equal(t, "Nova Pessoa", out.Usuario.Nome)

	criado, err := usuarios.GetByEmail(context.Background(), "nova@mare.com")
	require.NoError(t, err)
	require.NotNil(t, criado, "o convite deve criar o usuário")
	assert.NotEmpty(t, criado.SenhaHash, "usuário convidado nasce com senha temporária")

	vinculo, err := membros.GetByOrganizacaoEUsuario(context.Background(), orgID, criado.ID)
	require.NoError(t, err)
	require.NotNil(t, vinculo)
	assert.Equal(t, entity.RoleOperador, vinculo.Role)
}

func TestConvidar_UsuarioJaVinculado_ErrMembroJaExiste(t *testing.T) {
	uc, _, _ := novoMembroUC()

	_, err := uc.Convidar(context.Background(), sessaoAdmin(), dto.ConviteMembroRequest{
		Nome: "Admin", Email: "admin@mare.com", Role: "GESTOR",
	})
	assert.ErrorIs(t, err, domain.ErrMembroJaExiste)
}

func TestConvidar_OperadorNaoPodeConvidar(t *testing.T) {
	uc, _, _ := novoMembroUC()

	sess := tenant.Contexto{UserID: "user-x", OrganizacaoID: orgID, Role: entity.RoleOperador}
	_, err := uc.Convidar(context.Background(), sess, dto.ConviteMembroRequest{
		Nome: "Alguém", Email: "alguem@mare.com", Role: "OPERADOR",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConvidar_RoleInvalido_ErrInvalidInput(t *testing.T) {
	uc, _, _ := novoMembroUC()

	_, err := uc.Convidar(context.Background(), sessaoAdmin(), dto.ConviteMembroRequest{
		Nome: "Alguém", Email: "alguem@mare.com", Role: "SUPERUSER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAlterarRole_AutoModificacaoRecusada(t *testing.T) {
	uc, _, _ := novoMembroUC()

	err := uc.AlterarRole(context.Background(), sessaoAdmin(), "m-admin", dto.UpdateMembroRequest{Role: "GESTOR"})
	assert.ErrorIs(t, err, domain.ErrAutoModificacao,
		"um membro nunca altera o próprio vínculo")
}

func TestRemover_AutoRemocaoRecusada(t *testing.T) {
	uc, membros, _ := novoMembroUC()

	err := uc.Remover(context.Background(), sessaoAdmin(), "m-admin")
	assert.ErrorIs(t, err, domain.ErrAutoModificacao)
	assert.NotNil(t, membros.membros["m-admin"], "o vínculo deve permanecer")
}

func TestAlterarRole_MembroDeOutraOrganizacao_ErrNotFound(t *testing.T) {
	uc, membros, _ := novoMembroUC()
	membros.membros["m-alheio"] = &entity.MembroOrganizacao{
		ID: "m-alheio", OrganizacaoID: "org-2", UsuarioID: "user-y", Role: entity.RoleOperador, Ativo: true,
	}

	err := uc.AlterarRole(context.Background(), sessaoAdmin(), "m-alheio", dto.UpdateMembroRequest{Role: "GESTOR"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlterarRole_TrocaEfetivada(t *testing.T) {
	uc, membros, _ := novoMembroUC()
	membros.membros["m-op"] = &entity.MembroOrganizacao{
		ID: "m-op", OrganizacaoID: orgID, UsuarioID: "user-op", Role: entity.RoleOperador, Ativo: true,
	}

	err := uc.AlterarRole(context.Background(), sessaoAdmin(), "m-op", dto.UpdateMembroRequest{Role: "GESTOR"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGestor, membros.membros["m-op"].Role)
}
