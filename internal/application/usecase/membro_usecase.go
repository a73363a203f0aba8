package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// MembroTxRunner executa o convite (usuário + vínculo) como uma unidade
// atômica: o usuário recém-criado nunca fica sem vínculo.
type MembroTxRunner interface {
	RunMembros(ctx context.Context, fn func(
		usuarios repository.UsuarioRepository,
		membros repository.MembroRepository,
	) error) error
}

// MembroUseCase gestão de membros da organização: listagem, convite,
// troca de papel e remoção. Convidar e gerenciar exigem um papel com
// gerenciar-membros; auto-modificação é sempre recusada.
type MembroUseCase struct {
	txRunner    MembroTxRunner
	membroRepo  repository.MembroRepository
	usuarioRepo repository.UsuarioRepository
}

// NewMembroUseCase constrói o caso de uso.
func NewMembroUseCase(txRunner MembroTxRunner, membroRepo repository.MembroRepository, usuarioRepo repository.UsuarioRepository) *MembroUseCase {
	return &MembroUseCase{txRunner: txRunner, membroRepo: membroRepo, usuarioRepo: usuarioRepo}
}

// List membros da organização da sessão com os dados de usuário.
func (uc *MembroUseCase) List(ctx context.Context, sess tenant.Contexto) ([]dto.MembroResponse, error) {
	rows, err := uc.membroRepo.ListByOrganizacao(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MembroResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMembroResponse(row))
	}
	return out, nil
}

// Convidar adiciona um usuário à organização. Se o e-mail não existir,
// cria o usuário com senha temporária; usuário já vinculado é conflito.
func (uc *MembroUseCase) Convidar(ctx context.Context, sess tenant.Contexto, in dto.ConviteMembroRequest) (*dto.MembroResponse, error) {
	if !sess.Role.PodeGerenciarMembros() {
		return nil, domain.ErrForbidden
	}
	if in.Email == "" || in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resultado repository.MembroComUsuario
	err := uc.txRunner.RunMembros(ctx, func(
		usuarios repository.UsuarioRepository,
		membros repository.MembroRepository,
	) error {
		usuario, err := usuarios.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if usuario == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			usuario = &entity.Usuario{
				ID:        uuid.New().String(),
				Nome:      in.Nome,
				Email:     in.Email,
				SenhaHash: string(hash),
				Ativo:     true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := usuarios.Create(ctx, usuario); err != nil {
				return err
			}
		}

		existente, err := membros.GetByOrganizacaoEUsuario(ctx, sess.OrganizacaoID, usuario.ID)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrMembroJaExiste
		}

		membro := &entity.MembroOrganizacao{
			ID:            uuid.New().String(),
			OrganizacaoID: sess.OrganizacaoID,
			UsuarioID:     usuario.ID,
			Role:          role,
			Ativo:         true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := membros.Create(ctx, membro); err != nil {
			return err
		}
		resultado = repository.MembroComUsuario{Membro: *membro, Usuario: *usuario}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toMembroResponse(resultado)
	return &resp, nil
}

// AlterarRole troca o papel de um membro da mesma organização. Alterar o
// próprio vínculo é recusado para impedir a organização de ficar sem
// administração por engano.
func (uc *MembroUseCase) AlterarRole(ctx context.Context, sess tenant.Contexto, membroID string, in dto.UpdateMembroRequest) error {
	if !sess.Role.PodeGerenciarMembros() {
		return domain.ErrForbidden
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return domain.ErrInvalidInput
	}
	membro, err := uc.buscar(ctx, sess, membroID)
	if err != nil {
		return err
	}
	if membro.UsuarioID == sess.UserID {
		return domain.ErrAutoModificacao
	}
	return uc.membroRepo.UpdateRole(ctx, membro.ID, role)
}

// Remover desliga o membro da organização; auto-remoção é recusada.
func (uc *MembroUseCase) Remover(ctx context.Context, sess tenant.Contexto, membroID string) error {
	if !sess.Role.PodeGerenciarMembros() {
		return domain.ErrForbidden
	}
	membro, err := uc.buscar(ctx, sess, membroID)
	if err != nil {
		return err
	}
	if membro.UsuarioID == sess.UserID {
		return domain.ErrAutoModificacao
	}
	return uc.membroRepo.Delete(ctx, membro.ID)
}

func (uc *MembroUseCase) buscar(ctx context.Context, sess tenant.Contexto, id string) (*entity.MembroOrganizacao, error) {
	membro, err := uc.membroRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if membro == nil || membro.OrganizacaoID != sess.OrganizacaoID {
		return nil, domain.ErrNotFound
	}
	return membro, nil
}

func toMembroResponse(row repository.MembroComUsuario) dto.MembroResponse {
	return dto.MembroResponse{
		ID:    row.Membro.ID,
		Role:  string(row.Membro.Role),
		Ativo: row.Membro.Ativo,
		Usuario: dto.UsuarioResponse{
			ID:          row.Usuario.ID,
			Nome:        row.Usuario.Nome,
			Email:       row.Usuario.Email,
			FotoPerfil:  row.Usuario.FotoPerfil,
			Ativo:       row.Usuario.Ativo,
			UltimoLogin: row.Usuario.UltimoLogin,
		},
	}
}
