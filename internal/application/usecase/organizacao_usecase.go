package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/application/auditoria"
	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// OrganizacaoUseCase organização corrente e administração de empresas do
// tenant: listagem com contadores, criação (gerenciar-empresa) e dados
// cadastrais da empresa ativa.
type OrganizacaoUseCase struct {
	orgRepo     repository.OrganizacaoRepository
	empresaRepo repository.EmpresaRepository
	resolver    *tenant.Resolver
	auditor     *auditoria.Auditor
}

// NewOrganizacaoUseCase constrói o caso de uso.
func NewOrganizacaoUseCase(
	orgRepo repository.OrganizacaoRepository,
	empresaRepo repository.EmpresaRepository,
	resolver *tenant.Resolver,
	auditor *auditoria.Auditor,
) *OrganizacaoUseCase {
	return &OrganizacaoUseCase{orgRepo: orgRepo, empresaRepo: empresaRepo, resolver: resolver, auditor: auditor}
}

// Current organização da sessão com as empresas ativas (seleção de
// tenant ativo no front).
func (uc *OrganizacaoUseCase) Current(ctx context.Context, sess tenant.Contexto) (*dto.OrganizacaoResponse, error) {
	org, err := uc.orgRepo.GetByID(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	empresas, err := uc.empresaRepo.ListAtivasByOrganizacao(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrganizacaoResponse{ID: org.ID, Nome: org.Nome}
	for _, e := range empresas {
		resp.Empresas = append(resp.Empresas, dto.EmpresaResumo{
			ID:      e.ID,
			Nome:    e.Nome,
			CNPJ:    e.CNPJ,
			LogoURL: e.LogoURL,
		})
	}
	return resp, nil
}

// ListEmpresas listagem administrativa com contadores por empresa. A
// organização do path precisa ser a da sessão.
func (uc *OrganizacaoUseCase) ListEmpresas(ctx context.Context, sess tenant.Contexto, organizacaoID string) ([]dto.EmpresaResponse, error) {
	if organizacaoID != sess.OrganizacaoID {
		return nil, domain.ErrForbidden
	}
	empresas, err := uc.empresaRepo.ListAtivasByOrganizacao(ctx, organizacaoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpresaResponse, 0, len(empresas))
	for _, e := range empresas {
		stats, err := uc.empresaRepo.Stats(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		resp := toEmpresaResponse(e)
		resp.Estatisticas = &dto.EmpresaStatsResponse{
			TotalClientes: stats.TotalClientes,
			TotalProdutos: stats.TotalProdutos,
			TotalPedidos:  stats.TotalPedidos,
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateEmpresa cria uma empresa na organização da sessão. Exige a
// permissão gerenciar-empresa; CNPJ informado precisa ser inédito.
func (uc *OrganizacaoUseCase) CreateEmpresa(ctx context.Context, sess tenant.Contexto, organizacaoID string, in dto.CreateEmpresaRequest, ip, userAgent string) (*dto.EmpresaResponse, error) {
	if organizacaoID != sess.OrganizacaoID {
		return nil, domain.ErrForbidden
	}
	if !sess.Role.Permite(entity.Permissao{Modulo: entity.ModuloConfiguracoes, Acao: entity.AcaoGerenciarEmpresa}) {
		return nil, domain.ErrForbidden
	}
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CNPJ != "" {
		existente, err := uc.empresaRepo.GetByCNPJ(ctx, in.CNPJ)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	empresa := &entity.Empresa{
		ID:            uuid.New().String(),
		OrganizacaoID: organizacaoID,
		Nome:          in.Nome,
		CNPJ:          in.CNPJ,
		Email:         in.Email,
		Telefone:      in.Telefone,
		Ativa:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.empresaRepo.Create(ctx, empresa); err != nil {
		return nil, err
	}

	uc.auditor.Registrar(auditoria.Registro{
		UsuarioID:     sess.UserID,
		EmpresaID:     empresa.ID,
		OrganizacaoID: organizacaoID,
		Acao:          entity.AuditoriaCriar,
		Tabela:        "empresas",
		RegistroID:    empresa.ID,
		IP:            ip,
		UserAgent:     userAgent,
	})

	resp := toEmpresaResponse(empresa)
	return &resp, nil
}

// GetEmpresaAtiva dados cadastrais da empresa da sessão.
func (uc *OrganizacaoUseCase) GetEmpresaAtiva(ctx context.Context, sess tenant.Contexto) (*dto.EmpresaResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	resp := toEmpresaResponse(empresa)
	return &resp, nil
}

// UpdateEmpresaAtiva atualiza o cadastro da empresa da sessão, com
// auditoria do estado anterior.
func (uc *OrganizacaoUseCase) UpdateEmpresaAtiva(ctx context.Context, sess tenant.Contexto, in dto.UpdateEmpresaRequest, ip, userAgent string) (*dto.EmpresaResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CNPJ != "" && in.CNPJ != empresa.CNPJ {
		existente, err := uc.empresaRepo.GetByCNPJ(ctx, in.CNPJ)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != empresa.ID {
			return nil, domain.ErrDuplicate
		}
	}

	anterior := *empresa
	empresa.Nome = in.Nome
	empresa.CNPJ = in.CNPJ
	empresa.Telefone = in.Telefone
	empresa.Email = in.Email
	empresa.CEP = in.CEP
	empresa.Rua = in.Rua
	empresa.Numero = in.Numero
	empresa.Complemento = in.Complemento
	empresa.Bairro = in.Bairro
	empresa.Cidade = in.Cidade
	empresa.UF = in.UF
	empresa.UpdatedAt = time.Now()

	if err := uc.empresaRepo.Update(ctx, empresa); err != nil {
		return nil, err
	}

	uc.auditor.Registrar(auditoria.Registro{
		UsuarioID:     sess.UserID,
		EmpresaID:     empresa.ID,
		OrganizacaoID: sess.OrganizacaoID,
		Acao:          entity.AuditoriaEditar,
		Tabela:        "empresas",
		RegistroID:    empresa.ID,
		DadosAntigos:  anterior,
		IP:            ip,
		UserAgent:     userAgent,
	})

	resp := toEmpresaResponse(empresa)
	return &resp, nil
}

func toEmpresaResponse(e *entity.Empresa) dto.EmpresaResponse {
	return dto.EmpresaResponse{
		ID:            e.ID,
		OrganizacaoID: e.OrganizacaoID,
		Nome:          e.Nome,
		CNPJ:          e.CNPJ,
		Email:         e.Email,
		Telefone:      e.Telefone,
		CEP:           e.CEP,
		Rua:           e.Rua,
		Numero:        e.Numero,
		Complemento:   e.Complemento,
		Bairro:        e.Bairro,
		Cidade:        e.Cidade,
		UF:            e.UF,
		LogoURL:       e.LogoURL,
		Ativa:         e.Ativa,
		CreatedAt:     e.CreatedAt,
	}
}
