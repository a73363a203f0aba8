package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
	"github.com/mare-erp/mare-api/pkg/jwt"
)

// JWTConfig configuração para emissão de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupTxRunner executa o cadastro inicial (usuário + organização + empresa
// + membro ADMIN) como uma unidade atômica.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(
		usuarios repository.UsuarioRepository,
		orgs repository.OrganizacaoRepository,
		empresas repository.EmpresaRepository,
		membros repository.MembroRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticação: signup, login e contexto da sessão.
type AuthUseCase struct {
	txRunner    SignupTxRunner
	usuarioRepo repository.UsuarioRepository
	orgRepo     repository.OrganizacaoRepository
	empresaRepo repository.EmpresaRepository
	membroRepo  repository.MembroRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	txRunner SignupTxRunner,
	usuarioRepo repository.UsuarioRepository,
	orgRepo repository.OrganizacaoRepository,
	empresaRepo repository.EmpresaRepository,
	membroRepo repository.MembroRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:    txRunner,
		usuarioRepo: usuarioRepo,
		orgRepo:     orgRepo,
		empresaRepo: empresaRepo,
		membroRepo:  membroRepo,
		jwtCfg:      jwtCfg,
	}
}

// Signup cria usuário, organização, empresa inicial e vínculo ADMIN em uma
// transação. E-mail já cadastrado devolve ErrEmailJaCadastrado.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	if in.Nome == "" || in.Email == "" || len(in.Senha) < 8 || in.NomeOrganizacao == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailJaCadastrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nomeEmpresa := in.NomeEmpresa
	if nomeEmpresa == "" {
		nomeEmpresa = in.NomeOrganizacao
	}

	usuario := &entity.Usuario{
		ID:        uuid.New().String(),
		Nome:      in.Nome,
		Email:     in.Email,
		SenhaHash: string(hash),
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	org := &entity.Organizacao{
		ID:        uuid.New().String(),
		Nome:      in.NomeOrganizacao,
		CreatedAt: now,
		UpdatedAt: now,
	}
	empresa := &entity.Empresa{
		ID:            uuid.New().String(),
		OrganizacaoID: org.ID,
		Nome:          nomeEmpresa,
		Ativa:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	membro := &entity.MembroOrganizacao{
		ID:            uuid.New().String(),
		OrganizacaoID: org.ID,
		UsuarioID:     usuario.ID,
		Role:          entity.RoleAdmin,
		Ativo:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunSignup(ctx, func(
		usuarios repository.UsuarioRepository,
		orgs repository.OrganizacaoRepository,
		empresas repository.EmpresaRepository,
		membros repository.MembroRepository,
	) error {
		if err := usuarios.Create(ctx, usuario); err != nil {
			return err
		}
		if err := orgs.Create(ctx, org); err != nil {
			return err
		}
		if err := empresas.Create(ctx, empresa); err != nil {
			return err
		}
		return membros.Create(ctx, membro)
	})
	if err != nil {
		return nil, err
	}

	return uc.emitirSessao(usuario, org, empresa, membro.Role)
}

// Login verifica e-mail/senha, resolve o vínculo ativo e a empresa inicial e
// emite o token de sessão.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Ativo {
		return nil, domain.ErrForbidden
	}

	membro, err := uc.membroRepo.GetPrimeiroAtivoDoUsuario(ctx, usuario.ID)
	if err != nil {
		return nil, err
	}
	if membro == nil {
		return nil, domain.ErrForbidden
	}

	org, err := uc.orgRepo.GetByID(ctx, membro.OrganizacaoID)
	if err != nil || org == nil {
		return nil, domain.ErrNotFound
	}

	empresas, err := uc.empresaRepo.ListAtivasByOrganizacao(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	var empresaAtiva *entity.Empresa
	if len(empresas) > 0 {
		empresaAtiva = empresas[0]
	}

	// O carimbo de último login é acessório: falha não derruba o login.
	agora := time.Now()
	if err := uc.usuarioRepo.UpdateUltimoLogin(ctx, usuario.ID, agora); err != nil {
		log.Warn().Err(err).Str("usuarioId", usuario.ID).Msg("falha ao registrar último login")
	} else {
		usuario.UltimoLogin = &agora
	}

	return uc.emitirSessao(usuario, org, empresaAtiva, membro.Role)
}

// Me monta o contexto da sessão: usuário, organização com empresas ativas,
// role e permissões derivadas da matriz.
func (uc *AuthUseCase) Me(ctx context.Context, userID, organizacaoID string, role entity.Role) (*dto.MeResponse, error) {
	usuario, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}

	org, err := uc.orgRepo.GetByID(ctx, organizacaoID)
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

	permissoes := role.Permissoes()
	out := &dto.MeResponse{
		User:        toUsuarioResponse(usuario),
		Organizacao: toOrganizacaoResponse(org, empresas),
		Role:        string(role),
		Permissoes:  make([]dto.PermissaoResponse, 0, len(permissoes)),
	}
	for _, p := range permissoes {
		out.Permissoes = append(out.Permissoes, dto.PermissaoResponse{
			Modulo: string(p.Modulo),
			Acao:   string(p.Acao),
		})
	}
	return out, nil
}

func (uc *AuthUseCase) emitirSessao(usuario *entity.Usuario, org *entity.Organizacao, empresa *entity.Empresa, role entity.Role) (*dto.LoginResponse, error) {
	empresaID := ""
	if empresa != nil {
		empresaID = empresa.ID
	}
	token, err := jwt.Generate(
		uc.jwtCfg.Secret, usuario.ID, empresaID, org.ID, string(role),
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}

	var empresas []*entity.Empresa
	if empresa != nil {
		empresas = []*entity.Empresa{empresa}
	}
	return &dto.LoginResponse{
		Token:       token,
		Usuario:     toUsuarioResponse(usuario),
		Organizacao: toOrganizacaoResponse(org, empresas),
		Role:        string(role),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		FotoPerfil:  u.FotoPerfil,
		Ativo:       u.Ativo,
		UltimoLogin: u.UltimoLogin,
	}
}

func toOrganizacaoResponse(org *entity.Organizacao, empresas []*entity.Empresa) dto.OrganizacaoResponse {
	out := dto.OrganizacaoResponse{
		ID:       org.ID,
		Nome:     org.Nome,
		Empresas: make([]dto.EmpresaResumo, 0, len(empresas)),
	}
	for _, e := range empresas {
		out.Empresas = append(out.Empresas, dto.EmpresaResumo{
			ID:      e.ID,
			Nome:    e.Nome,
			CNPJ:    e.CNPJ,
			LogoURL: e.LogoURL,
		})
	}
	return out
}
