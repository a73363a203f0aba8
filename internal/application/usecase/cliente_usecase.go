package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// ClienteUseCase CRUD de clientes com escopo de empresa e regras de
// documento (CPF/CNPJ obrigatório para pessoa jurídica, único por empresa).
type ClienteUseCase struct {
	clienteRepo repository.ClienteRepository
	resolver    *tenant.Resolver
}

// NewClienteUseCase constrói o caso de uso.
func NewClienteUseCase(clienteRepo repository.ClienteRepository, resolver *tenant.Resolver) *ClienteUseCase {
	return &ClienteUseCase{clienteRepo: clienteRepo, resolver: resolver}
}

// Create cadastra um cliente na empresa da sessão.
func (uc *ClienteUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}

	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	tipo, ok := entity.ParseTipoPessoa(in.TipoPessoa)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if tipo == entity.PessoaJuridica && in.CpfCnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CpfCnpj != "" {
		existente, err := uc.clienteRepo.GetByCpfCnpj(ctx, empresaID, in.CpfCnpj)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	cliente := &entity.Cliente{
		ID:          uuid.New().String(),
		EmpresaID:   empresaID,
		Nome:        in.Nome,
		TipoPessoa:  tipo,
		CpfCnpj:     in.CpfCnpj,
		Email:       in.Email,
		Telefone:    in.Telefone,
		CEP:         in.CEP,
		Rua:         in.Rua,
		Numero:      in.Numero,
		Complemento: in.Complemento,
		Bairro:      in.Bairro,
		Cidade:      in.Cidade,
		UF:          in.UF,
		Ativo:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.clienteRepo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	resp := toClienteResponse(cliente)
	return &resp, nil
}

// List lista os clientes da empresa resolvida.
func (uc *ClienteUseCase) List(ctx context.Context, sess tenant.Contexto, empresaID string) ([]dto.ClienteResponse, error) {
	id, err := uc.resolver.ResolverEmpresa(ctx, sess, empresaID)
	if err != nil {
		return nil, err
	}
	clientes, err := uc.clienteRepo.ListByEmpresa(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// Get devolve um cliente da empresa da sessão.
func (uc *ClienteUseCase) Get(ctx context.Context, sess tenant.Contexto, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	resp := toClienteResponse(cliente)
	return &resp, nil
}

// Update aplica um patch parcial; campos ausentes ficam como estão.
func (uc *ClienteUseCase) Update(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if in.TipoPessoa != nil {
		tipo, ok := entity.ParseTipoPessoa(*in.TipoPessoa)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		cliente.TipoPessoa = tipo
	}
	if in.CpfCnpj != nil && *in.CpfCnpj != cliente.CpfCnpj {
		if *in.CpfCnpj != "" {
			existente, err := uc.clienteRepo.GetByCpfCnpj(ctx, cliente.EmpresaID, *in.CpfCnpj)
			if err != nil {
				return nil, err
			}
			if existente != nil && existente.ID != cliente.ID {
				return nil, domain.ErrDuplicate
			}
		}
		cliente.CpfCnpj = *in.CpfCnpj
	}
	if cliente.TipoPessoa == entity.PessoaJuridica && cliente.CpfCnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Nome != nil {
		if *in.Nome == "" {
			return nil, domain.ErrInvalidInput
		}
		cliente.Nome = *in.Nome
	}
	if in.Email != nil {
		cliente.Email = *in.Email
	}
	if in.Telefone != nil {
		cliente.Telefone = *in.Telefone
	}
	if in.CEP != nil {
		cliente.CEP = *in.CEP
	}
	if in.Rua != nil {
		cliente.Rua = *in.Rua
	}
	if in.Numero != nil {
		cliente.Numero = *in.Numero
	}
	if in.Complemento != nil {
		cliente.Complemento = *in.Complemento
	}
	if in.Bairro != nil {
		cliente.Bairro = *in.Bairro
	}
	if in.Cidade != nil {
		cliente.Cidade = *in.Cidade
	}
	if in.UF != nil {
		cliente.UF = *in.UF
	}
	if in.Ativo != nil {
		cliente.Ativo = *in.Ativo
	}
	cliente.UpdatedAt = time.Now()

	if err := uc.clienteRepo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := toClienteResponse(cliente)
	return &resp, nil
}

// Delete exclui o cliente; bloqueado enquanto houver pedidos associados.
func (uc *ClienteUseCase) Delete(ctx context.Context, sess tenant.Contexto, id string) error {
	cliente, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return err
	}
	count, err := uc.clienteRepo.CountPedidos(ctx, cliente.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrClienteComPedidos
	}
	return uc.clienteRepo.Delete(ctx, cliente.ID, cliente.EmpresaID)
}

// Summary contadores do painel: total, novos no mês corrente, ativos e
// inativos.
func (uc *ClienteUseCase) Summary(ctx context.Context, sess tenant.Contexto, empresaID string) (*dto.ClienteSummaryResponse, error) {
	id, err := uc.resolver.ResolverEmpresa(ctx, sess, empresaID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	s, err := uc.clienteRepo.Summary(ctx, id, inicioMes)
	if err != nil {
		return nil, err
	}
	return &dto.ClienteSummaryResponse{
		Total:    s.Total,
		Novos:    s.Novos,
		Ativos:   s.Ativos,
		Inativos: s.Inativos,
	}, nil
}

func (uc *ClienteUseCase) buscar(ctx context.Context, sess tenant.Contexto, id string) (*entity.Cliente, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}
	cliente, err := uc.clienteRepo.GetByID(ctx, id, empresaID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return cliente, nil
}

func toClienteResponse(c *entity.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                      c.ID,
		EmpresaID:               c.EmpresaID,
		Nome:                    c.Nome,
		TipoPessoa:              string(c.TipoPessoa),
		CpfCnpj:                 c.CpfCnpj,
		Email:                   c.Email,
		Telefone:                c.Telefone,
		CEP:                     c.CEP,
		Rua:                     c.Rua,
		Numero:                  c.Numero,
		Complemento:             c.Complemento,
		Bairro:                  c.Bairro,
		Cidade:                  c.Cidade,
		UF:                      c.UF,
		Ativo:                   c.Ativo,
		PrimeiraCompraConcluida: c.PrimeiraCompraConcluida,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}
