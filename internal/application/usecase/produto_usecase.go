package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// ProdutoUseCase cadastro de produtos/serviços, listagem org-wide de
// estoque e métricas do painel.
type ProdutoUseCase struct {
	produtoRepo repository.ProdutoRepository
	movRepo     repository.MovimentacaoRepository
	resolver    *tenant.Resolver
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository, movRepo repository.MovimentacaoRepository, resolver *tenant.Resolver) *ProdutoUseCase {
	return &ProdutoUseCase{produtoRepo: produtoRepo, movRepo: movRepo, resolver: resolver}
}

// Create cadastra um produto ou serviço. SKU vazio é autogerado
// (PROD#### ou SERV####, sequencial por empresa); SKU informado precisa
// ser inédito na empresa.
func (uc *ProdutoUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, in.EmpresaID)
	if err != nil {
		return nil, err
	}

	if in.Nome == "" || in.Preco.IsNegative() || in.Custo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	tipo, ok := entity.ParseTipoItem(in.Tipo)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if tipo == entity.ItemServico && in.QuantidadeEstoque != 0 {
		return nil, domain.ErrInvalidInput
	}

	sku := in.SKU
	if sku == "" {
		sku, err = uc.gerarSKU(ctx, empresaID, tipo)
		if err != nil {
			return nil, err
		}
	} else {
		existente, err := uc.produtoRepo.GetBySKU(ctx, empresaID, sku)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	produto := &entity.Produto{
		ID:                uuid.New().String(),
		EmpresaID:         empresaID,
		Nome:              in.Nome,
		Descricao:         in.Descricao,
		SKU:               sku,
		Tipo:              tipo,
		Preco:             in.Preco,
		Custo:             in.Custo,
		QuantidadeEstoque: in.QuantidadeEstoque,
		EstoqueMinimo:     in.EstoqueMinimo,
		Ativo:             true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.produtoRepo.Create(ctx, produto); err != nil {
		return nil, err
	}

	// Estoque inicial entra no razão como lançamento de abertura.
	if tipo == entity.ItemProduto && in.QuantidadeEstoque > 0 {
		mov := &entity.MovimentacaoEstoque{
			ID:         uuid.New().String(),
			EmpresaID:  empresaID,
			ProdutoID:  produto.ID,
			Tipo:       entity.MovimentacaoEntrada,
			Quantidade: in.QuantidadeEstoque,
			Observacao: "Estoque inicial",
			CreatedAt:  now,
		}
		if err := uc.movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}

	resp := toProdutoResponse(produto)
	return &resp, nil
}

// List listagem org-wide de estoque com busca por nome/SKU e filtro de
// tipo. EmpresaID vazio alcança todas as empresas da organização.
func (uc *ProdutoUseCase) List(ctx context.Context, sess tenant.Contexto, empresaID, busca, tipo string, limit, offset int) ([]dto.ProdutoResponse, error) {
	empresaIDs, err := uc.resolver.EmpresasDoEscopo(ctx, sess, empresaID)
	if err != nil {
		return nil, err
	}
	filtro := repository.FiltroProdutos{
		EmpresaIDs: empresaIDs,
		Busca:      busca,
		Limit:      limit,
		Offset:     offset,
	}
	if tipo != "" {
		parsed, ok := entity.ParseTipoItem(tipo)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filtro.Tipo = parsed
	}
	produtos, err := uc.produtoRepo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		out = append(out, toProdutoResponse(p))
	}
	return out, nil
}

// Get devolve um produto, validando o acesso da sessão à empresa dona.
func (uc *ProdutoUseCase) Get(ctx context.Context, sess tenant.Contexto, id string) (*dto.ProdutoResponse, error) {
	produto, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	resp := toProdutoResponse(produto)
	return &resp, nil
}

// Update patch parcial. Estoque não se edita aqui: só muda por
// movimentações ou vendas.
func (uc *ProdutoUseCase) Update(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if in.Nome != nil {
		if *in.Nome == "" {
			return nil, domain.ErrInvalidInput
		}
		produto.Nome = *in.Nome
	}
	if in.Descricao != nil {
		produto.Descricao = *in.Descricao
	}
	if in.Preco != nil {
		if in.Preco.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		produto.Preco = *in.Preco
	}
	if in.Custo != nil {
		if in.Custo.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		produto.Custo = *in.Custo
	}
	if in.EstoqueMinimo != nil {
		produto.EstoqueMinimo = *in.EstoqueMinimo
	}
	if in.Ativo != nil {
		produto.Ativo = *in.Ativo
	}
	produto.UpdatedAt = time.Now()

	if err := uc.produtoRepo.Update(ctx, produto); err != nil {
		return nil, err
	}
	resp := toProdutoResponse(produto)
	return &resp, nil
}

// Desativar soft-delete: marca Ativo=false preservando histórico de
// movimentações e pedidos.
func (uc *ProdutoUseCase) Desativar(ctx context.Context, sess tenant.Contexto, id string) error {
	produto, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return err
	}
	produto.Ativo = false
	produto.UpdatedAt = time.Now()
	return uc.produtoRepo.Update(ctx, produto)
}

// Metricas agregados do painel de estoque da empresa resolvida.
func (uc *ProdutoUseCase) Metricas(ctx context.Context, sess tenant.Contexto, empresaID string) (*dto.MetricasEstoqueResponse, error) {
	id, err := uc.resolver.ResolverEmpresa(ctx, sess, empresaID)
	if err != nil {
		return nil, err
	}
	m, err := uc.produtoRepo.Metricas(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MetricasEstoqueResponse{
		TotalProdutos:        m.TotalProdutos,
		ValorEstoqueCusto:    m.ValorEstoqueCusto,
		ValorEstoqueVenda:    m.ValorEstoqueVenda,
		ProdutosEstoqueBaixo: m.ProdutosEstoqueBaixo,
		ProdutosSemEstoque:   m.ProdutosSemEstoque,
	}, nil
}

func (uc *ProdutoUseCase) buscar(ctx context.Context, sess tenant.Contexto, id string) (*entity.Produto, error) {
	produto, err := uc.produtoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.resolver.ValidarAcesso(ctx, sess, produto.EmpresaID); err != nil {
		return nil, err
	}
	return produto, nil
}

func (uc *ProdutoUseCase) gerarSKU(ctx context.Context, empresaID string, tipo entity.TipoItem) (string, error) {
	count, err := uc.produtoRepo.CountByEmpresa(ctx, empresaID)
	if err != nil {
		return "", err
	}
	prefixo := "PROD"
	if tipo == entity.ItemServico {
		prefixo = "SERV"
	}
	return fmt.Sprintf("%s%04d", prefixo, count+1), nil
}

func toProdutoResponse(p *entity.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:                p.ID,
		EmpresaID:         p.EmpresaID,
		Nome:              p.Nome,
		Descricao:         p.Descricao,
		SKU:               p.SKU,
		Tipo:              string(p.Tipo),
		Preco:             p.Preco,
		Custo:             p.Custo,
		QuantidadeEstoque: p.QuantidadeEstoque,
		EstoqueMinimo:     p.EstoqueMinimo,
		Ativo:             p.Ativo,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
