package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mare-erp/mare-api/internal/application/auth"
	"github.com/mare-erp/mare-api/internal/application/usecase"
	"github.com/mare-erp/mare-api/internal/application/vendas"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ vendas.TxRunner = (*TxRunner)(nil)
var _ auth.SignupTxRunner = (*TxRunner)(nil)
var _ usecase.MembroTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repositórios de vendas atados a ela e
// faz Commit ou Rollback conforme o retorno de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	pedidos repository.PedidoRepository,
	produtos repository.ProdutoRepository,
	movs repository.MovimentacaoRepository,
	clientes repository.ClienteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPedidoRepository(tx),
		NewProdutoRepository(tx),
		NewMovimentacaoRepository(tx),
		NewClienteRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSignup transação do cadastro inicial: usuário, organização, empresa
// e vínculo ADMIN nascem juntos ou não nascem.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	usuarios repository.UsuarioRepository,
	orgs repository.OrganizacaoRepository,
	empresas repository.EmpresaRepository,
	membros repository.MembroRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewUsuarioRepository(tx),
		NewOrganizacaoRepository(tx),
		NewEmpresaRepository(tx),
		NewMembroRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMembros transação do convite de membro (usuário + vínculo).
func (r *TxRunner) RunMembros(ctx context.Context, fn func(
	usuarios repository.UsuarioRepository,
	membros repository.MembroRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUsuarioRepository(tx), NewMembroRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
