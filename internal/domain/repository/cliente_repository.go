package repository

import (
	"context"
	"time"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// ClienteSummary contadores do painel de clientes.
type ClienteSummary struct {
	Total    int
	Novos    int
	Ativos   int
	Inativos int
}

// ClienteRepository porto de persistência para Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, cliente *entity.Cliente) error
	GetByID(ctx context.Context, id, empresaID string) (*entity.Cliente, error)
	// GetByCpfCnpj procura duplicata do documento dentro da empresa.
	GetByCpfCnpj(ctx context.Context, empresaID, cpfCnpj string) (*entity.Cliente, error)
	Update(ctx context.Context, cliente *entity.Cliente) error
	Delete(ctx context.Context, id, empresaID string) error
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Cliente, error)
	// CountPedidos conta pedidos associados (bloqueio de exclusão).
	CountPedidos(ctx context.Context, clienteID string) (int, error)
	// MarcarPrimeiraCompra marca o flag se ainda não concluída. Idempotente.
	MarcarPrimeiraCompra(ctx context.Context, clienteID string) error
	Summary(ctx context.Context, empresaID string, inicioMes time.Time) (ClienteSummary, error)
}
