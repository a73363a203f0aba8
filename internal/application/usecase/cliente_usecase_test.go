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

// fakeClienteStore guarda clientes em memória e o número de pedidos
// associados a cada um.
type fakeClienteStore struct {
	clientes map[string]*entity.Cliente
	pedidos  map[string]int
}

func newFakeClienteStore(cs ...*entity.Cliente) *fakeClienteStore {
	m := make(map[string]*entity.Cliente)
	for _, c := range cs {
		m[c.ID] = c
	}
	return &fakeClienteStore{clientes: m, pedidos: make(map[string]int)}
}

func (f *fakeClienteStore) Create(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeClienteStore) GetByID(_ context.Context, id, empresaID string) (*entity.Cliente, error) {
	c, ok := f.clientes[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeClienteStore) GetByCpfCnpj(_ context.Context, empresaID, cpfCnpj string) (*entity.Cliente, error) {
	for _, c := range f.clientes {
		if c.EmpresaID == empresaID && c.CpfCnpj == cpfCnpj {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClienteStore) Update(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeClienteStore) Delete(_ context.Context, id, _ string) error {
	delete(f.clientes, id)
	return nil
}

func (f *fakeClienteStore) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range f.clientes {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClienteStore) CountPedidos(_ context.Context, clienteID string) (int, error) {
	return f.pedidos[clienteID], nil
}

func (f *fakeClienteStore) MarcarPrimeiraCompra(_ context.Context, clienteID string) error {
	if c, ok := f.clientes[clienteID]; ok {
		c.PrimeiraCompraConcluida = true
	}
	return nil
}

func (f *fakeClienteStore) Summary(_ context.Context, _ string, _ time.Time) (repository.ClienteSummary, error) {
	return repository.ClienteSummary{}, nil
}

func sessaoCliente() tenant.Contexto {
	return tenant.Contexto{UserID: "u1", EmpresaID: "emp-1", OrganizacaoID: orgID, Role: entity.RoleGestor}
}

func novoClienteUC(store *fakeClienteStore) *usecase.ClienteUseCase {
	return usecase.NewClienteUseCase(store, tenant.NewResolver(fakeEmpresasFin{}))
}

func clienteExistente(id string) *entity.Cliente {
	return &entity.Cliente{
		ID:         id,
		EmpresaID:  "emp-1",
		Nome:       "Cliente " + id,
		TipoPessoa: entity.PessoaFisica,
		Ativo:      true,
	}
}

// Exclusão bloqueada: cliente com pedidos associados responde conflito e o
// cadastro permanece intacto.
func TestDeleteCliente_ComPedidos_ErrClienteComPedidos(t *testing.T) {
	store := newFakeClienteStore(clienteExistente("c1"))
	store.pedidos["c1"] = 3
	uc := novoClienteUC(store)

	err := uc.Delete(context.Background(), sessaoCliente(), "c1")
	assert.ErrorIs(t, err, domain.ErrClienteComPedidos)

	sobrevivente, _ := store.GetByID(context.Background(), "c1", "emp-1")
	require.NotNil(t, sobrevivente, "o cliente deve continuar cadastrado após o bloqueio")
	assert.Equal(t, "c1", sobrevivente.ID)
}

// Sem pedidos a exclusão segue normalmente.
func TestDeleteCliente_SemPedidos_Remove(t *testing.T) {
	store := newFakeClienteStore(clienteExistente("c1"))
	uc := novoClienteUC(store)

	require.NoError(t, uc.Delete(context.Background(), sessaoCliente(), "c1"))

	removido, _ := store.GetByID(context.Background(), "c1", "emp-1")
	assert.Nil(t, removido)
}

func TestCreateCliente_JuridicaSemDocumento_ErrInvalidInput(t *testing.T) {
	uc := novoClienteUC(newFakeClienteStore())
	_, err := uc.Create(context.Background(), sessaoCliente(), dto.CreateClienteRequest{
		Nome:       "ACME Ltda",
		TipoPessoa: string(entity.PessoaJuridica),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCliente_DocumentoDuplicado_ErrDuplicate(t *testing.T) {
	existente := clienteExistente("c1")
	existente.CpfCnpj = "123.456.789-00"
	uc := novoClienteUC(newFakeClienteStore(existente))

	_, err := uc.Create(context.Background(), sessaoCliente(), dto.CreateClienteRequest{
		Nome:       "Outro",
		TipoPessoa: string(entity.PessoaFisica),
		CpfCnpj:    "123.456.789-00",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
