package entity

import "time"

// Organizacao é o tenant de topo: agrupa empresas e membros.
// A identidade é imutável após a criação.
type Organizacao struct {
	ID        string
	Nome      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Empresa sub-tenant dentro de uma organização; dona dos registros de
// negócio (clientes, produtos, pedidos, transações). Toda consulta a dados
// da empresa deve validar OrganizacaoID contra a sessão.
type Empresa struct {
	ID            string
	OrganizacaoID string
	Nome          string
	CNPJ          string
	Email         string
	Telefone      string
	CEP           string
	Rua           string
	Numero        string
	Complemento   string
	Bairro        string
	Cidade        string
	UF            string
	LogoURL       string
	Ativa         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MembroOrganizacao vínculo usuário↔organização com papel. Único por
// (OrganizacaoID, UsuarioID).
type MembroOrganizacao struct {
	ID            string
	OrganizacaoID string
	UsuarioID     string
	Role          Role
	Ativo         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
