package dto

import "time"

// EmpresaResumo recorte da empresa para seleção de tenant ativo.
type EmpresaResumo struct {
	ID      string `json:"id"`
	Nome    string `json:"nome"`
	CNPJ    string `json:"cnpj,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// OrganizacaoResponse organização com as empresas ativas.
type OrganizacaoResponse struct {
	ID       string          `json:"id"`
	Nome     string          `json:"nome"`
	Empresas []EmpresaResumo `json:"empresas"`
}

// CreateEmpresaRequest criação de empresa dentro da organização.
type CreateEmpresaRequest struct {
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

// UpdateEmpresaRequest atualização dos dados cadastrais da empresa ativa.
type UpdateEmpresaRequest struct {
	Nome        string `json:"nome"`
	CNPJ        string `json:"cnpj"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
	CEP         string `json:"cep"`
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf"`
}

// EmpresaStatsResponse contadores agregados da empresa.
type EmpresaStatsResponse struct {
	TotalClientes int `json:"totalClientes"`
	TotalProdutos int `json:"totalProdutos"`
	TotalPedidos  int `json:"totalPedidos"`
}

// EmpresaResponse empresa completa; Estatisticas só vem na listagem
// administrativa de empresas da organização.
type EmpresaResponse struct {
	ID            string                `json:"id"`
	OrganizacaoID string                `json:"organizacaoId"`
	Nome          string                `json:"nome"`
	CNPJ          string                `json:"cnpj,omitempty"`
	Email         string                `json:"email,omitempty"`
	Telefone      string                `json:"telefone,omitempty"`
	CEP           string                `json:"cep,omitempty"`
	Rua           string                `json:"rua,omitempty"`
	Numero        string                `json:"numero,omitempty"`
	Complemento   string                `json:"complemento,omitempty"`
	Bairro        string                `json:"bairro,omitempty"`
	Cidade        string                `json:"cidade,omitempty"`
	UF            string                `json:"uf,omitempty"`
	LogoURL       string                `json:"logoUrl,omitempty"`
	Ativa         bool                  `json:"ativa"`
	CreatedAt     time.Time             `json:"createdAt"`
	Estatisticas  *EmpresaStatsResponse `json:"estatisticas,omitempty"`
}

// MembroResponse vínculo de membro com dados do usuário.
type MembroResponse struct {
	ID      string          `json:"id"`
	Role    string          `json:"role"`
	Ativo   bool            `json:"ativo"`
	Usuario UsuarioResponse `json:"usuario"`
}

// ConviteMembroRequest convite/criação de membro na organização.
type ConviteMembroRequest struct {
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Role  string `json:"role"`
}

// UpdateMembroRequest troca de papel de um membro.
type UpdateMembroRequest struct {
	Role string `json:"role"`
}
