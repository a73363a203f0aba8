package dto

import "time"

// CreateClienteRequest cadastro de cliente. CpfCnpj é obrigatório quando
// TipoPessoa = JURIDICA (regra cruzada validada no use case).
type CreateClienteRequest struct {
	Nome       string `json:"nome"`
	TipoPessoa string `json:"tipoPessoa"`
	CpfCnpj    string `json:"cpfCnpj"`
	Email      string `json:"email"`
	Telefone   string `json:"telefone"`
	CEP        string `json:"cep"`
	Rua        string `json:"rua"`
	Numero     string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

// UpdateClienteRequest patch parcial; ponteiros distinguem "ausente" de
// "string vazia" (vazio limpa o campo).
type UpdateClienteRequest struct {
	Nome        *string `json:"nome"`
	TipoPessoa  *string `json:"tipoPessoa"`
	CpfCnpj     *string `json:"cpfCnpj"`
	Email       *string `json:"email"`
	Telefone    *string `json:"telefone"`
	CEP         *string `json:"cep"`
	Rua         *string `json:"rua"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	UF          *string `json:"uf"`
	Ativo       *bool   `json:"ativo"`
}

// ClienteResponse saída de cliente.
type ClienteResponse struct {
	ID                      string    `json:"id"`
	EmpresaID               string    `json:"empresaId"`
	Nome                    string    `json:"nome"`
	TipoPessoa              string    `json:"tipoPessoa"`
	CpfCnpj                 string    `json:"cpfCnpj,omitempty"`
	Email                   string    `json:"email,omitempty"`
	Telefone                string    `json:"telefone,omitempty"`
	CEP                     string    `json:"cep,omitempty"`
	Rua                     string    `json:"rua,omitempty"`
	Numero                  string    `json:"numero,omitempty"`
	Complemento             string    `json:"complemento,omitempty"`
	Bairro                  string    `json:"bairro,omitempty"`
	Cidade                  string    `json:"cidade,omitempty"`
	UF                      string    `json:"uf,omitempty"`
	Ativo                   bool      `json:"ativo"`
	PrimeiraCompraConcluida bool      `json:"primeiraCompraConcluida"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ClienteSummaryResponse contadores do painel de clientes.
type ClienteSummaryResponse struct {
	Total    int `json:"total"`
	Novos    int `json:"novos"`
	Ativos   int `json:"ativos"`
	Inativos int `json:"inativos"`
}
