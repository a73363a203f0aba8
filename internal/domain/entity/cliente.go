package entity

import "time"

// TipoPessoa natureza jurídica do cliente.
type TipoPessoa string

const (
	PessoaFisica   TipoPessoa = "FISICA"
	PessoaJuridica TipoPessoa = "JURIDICA"
)

// ParseTipoPessoa valida a string vinda da API.
func ParseTipoPessoa(s string) (TipoPessoa, bool) {
	switch TipoPessoa(s) {
	case PessoaFisica, PessoaJuridica:
		return TipoPessoa(s), true
	}
	return "", false
}

// Cliente comprador da empresa. CpfCnpj é obrigatório para pessoa jurídica
// e único por empresa quando informado.
type Cliente struct {
	ID                      string
	EmpresaID               string
	Nome                    string
	TipoPessoa              TipoPessoa
	CpfCnpj                 string
	Email                   string
	Telefone                string
	CEP                     string
	Rua                     string
	Numero                  string
	Complemento             string
	Bairro                  string
	Cidade                  string
	UF                      string
	Ativo                   bool
	PrimeiraCompraConcluida bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
