package dto

import "time"

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// SignupRequest cria usuário + organização + empresa inicial de uma vez.
type SignupRequest struct {
	Nome            string `json:"nome"`
	Email           string `json:"email"`
	Senha           string `json:"senha"`
	NomeOrganizacao string `json:"nomeOrganizacao"`
	NomeEmpresa     string `json:"nomeEmpresa"`
}

// UsuarioResponse saída de usuário (nunca inclui o hash de senha).
type UsuarioResponse struct {
	ID          string     `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	FotoPerfil  string     `json:"fotoPerfil,omitempty"`
	Ativo       bool       `json:"ativo"`
	UltimoLogin *time.Time `json:"ultimoLogin,omitempty"`
}

// PermissaoResponse par módulo+ação derivado da matriz de roles.
type PermissaoResponse struct {
	Modulo string `json:"modulo"`
	Acao   string `json:"acao"`
}

// LoginResponse token de sessão + contexto resolvido.
type LoginResponse struct {
	Token       string              `json:"token"`
	Usuario     UsuarioResponse     `json:"usuario"`
	Organizacao OrganizacaoResponse `json:"organizacao"`
	Role        string              `json:"role"`
}

// MeResponse contexto completo da sessão (GET /api/auth/me).
type MeResponse struct {
	User        UsuarioResponse     `json:"user"`
	Organizacao OrganizacaoResponse `json:"organizacao"`
	Role        string              `json:"role"`
	Permissoes  []PermissaoResponse `json:"permissoes"`
}
