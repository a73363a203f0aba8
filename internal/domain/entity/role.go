package entity

// Role papel de um membro dentro de uma organização. Enumeração fechada:
// qualquer valor fora destas constantes é rejeitado na borda (parse).
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleGestor       Role = "GESTOR"
	RoleOperador     Role = "OPERADOR"
	RoleVisualizador Role = "VISUALIZADOR"
)

// ParseRole valida a string vinda do token ou do banco.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleGestor, RoleOperador, RoleVisualizador:
		return Role(s), true
	}
	return "", false
}

// Modulo área funcional do sistema sobre a qual se concede permissão.
type Modulo string

const (
	ModuloVendas        Modulo = "vendas"
	ModuloEstoque       Modulo = "estoque"
	ModuloClientes      Modulo = "clientes"
	ModuloFinanceiro    Modulo = "financeiro"
	ModuloCalendario    Modulo = "calendario"
	ModuloConfiguracoes Modulo = "configuracoes"
)

// Acao operação concedida dentro de um módulo.
type Acao string

const (
	AcaoVisualizar       Acao = "visualizar"
	AcaoCriar            Acao = "criar"
	AcaoEditar           Acao = "editar"
	AcaoExcluir          Acao = "excluir"
	AcaoGerenciarMembros Acao = "gerenciar-membros"
	AcaoGerenciarEmpresa Acao = "gerenciar-empresa"
)

// Permissao par módulo+ação verificado pelo gate de autorização.
type Permissao struct {
	Modulo Modulo
	Acao   Acao
}

var modulosNegocio = []Modulo{
	ModuloVendas, ModuloEstoque, ModuloClientes, ModuloFinanceiro, ModuloCalendario,
}

// matrizPermissoes é a fonte única de verdade do RBAC. Construída uma vez na
// inicialização do pacote; consultas são O(1) por mapa.
var matrizPermissoes = buildMatriz()

func buildMatriz() map[Role]map[Permissao]struct{} {
	m := make(map[Role]map[Permissao]struct{}, 4)
	grant := func(r Role, mod Modulo, acoes ...Acao) {
		set, ok := m[r]
		if !ok {
			set = make(map[Permissao]struct{})
			m[r] = set
		}
		for _, a := range acoes {
			set[Permissao{Modulo: mod, Acao: a}] = struct{}{}
		}
	}

	// VISUALIZADOR: somente leitura nos módulos de negócio.
	for _, mod := range modulosNegocio {
		grant(RoleVisualizador, mod, AcaoVisualizar)
	}

	// OPERADOR: opera o dia a dia (vendas, clientes, estoque, calendário);
	// financeiro apenas leitura; nada em configurações.
	grant(RoleOperador, ModuloVendas, AcaoVisualizar, AcaoCriar, AcaoEditar)
	grant(RoleOperador, ModuloClientes, AcaoVisualizar, AcaoCriar, AcaoEditar)
	grant(RoleOperador, ModuloEstoque, AcaoVisualizar, AcaoCriar, AcaoEditar)
	grant(RoleOperador, ModuloCalendario, AcaoVisualizar, AcaoCriar, AcaoEditar, AcaoExcluir)
	grant(RoleOperador, ModuloFinanceiro, AcaoVisualizar)

	// GESTOR: tudo dos módulos de negócio + gestão de membros.
	for _, mod := range modulosNegocio {
		grant(RoleGestor, mod, AcaoVisualizar, AcaoCriar, AcaoEditar, AcaoExcluir)
	}
	grant(RoleGestor, ModuloConfiguracoes, AcaoVisualizar, AcaoGerenciarMembros)

	// ADMIN: tudo do GESTOR + administração de empresas da organização.
	for _, mod := range modulosNegocio {
		grant(RoleAdmin, mod, AcaoVisualizar, AcaoCriar, AcaoEditar, AcaoExcluir)
	}
	grant(RoleAdmin, ModuloConfiguracoes, AcaoVisualizar, AcaoGerenciarMembros, AcaoGerenciarEmpresa)

	return m
}

// Permite informa se o role concede a permissão.
func (r Role) Permite(p Permissao) bool {
	set, ok := matrizPermissoes[r]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

// Permissoes devolve a lista de permissões do role (para GET /api/auth/me).
// A ordem não é garantida.
func (r Role) Permissoes() []Permissao {
	set := matrizPermissoes[r]
	out := make([]Permissao, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// PodeGerenciarMembros atalho usado pelo módulo de membros.
func (r Role) PodeGerenciarMembros() bool {
	return r.Permite(Permissao{Modulo: ModuloConfiguracoes, Acao: AcaoGerenciarMembros})
}
