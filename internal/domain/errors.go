package domain

import "errors"

// Erros de domínio (sem dependências externas). Os handlers HTTP mapeiam
// cada sentinela para o status correspondente.
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrUsuarioNotFound       = errors.New("usuário não encontrado")
	ErrEmailJaCadastrado     = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("não autorizado")
	ErrForbidden             = errors.New("acesso negado")
	ErrConflict              = errors.New("conflito com o estado atual")
	ErrEmpresaNaoSelecionada = errors.New("nenhuma empresa selecionada")
	ErrMembroJaExiste        = errors.New("este usuário já faz parte da organização")
	ErrAutoModificacao       = errors.New("um membro não pode alterar ou remover a si mesmo")
	ErrClienteComPedidos     = errors.New("cliente possui pedidos associados")
	ErrNumeroPedidoEmUso     = errors.New("já existe um pedido com este número")
)
