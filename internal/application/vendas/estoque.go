package vendas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// Efeitos de estoque de um pedido, concentrados aqui para que criação,
// atualização e exclusão apliquem e revertam exatamente as mesmas
// quantidades. Todas as funções operam sobre repositórios atados à
// transação corrente.

// temEfeitoEstoque informa se a linha movimenta estoque: só item físico
// com produto cadastrado.
func temEfeitoEstoque(item *entity.ItemPedido) bool {
	return item.Tipo == entity.ItemProduto && item.ProdutoID != nil
}

// baixarEstoque decrementa o estoque de cada linha física e registra a
// saída no razão. O decremento é relativo (feito no próprio UPDATE), então
// duas vendas concorrentes nunca perdem um ajuste, ainda que o saldo possa
// ficar negativo sem lock de linha.
func baixarEstoque(
	ctx context.Context,
	produtos repository.ProdutoRepository,
	movs repository.MovimentacaoRepository,
	empresaID string,
	numeroPedido int,
	itens []*entity.ItemPedido,
) error {
	for _, item := range itens {
		if !temEfeitoEstoque(item) {
			continue
		}
		if err := produtos.AjustarEstoque(ctx, *item.ProdutoID, -item.Quantidade); err != nil {
			return err
		}
		mov := &entity.MovimentacaoEstoque{
			ID:         uuid.New().String(),
			EmpresaID:  empresaID,
			ProdutoID:  *item.ProdutoID,
			Tipo:       entity.MovimentacaoSaida,
			Quantidade: item.Quantidade,
			Observacao: fmt.Sprintf("Venda - Pedido #%d", numeroPedido),
			CreatedAt:  time.Now(),
		}
		if err := movs.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// estornarEstoque devolve ao estoque as quantidades baixadas das linhas
// físicas e registra a entrada de estorno. É o inverso exato de
// baixarEstoque, chamado tanto pela atualização quanto pela exclusão.
func estornarEstoque(
	ctx context.Context,
	produtos repository.ProdutoRepository,
	movs repository.MovimentacaoRepository,
	empresaID string,
	numeroPedido int,
	itens []*entity.ItemPedido,
) error {
	for _, item := range itens {
		if !temEfeitoEstoque(item) {
			continue
		}
		if err := produtos.AjustarEstoque(ctx, *item.ProdutoID, item.Quantidade); err != nil {
			return err
		}
		mov := &entity.MovimentacaoEstoque{
			ID:         uuid.New().String(),
			EmpresaID:  empresaID,
			ProdutoID:  *item.ProdutoID,
			Tipo:       entity.MovimentacaoEntrada,
			Quantidade: item.Quantidade,
			Observacao: fmt.Sprintf("Estorno de venda - Pedido #%d", numeroPedido),
			CreatedAt:  time.Now(),
		}
		if err := movs.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
