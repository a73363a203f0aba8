// Package pdf gera a representação A4 de pedidos e orçamentos para envio
// ao cliente.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ  │  Nº Pedido + Data + Status       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMITENTE: Endereço / Tel / Email                           │
//	│  CLIENTE: Nome + CPF/CNPJ + contato                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Descrição | Tipo | Preço Unit. | Subtotal    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Subtotal dos itens / Frete / TOTAL                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: observações de negociação e validade do orçamento  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/application/vendas"
	"github.com/mare-erp/mare-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 15, Green: 76, Blue: 129}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ vendas.PedidoPDFGenerator = (*MarotoPedidoGenerator)(nil)

// MarotoPedidoGenerator implementa vendas.PedidoPDFGenerator com Maroto v2.
type MarotoPedidoGenerator struct{}

// NewMarotoPedidoGenerator constrói o gerador.
func NewMarotoPedidoGenerator() *MarotoPedidoGenerator { return &MarotoPedidoGenerator{} }

// GerarPedidoPDF gera o PDF e devolve os bytes.
func (g *MarotoPedidoGenerator) GerarPedidoPDF(
	_ context.Context,
	pedido *entity.Pedido,
	empresa *entity.Empresa,
	cliente *entity.Cliente,
	itens []*entity.ItemPedido,
) ([]byte, error) {
	titulo := "PEDIDO DE VENDA"
	if pedido.Status == entity.PedidoOrcamento {
		titulo = "ORÇAMENTO"
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s #%d", titulo, pedido.NumeroPedido), true).
		WithAuthor(empresa.Nome, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(pedido, empresa, titulo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitenteRow(empresa))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(itens) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totaisRow(pedido, itens))

	for _, r := range rodapeRows(pedido) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome da empresa + CNPJ (esq) e número + data + status (dir).
func headerRow(pedido *entity.Pedido, empresa *entity.Empresa, titulo string) core.Row {
	data := pedido.DataPedido.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa.Nome, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(empresa.CNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", pedido.NumeroPedido), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emitenteRow: dados da empresa emitente.
func emitenteRow(empresa *entity.Empresa) core.Row {
	endereco := enderecoLinha(empresa.Rua, empresa.Numero, empresa.Cidade, empresa.UF)
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DADOS DO EMITENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(endereco, "—"),
				nonEmpty(empresa.Telefone, "—"),
				nonEmpty(empresa.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: dados do comprador.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.Nome, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(cliente.CpfCnpj, "—"),
				nonEmpty(cliente.Email, "—"),
				nonEmpty(cliente.Telefone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Descrição", 5, align.Left),
		h("Tipo", 1, align.Center),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: uma linha por item do pedido.
func tableItemRows(itens []*entity.ItemPedido) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for _, item := range itens {
		tipo := "Prod."
		if item.Tipo == entity.ItemServico {
			tipo = "Serv."
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantidade),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.Descricao,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				tipo,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatReal(item.PrecoUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatReal(item.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totaisRow: bloco de totais alinhado à direita.
func totaisRow(pedido *entity.Pedido, itens []*entity.ItemPedido) core.Row {
	subtotal := decimal.Zero
	for _, item := range itens {
		subtotal = subtotal.Add(item.Subtotal)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal dos itens:"),
			label("Frete:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(formatReal(subtotal)),
			value(formatReal(pedido.Frete)),
			grandValue(formatReal(pedido.ValorTotal)),
		),
		col.New(3),
	)
}

// rodapeRows: observações de negociação e validade do orçamento.
func rodapeRows(pedido *entity.Pedido) []core.Row {
	var rows []core.Row
	rows = append(rows, line.NewRow(3))

	if pedido.InformacoesNegociacao != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("CONDIÇÕES DE NEGOCIAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(pedido.InformacoesNegociacao, props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		)))
	}
	if pedido.Status == entity.PedidoOrcamento && pedido.ValidadeOrcamento != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Orçamento válido até "+pedido.ValidadeOrcamento.Format("02/01/2006"), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// enderecoLinha monta "Rua, Nº - Cidade/UF" só com as partes presentes.
func enderecoLinha(rua, numero, cidade, uf string) string {
	var b strings.Builder
	if rua != "" {
		b.WriteString(rua)
		if numero != "" {
			b.WriteString(", " + numero)
		}
	}
	if cidade != "" {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(cidade)
		if uf != "" {
			b.WriteString("/" + uf)
		}
	}
	return b.String()
}

// formatReal formata um decimal como moeda brasileira (R$ 1.234,56).
func formatReal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}

	out := "R$ " + string(buf) + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
