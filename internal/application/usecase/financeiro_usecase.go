package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// FinanceiroUseCase contas a receber/pagar da empresa: CRUD paginado,
// visão rápida e dados do dashboard.
type FinanceiroUseCase struct {
	transacaoRepo repository.TransacaoRepository
	clienteRepo   repository.ClienteRepository
	resolver      *tenant.Resolver
}

// NewFinanceiroUseCase constrói o caso de uso.
func NewFinanceiroUseCase(
	transacaoRepo repository.TransacaoRepository,
	clienteRepo repository.ClienteRepository,
	resolver *tenant.Resolver,
) *FinanceiroUseCase {
	return &FinanceiroUseCase{transacaoRepo: transacaoRepo, clienteRepo: clienteRepo, resolver: resolver}
}

// Create lança uma transação na empresa da sessão. Vencimento ausente
// assume a data corrente.
func (uc *FinanceiroUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreateTransacaoRequest) (*dto.TransacaoResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}

	if in.Descricao == "" || !in.Valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	tipo, ok := entity.ParseTipoTransacao(in.Tipo)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	status := entity.TransacaoPendente
	if in.Status != "" {
		status, ok = entity.ParseStatusTransacao(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.ClienteID != nil {
		cliente, err := uc.clienteRepo.GetByID(ctx, *in.ClienteID, empresaID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	vencimento := now
	if in.DataVencimento != nil {
		vencimento = *in.DataVencimento
	}
	t := &entity.TransacaoFinanceira{
		ID:             uuid.New().String(),
		EmpresaID:      empresaID,
		ClienteID:      in.ClienteID,
		Descricao:      in.Descricao,
		Valor:          in.Valor,
		Tipo:           tipo,
		Status:         status,
		Categoria:      in.Categoria,
		DataVencimento: vencimento,
		DataPagamento:  in.DataPagamento,
		Observacoes:    in.Observacoes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.transacaoRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := toTransacaoResponse(t, nil)
	return &resp, nil
}

// List página de transações com filtros de tipo e status.
func (uc *FinanceiroUseCase) List(ctx context.Context, sess tenant.Contexto, tipo, status string, page, limit int) (*dto.TransacoesPageResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filtro := repository.FiltroTransacoes{
		EmpresaID: empresaID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if tipo != "" {
		parsed, ok := entity.ParseTipoTransacao(tipo)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filtro.Tipo = parsed
	}
	if status != "" {
		parsed, ok := entity.ParseStatusTransacao(status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filtro.Status = parsed
	}

	rows, err := uc.transacaoRepo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	total, err := uc.transacaoRepo.Count(ctx, filtro)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransacaoResponse, 0, len(rows))
	for _, row := range rows {
		t := row.Transacao
		out = append(out, toTransacaoResponse(&t, row.ClienteNome))
	}
	pages := (total + limit - 1) / limit
	return &dto.TransacoesPageResponse{
		Transacoes: out,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	}, nil
}

// Update patch parcial da transação.
func (uc *FinanceiroUseCase) Update(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateTransacaoRequest) (*dto.TransacaoResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}
	t, err := uc.transacaoRepo.GetByID(ctx, id, empresaID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	if in.Descricao != nil {
		if *in.Descricao == "" {
			return nil, domain.ErrInvalidInput
		}
		t.Descricao = *in.Descricao
	}
	if in.Valor != nil {
		if !in.Valor.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		t.Valor = *in.Valor
	}
	if in.Status != nil {
		status, ok := entity.ParseStatusTransacao(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		// Marcar como PAGA carimba a data de pagamento se não veio uma.
		if status == entity.TransacaoPaga && t.DataPagamento == nil && in.DataPagamento == nil {
			now := time.Now()
			t.DataPagamento = &now
		}
		t.Status = status
	}
	if in.Categoria != nil {
		t.Categoria = *in.Categoria
	}
	if in.DataVencimento != nil {
		t.DataVencimento = *in.DataVencimento
	}
	if in.DataPagamento != nil {
		t.DataPagamento = in.DataPagamento
	}
	if in.Observacoes != nil {
		t.Observacoes = *in.Observacoes
	}
	t.UpdatedAt = time.Now()

	if err := uc.transacaoRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	resp := toTransacaoResponse(t, nil)
	return &resp, nil
}

// Delete exclui a transação.
func (uc *FinanceiroUseCase) Delete(ctx context.Context, sess tenant.Contexto, id string) error {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return err
	}
	t, err := uc.transacaoRepo.GetByID(ctx, id, empresaID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.transacaoRepo.Delete(ctx, id, empresaID)
}

// Summary visão rápida: a receber, a pagar, saldo do mês corrente e
// contas vencendo nos próximos 7 dias.
func (uc *FinanceiroUseCase) Summary(ctx context.Context, sess tenant.Contexto) (*dto.FinanceiroSummaryResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}

	aReceber, err := uc.transacaoRepo.SumPendentes(ctx, empresaID, entity.TransacaoReceita)
	if err != nil {
		return nil, err
	}
	aPagar, err := uc.transacaoRepo.SumPendentes(ctx, empresaID, entity.TransacaoDespesa)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fimMes := inicioMes.AddDate(0, 1, 0)
	receitasMes, err := uc.transacaoRepo.SumPagasNoPeriodo(ctx, empresaID, entity.TransacaoReceita, inicioMes, fimMes)
	if err != nil {
		return nil, err
	}
	despesasMes, err := uc.transacaoRepo.SumPagasNoPeriodo(ctx, empresaID, entity.TransacaoDespesa, inicioMes, fimMes)
	if err != nil {
		return nil, err
	}

	vencendo, err := uc.transacaoRepo.CountVencendo(ctx, empresaID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	return &dto.FinanceiroSummaryResponse{
		AReceber:       aReceber,
		APagar:         aPagar,
		SaldoMes:       receitasMes.Sub(despesasMes),
		ContasVencendo: vencendo,
	}, nil
}

// DashboardData dados do dashboard: totais do mês corrente, pendências e
// fluxo de seis meses por vencimento.
func (uc *FinanceiroUseCase) DashboardData(ctx context.Context, sess tenant.Contexto) (*dto.DashboardFinanceiroResponse, error) {
	empresaID, err := uc.resolver.ResolverEmpresa(ctx, sess, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fimMes := inicioMes.AddDate(0, 1, 0)
	inicioJanela := inicioMes.AddDate(0, -5, 0)

	transacoes, err := uc.transacaoRepo.ListPorVencimento(ctx, empresaID, inicioJanela, fimMes)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardFinanceiroResponse{
		EntradasMes:       decimal.Zero,
		EntradasPendentes: decimal.Zero,
		SaidasMes:         decimal.Zero,
		SaidasPendentes:   decimal.Zero,
	}

	// Seis buckets mensais, do mais antigo ao corrente.
	fluxo := make([]dto.FluxoMensalEntry, 6)
	for i := range fluxo {
		mes := inicioJanela.AddDate(0, i, 0)
		fluxo[i] = dto.FluxoMensalEntry{
			Mes:      mes.Format("2006-01"),
			Entradas: decimal.Zero,
			Saidas:   decimal.Zero,
		}
	}

	for _, t := range transacoes {
		if t.Status == entity.TransacaoCancelada {
			continue
		}
		doMes := !t.DataVencimento.Before(inicioMes) && t.DataVencimento.Before(fimMes)
		switch t.Tipo {
		case entity.TransacaoReceita:
			if doMes {
				if t.Status == entity.TransacaoPaga {
					resp.EntradasMes = resp.EntradasMes.Add(t.Valor)
				} else {
					resp.EntradasPendentes = resp.EntradasPendentes.Add(t.Valor)
				}
			}
		case entity.TransacaoDespesa:
			if doMes {
				if t.Status == entity.TransacaoPaga {
					resp.SaidasMes = resp.SaidasMes.Add(t.Valor)
				} else {
					resp.SaidasPendentes = resp.SaidasPendentes.Add(t.Valor)
				}
			}
		}
		if t.Status == entity.TransacaoPaga {
			idx := mesesEntre(inicioJanela, t.DataVencimento)
			if idx >= 0 && idx < len(fluxo) {
				if t.Tipo == entity.TransacaoReceita {
					fluxo[idx].Entradas = fluxo[idx].Entradas.Add(t.Valor)
				} else {
					fluxo[idx].Saidas = fluxo[idx].Saidas.Add(t.Valor)
				}
			}
		}
	}

	resp.Saldo = resp.EntradasMes.Sub(resp.SaidasMes)
	resp.FluxoMensal = fluxo

	vencendo, err := uc.transacaoRepo.CountVencendo(ctx, empresaID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	resp.ContasVencendo = vencendo
	return resp, nil
}

// mesesEntre quantos meses de calendário separam base de t (0 = mesmo mês).
func mesesEntre(base, t time.Time) int {
	return (t.Year()-base.Year())*12 + int(t.Month()) - int(base.Month())
}

func toTransacaoResponse(t *entity.TransacaoFinanceira, clienteNome *string) dto.TransacaoResponse {
	resp := dto.TransacaoResponse{
		ID:             t.ID,
		EmpresaID:      t.EmpresaID,
		Descricao:      t.Descricao,
		Valor:          t.Valor,
		Tipo:           string(t.Tipo),
		Status:         string(t.Status),
		Categoria:      t.Categoria,
		DataVencimento: t.DataVencimento,
		DataPagamento:  t.DataPagamento,
		Observacoes:    t.Observacoes,
		CreatedAt:      t.CreatedAt,
	}
	if t.ClienteID != nil && clienteNome != nil {
		resp.Cliente = &dto.ClienteRef{ID: *t.ClienteID, Nome: *clienteNome}
	}
	return resp
}
