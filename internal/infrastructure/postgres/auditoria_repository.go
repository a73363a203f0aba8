package postgres

import (
	"context"
	"fmt"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementação da trilha de auditoria (append-only).
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository constrói o adaptador da trilha de auditoria.
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create grava um registro imutável.
func (r *AuditoriaRepo) Create(ctx context.Context, l *entity.LogAuditoria) error {
	query := `
		INSERT INTO logs_auditoria (id, usuario_id, empresa_id, organizacao_id, acao, tabela, registro_id, dados_antigos, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UsuarioID, nullIfEmpty(l.EmpresaID), l.OrganizacaoID, string(l.Acao),
		l.Tabela, l.RegistroID, l.DadosAntigos, l.IP, l.UserAgent, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log auditoria: %w", err)
	}
	return nil
}
