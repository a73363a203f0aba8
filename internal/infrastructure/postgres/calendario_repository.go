package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

var _ repository.EventoRepository = (*EventoRepo)(nil)
var _ repository.StageRepository = (*StageRepo)(nil)

const eventoCols = `id, organizacao_id, user_id, title, start_at, end_at, all_day, description, recurrence, stage_id, pedido_id, created_at, updated_at`

// EventoRepo implementação do porto EventoRepository sobre PostgreSQL
// (usável com pool ou tx).
type EventoRepo struct {
	q Querier
}

// NewEventoRepository constrói o adaptador de persistência de eventos.
func NewEventoRepository(q Querier) *EventoRepo {
	return &EventoRepo{q: q}
}

// Create persiste um novo evento.
func (r *EventoRepo) Create(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (` + eventoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrganizacaoID, e.UserID, e.Title, e.Start, e.End, e.AllDay,
		e.Description, e.Recurrence, e.StageID, e.PedidoID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evento: %w", err)
	}
	return nil
}

// GetByID busca o evento dentro da organização; nil quando não existe.
func (r *EventoRepo) GetByID(ctx context.Context, id, organizacaoID string) (*entity.CalendarEvent, error) {
	query := `SELECT ` + eventoCols + ` FROM calendar_events WHERE id = $1 AND organizacao_id = $2`
	var e entity.CalendarEvent
	err := r.q.QueryRow(ctx, query, id, organizacaoID).Scan(
		&e.ID, &e.OrganizacaoID, &e.UserID, &e.Title, &e.Start, &e.End, &e.AllDay,
		&e.Description, &e.Recurrence, &e.StageID, &e.PedidoID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get evento: %w", err)
	}
	return &e, nil
}

// Update atualiza o evento.
func (r *EventoRepo) Update(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET user_id = $2, title = $3, start_at = $4, end_at = $5, all_day = $6,
			description = $7, recurrence = $8, stage_id = $9, pedido_id = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.Title, e.Start, e.End, e.AllDay,
		e.Description, e.Recurrence, e.StageID, e.PedidoID, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update evento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o evento.
func (r *EventoRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List eventos da organização cujo intervalo intersecta a janela, com os
// nomes do responsável, da etapa e o número do pedido vinculado.
func (r *EventoRepo) List(ctx context.Context, filtro repository.FiltroEventos) ([]repository.EventoComRelacoes, error) {
	query := `
		SELECT e.id, e.organizacao_id, e.user_id, e.title, e.start_at, e.end_at, e.all_day,
			e.description, e.recurrence, e.stage_id, e.pedido_id, e.created_at, e.updated_at,
			u.nome, s.nome, p.numero_pedido
		FROM calendar_events e
		JOIN usuarios u ON u.id = e.user_id
		LEFT JOIN kanban_stages s ON s.id = e.stage_id
		LEFT JOIN pedidos p ON p.id = e.pedido_id
		WHERE e.organizacao_id = $1`
	args := []any{filtro.OrganizacaoID}
	n := 2
	// Interseção de intervalos: o evento entra se termina depois do início
	// da janela e começa antes do fim dela.
	if filtro.Start != nil {
		query += fmt.Sprintf(" AND e.end_at >= $%d", n)
		args = append(args, *filtro.Start)
		n++
	}
	if filtro.End != nil {
		query += fmt.Sprintf(" AND e.start_at <= $%d", n)
		args = append(args, *filtro.End)
		n++
	}
	if filtro.UserID != "" {
		query += fmt.Sprintf(" AND e.user_id = $%d", n)
		args = append(args, filtro.UserID)
	}
	query += " ORDER BY e.start_at"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list eventos: %w", err)
	}
	defer rows.Close()

	var out []repository.EventoComRelacoes
	for rows.Next() {
		var row repository.EventoComRelacoes
		err := rows.Scan(
			&row.Evento.ID, &row.Evento.OrganizacaoID, &row.Evento.UserID, &row.Evento.Title,
			&row.Evento.Start, &row.Evento.End, &row.Evento.AllDay, &row.Evento.Description,
			&row.Evento.Recurrence, &row.Evento.StageID, &row.Evento.PedidoID,
			&row.Evento.CreatedAt, &row.Evento.UpdatedAt,
			&row.UserNome, &row.StageNome, &row.NumeroPedido,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evento: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListAll todos os eventos da organização (resumo do quadro).
func (r *EventoRepo) ListAll(ctx context.Context, organizacaoID string) ([]*entity.CalendarEvent, error) {
	query := `SELECT ` + eventoCols + ` FROM calendar_events WHERE organizacao_id = $1`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list all eventos: %w", err)
	}
	defer rows.Close()

	var out []*entity.CalendarEvent
	for rows.Next() {
		var e entity.CalendarEvent
		err := rows.Scan(
			&e.ID, &e.OrganizacaoID, &e.UserID, &e.Title, &e.Start, &e.End, &e.AllDay,
			&e.Description, &e.Recurrence, &e.StageID, &e.PedidoID, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evento: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// StageRepo implementação do porto StageRepository sobre PostgreSQL
// (usável com pool ou tx).
type StageRepo struct {
	q Querier
}

// NewStageRepository constrói o adaptador de etapas do kanban.
func NewStageRepository(q Querier) *StageRepo {
	return &StageRepo{q: q}
}

// Create persiste uma nova etapa.
func (r *StageRepo) Create(ctx context.Context, s *entity.KanbanStage) error {
	query := `
		INSERT INTO kanban_stages (id, organizacao_id, nome, ordem, capacidade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.OrganizacaoID, s.Nome, s.Ordem, s.Capacidade, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

// GetByID busca a etapa dentro da organização; nil quando não existe.
func (r *StageRepo) GetByID(ctx context.Context, id, organizacaoID string) (*entity.KanbanStage, error) {
	query := `
		SELECT id, organizacao_id, nome, ordem, capacidade, created_at, updated_at
		FROM kanban_stages WHERE id = $1 AND organizacao_id = $2`
	var s entity.KanbanStage
	err := r.q.QueryRow(ctx, query, id, organizacaoID).Scan(
		&s.ID, &s.OrganizacaoID, &s.Nome, &s.Ordem, &s.Capacidade, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &s, nil
}

// Update atualiza nome e capacidade da etapa.
func (r *StageRepo) Update(ctx context.Context, s *entity.KanbanStage) error {
	query := `UPDATE kanban_stages SET nome = $2, ordem = $3, capacidade = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Nome, s.Ordem, s.Capacidade, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove a etapa; eventos vinculados ficam com stage_id nulo via
// ON DELETE SET NULL.
func (r *StageRepo) Delete(ctx context.Context, id, organizacaoID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM kanban_stages WHERE id = $1 AND organizacao_id = $2`, id, organizacaoID)
	if err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrganizacao etapas em ordem crescente.
func (r *StageRepo) ListByOrganizacao(ctx context.Context, organizacaoID string) ([]*entity.KanbanStage, error) {
	query := `
		SELECT id, organizacao_id, nome, ordem, capacidade, created_at, updated_at
		FROM kanban_stages WHERE organizacao_id = $1 ORDER BY ordem`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var out []*entity.KanbanStage
	for rows.Next() {
		var s entity.KanbanStage
		if err := rows.Scan(&s.ID, &s.OrganizacaoID, &s.Nome, &s.Ordem, &s.Capacidade, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
