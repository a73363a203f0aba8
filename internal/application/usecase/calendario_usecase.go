package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// CalendarioUseCase eventos/tarefas org-wide: listagem por janela,
// CRUD, clone e resumo do quadro.
type CalendarioUseCase struct {
	eventoRepo repository.EventoRepository
	stageRepo  repository.StageRepository
}

// NewCalendarioUseCase constrói o caso de uso.
func NewCalendarioUseCase(eventoRepo repository.EventoRepository, stageRepo repository.StageRepository) *CalendarioUseCase {
	return &CalendarioUseCase{eventoRepo: eventoRepo, stageRepo: stageRepo}
}

// List eventos da organização cujo intervalo intersecta a janela
// start/end informada, com filtro opcional de responsável.
func (uc *CalendarioUseCase) List(ctx context.Context, sess tenant.Contexto, start, end *time.Time, userID string) ([]dto.EventoResponse, error) {
	rows, err := uc.eventoRepo.List(ctx, repository.FiltroEventos{
		OrganizacaoID: sess.OrganizacaoID,
		Start:         start,
		End:           end,
		UserID:        userID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventoResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEventoResponse(row))
	}
	return out, nil
}

// Create cria um evento; sem responsável informado, o autor assume.
func (uc *CalendarioUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreateEventoRequest) (*dto.EventoResponse, error) {
	if in.Title == "" || in.Start == nil || in.End == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.End.Before(*in.Start) {
		return nil, domain.ErrInvalidInput
	}
	if in.StageID != nil {
		stage, err := uc.stageRepo.GetByID(ctx, *in.StageID, sess.OrganizacaoID)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			return nil, domain.ErrNotFound
		}
	}

	userID := in.UserID
	if userID == "" {
		userID = sess.UserID
	}
	now := time.Now()
	evento := &entity.CalendarEvent{
		ID:            uuid.New().String(),
		OrganizacaoID: sess.OrganizacaoID,
		UserID:        userID,
		Title:         in.Title,
		Start:         *in.Start,
		End:           *in.End,
		AllDay:        in.AllDay,
		Description:   in.Description,
		Recurrence:    in.Recurrence,
		StageID:       in.StageID,
		PedidoID:      in.PedidoID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.eventoRepo.Create(ctx, evento); err != nil {
		return nil, err
	}
	resp := toEventoResponseSemRelacoes(evento)
	return &resp, nil
}

// Update patch parcial; o drag-and-drop do quadro manda só start/end ou
// stageId.
func (uc *CalendarioUseCase) Update(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateEventoRequest) (*dto.EventoResponse, error) {
	evento, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		evento.Title = *in.Title
	}
	if in.Start != nil {
		evento.Start = *in.Start
	}
	if in.End != nil {
		evento.End = *in.End
	}
	if evento.End.Before(evento.Start) {
		return nil, domain.ErrInvalidInput
	}
	if in.AllDay != nil {
		evento.AllDay = *in.AllDay
	}
	if in.Description != nil {
		evento.Description = *in.Description
	}
	if in.Recurrence != nil {
		evento.Recurrence = *in.Recurrence
	}
	if in.StageID != nil {
		stage, err := uc.stageRepo.GetByID(ctx, *in.StageID, sess.OrganizacaoID)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			return nil, domain.ErrNotFound
		}
		evento.StageID = in.StageID
	}
	if in.PedidoID != nil {
		evento.PedidoID = in.PedidoID
	}
	if in.UserID != nil {
		evento.UserID = *in.UserID
	}
	evento.UpdatedAt = time.Now()

	if err := uc.eventoRepo.Update(ctx, evento); err != nil {
		return nil, err
	}
	resp := toEventoResponseSemRelacoes(evento)
	return &resp, nil
}

// Delete exclui o evento.
func (uc *CalendarioUseCase) Delete(ctx context.Context, sess tenant.Contexto, id string) error {
	evento, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return err
	}
	return uc.eventoRepo.Delete(ctx, evento.ID)
}

// Clone duplica o evento com o título sufixado com " (Cópia)".
func (uc *CalendarioUseCase) Clone(ctx context.Context, sess tenant.Contexto, id string) (*dto.EventoResponse, error) {
	original, err := uc.buscar(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	copia := *original
	copia.ID = uuid.New().String()
	copia.Title = original.Title + " (Cópia)"
	copia.CreatedAt = now
	copia.UpdatedAt = now
	if err := uc.eventoRepo.Create(ctx, &copia); err != nil {
		return nil, err
	}
	resp := toEventoResponseSemRelacoes(&copia)
	return &resp, nil
}

// Summary resumo do quadro: total, pendentes, concluídas (eventos na
// última etapa) e tempo previsto em horas das pendentes.
func (uc *CalendarioUseCase) Summary(ctx context.Context, sess tenant.Contexto) (*dto.CalendarioSummaryResponse, error) {
	eventos, err := uc.eventoRepo.ListAll(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	stages, err := uc.stageRepo.ListByOrganizacao(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}

	var stageConcluido string
	if len(stages) > 0 {
		stageConcluido = stages[len(stages)-1].ID
	}

	resp := &dto.CalendarioSummaryResponse{Total: len(eventos)}
	for _, ev := range eventos {
		concluida := stageConcluido != "" && ev.StageID != nil && *ev.StageID == stageConcluido
		if concluida {
			resp.Concluidas++
			continue
		}
		resp.Pendentes++
		resp.TempoPrevisto += ev.End.Sub(ev.Start).Hours()
	}
	return resp, nil
}

func (uc *CalendarioUseCase) buscar(ctx context.Context, sess tenant.Contexto, id string) (*entity.CalendarEvent, error) {
	evento, err := uc.eventoRepo.GetByID(ctx, id, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	if evento == nil {
		return nil, domain.ErrNotFound
	}
	return evento, nil
}

func toEventoResponse(row repository.EventoComRelacoes) dto.EventoResponse {
	resp := toEventoResponseSemRelacoes(&row.Evento)
	resp.User = &dto.UserRef{ID: row.Evento.UserID, Nome: row.UserNome}
	if row.StageNome != nil {
		resp.Stage = &dto.StageRef{Nome: *row.StageNome}
	}
	if row.NumeroPedido != nil && row.Evento.PedidoID != nil {
		resp.Pedido = &dto.PedidoRef{ID: *row.Evento.PedidoID, NumeroPedido: *row.NumeroPedido}
	}
	return resp
}

func toEventoResponseSemRelacoes(ev *entity.CalendarEvent) dto.EventoResponse {
	return dto.EventoResponse{
		ID:          ev.ID,
		Title:       ev.Title,
		Start:       ev.Start,
		End:         ev.End,
		AllDay:      ev.AllDay,
		Description: ev.Description,
		Recurrence:  ev.Recurrence,
		StageID:     ev.StageID,
		PedidoID:    ev.PedidoID,
		UserID:      ev.UserID,
		CreatedAt:   ev.CreatedAt,
	}
}
