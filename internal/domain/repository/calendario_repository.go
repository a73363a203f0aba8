package repository

import (
	"context"
	"time"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// FiltroEventos janela e responsável das listagens do calendário.
// Start/End selecionam eventos cujo intervalo INTERSECTA a janela.
type FiltroEventos struct {
	OrganizacaoID string
	Start         *time.Time
	End           *time.Time
	UserID        string
}

// EventoComRelacoes evento com nomes do responsável, da etapa e do pedido.
type EventoComRelacoes struct {
	Evento       entity.CalendarEvent
	UserNome     string
	StageNome    *string
	NumeroPedido *int
}

// EventoRepository porto de persistência para CalendarEvent.
type EventoRepository interface {
	Create(ctx context.Context, evento *entity.CalendarEvent) error
	GetByID(ctx context.Context, id, organizacaoID string) (*entity.CalendarEvent, error)
	Update(ctx context.Context, evento *entity.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filtro FiltroEventos) ([]EventoComRelacoes, error)
	ListAll(ctx context.Context, organizacaoID string) ([]*entity.CalendarEvent, error)
}

// StageRepository porto de persistência para KanbanStage.
type StageRepository interface {
	Create(ctx context.Context, stage *entity.KanbanStage) error
	GetByID(ctx context.Context, id, organizacaoID string) (*entity.KanbanStage, error)
	Update(ctx context.Context, stage *entity.KanbanStage) error
	Delete(ctx context.Context, id, organizacaoID string) error
	// ListByOrganizacao devolve as etapas ordenadas por ordem crescente.
	ListByOrganizacao(ctx context.Context, organizacaoID string) ([]*entity.KanbanStage, error)
}
