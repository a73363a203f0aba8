package entity

import "time"

// KanbanStage etapa do quadro de tarefas, escopada pela organização.
// A última etapa (maior Ordem) é tratada como "concluído" nos resumos.
type KanbanStage struct {
	ID            string
	OrganizacaoID string
	Nome          string
	Ordem         int
	Capacidade    *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CalendarEvent tarefa/compromisso org-wide do calendário e do kanban.
// StageID e PedidoID são opcionais; UserID é o responsável.
type CalendarEvent struct {
	ID            string
	OrganizacaoID string
	UserID        string
	Title         string
	Start         time.Time
	End           time.Time
	AllDay        bool
	Description   string
	Recurrence    string
	StageID       *string
	PedidoID      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
