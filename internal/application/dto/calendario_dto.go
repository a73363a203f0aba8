package dto

import "time"

// CreateEventoRequest criação de evento/tarefa. UserID vazio usa o autor.
type CreateEventoRequest struct {
	Title       string     `json:"title"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	AllDay      bool       `json:"allDay"`
	Description string     `json:"description"`
	Recurrence  string     `json:"recurrence"`
	StageID     *string    `json:"stageId"`
	PedidoID    *string    `json:"pedidoId"`
	UserID      string     `json:"userId"`
}

// UpdateEventoRequest patch parcial de evento (drag-and-drop muda só
// start/end ou stageId).
type UpdateEventoRequest struct {
	Title       *string    `json:"title"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	AllDay      *bool      `json:"allDay"`
	Description *string    `json:"description"`
	Recurrence  *string    `json:"recurrence"`
	StageID     *string    `json:"stageId"`
	PedidoID    *string    `json:"pedidoId"`
	UserID      *string    `json:"userId"`
}

// UserRef referência mínima ao responsável.
type UserRef struct {
	ID   string `json:"id,omitempty"`
	Nome string `json:"nome"`
}

// StageRef referência mínima à etapa.
type StageRef struct {
	Nome string `json:"nome"`
}

// PedidoRef referência mínima ao pedido vinculado.
type PedidoRef struct {
	ID           string `json:"id,omitempty"`
	NumeroPedido int    `json:"numeroPedido"`
}

// EventoResponse saída de evento com relações aninhadas (contrato do
// front-end de calendário).
type EventoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	AllDay      bool       `json:"allDay"`
	Description string     `json:"description,omitempty"`
	Recurrence  string     `json:"recurrence,omitempty"`
	StageID     *string    `json:"stageId"`
	PedidoID    *string    `json:"pedidoId"`
	UserID      string     `json:"userId"`
	User        *UserRef   `json:"user,omitempty"`
	Stage       *StageRef  `json:"stage,omitempty"`
	Pedido      *PedidoRef `json:"pedido,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CalendarioSummaryResponse resumo das tarefas; TempoPrevisto em horas.
type CalendarioSummaryResponse struct {
	Total         int     `json:"total"`
	Pendentes     int     `json:"pendentes"`
	Concluidas    int     `json:"concluidas"`
	TempoPrevisto float64 `json:"tempoPrevisto"`
}

// CreateStageRequest nova etapa do kanban.
type CreateStageRequest struct {
	Nome  string `json:"nome"`
	Ordem *int   `json:"ordem"`
}

// UpdateStageRequest renomeia a etapa ou ajusta a capacidade.
type UpdateStageRequest struct {
	Nome       *string `json:"nome"`
	Capacidade *int    `json:"capacidade"`
}

// StageResponse saída de etapa do kanban.
type StageResponse struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Ordem      int    `json:"ordem"`
	Capacidade *int   `json:"capacidade,omitempty"`
}
