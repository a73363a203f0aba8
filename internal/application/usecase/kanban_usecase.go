package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mare-erp/mare-api/internal/application/dto"
	"github.com/mare-erp/mare-api/internal/application/tenant"
	"github.com/mare-erp/mare-api/internal/domain"
	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// KanbanUseCase etapas do quadro de tarefas, escopadas pela organização e
// ordenadas por `ordem`.
type KanbanUseCase struct {
	stageRepo repository.StageRepository
}

// NewKanbanUseCase constrói o caso de uso.
func NewKanbanUseCase(stageRepo repository.StageRepository) *KanbanUseCase {
	return &KanbanUseCase{stageRepo: stageRepo}
}

// List etapas da organização em ordem crescente.
func (uc *KanbanUseCase) List(ctx context.Context, sess tenant.Contexto) ([]dto.StageResponse, error) {
	stages, err := uc.stageRepo.ListByOrganizacao(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, toStageResponse(s))
	}
	return out, nil
}

// Create cria uma etapa; nome duplicado na organização é conflito. Sem
// ordem informada, entra no fim do quadro.
func (uc *KanbanUseCase) Create(ctx context.Context, sess tenant.Contexto, in dto.CreateStageRequest) (*dto.StageResponse, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	stages, err := uc.stageRepo.ListByOrganizacao(ctx, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if strings.EqualFold(s.Nome, in.Nome) {
			return nil, domain.ErrDuplicate
		}
	}

	ordem := len(stages) + 1
	if in.Ordem != nil {
		ordem = *in.Ordem
	}
	now := time.Now()
	stage := &entity.KanbanStage{
		ID:            uuid.New().String(),
		OrganizacaoID: sess.OrganizacaoID,
		Nome:          in.Nome,
		Ordem:         ordem,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stageRepo.Create(ctx, stage); err != nil {
		return nil, err
	}
	resp := toStageResponse(stage)
	return &resp, nil
}

// Update renomeia a etapa ou ajusta a capacidade; o novo nome também não
// pode colidir.
func (uc *KanbanUseCase) Update(ctx context.Context, sess tenant.Contexto, id string, in dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := uc.stageRepo.GetByID(ctx, id, sess.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nome != nil {
		if *in.Nome == "" {
			return nil, domain.ErrInvalidInput
		}
		stages, err := uc.stageRepo.ListByOrganizacao(ctx, sess.OrganizacaoID)
		if err != nil {
			return nil, err
		}
		for _, s := range stages {
			if s.ID != stage.ID && strings.EqualFold(s.Nome, *in.Nome) {
				return nil, domain.ErrDuplicate
			}
		}
		stage.Nome = *in.Nome
	}
	if in.Capacidade != nil {
		stage.Capacidade = in.Capacidade
	}
	stage.UpdatedAt = time.Now()

	if err := uc.stageRepo.Update(ctx, stage); err != nil {
		return nil, err
	}
	resp := toStageResponse(stage)
	return &resp, nil
}

// Delete remove a etapa; eventos vinculados ficam sem etapa.
func (uc *KanbanUseCase) Delete(ctx context.Context, sess tenant.Contexto, id string) error {
	stage, err := uc.stageRepo.GetByID(ctx, id, sess.OrganizacaoID)
	if err != nil {
		return err
	}
	if stage == nil {
		return domain.ErrNotFound
	}
	return uc.stageRepo.Delete(ctx, stage.ID, sess.OrganizacaoID)
}

func toStageResponse(s *entity.KanbanStage) dto.StageResponse {
	return dto.StageResponse{
		ID:         s.ID,
		Nome:       s.Nome,
		Ordem:      s.Ordem,
		Capacidade: s.Capacidade,
	}
}
