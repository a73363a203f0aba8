package repository

import (
	"context"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// AuditoriaRepository porto da trilha de auditoria (append-only).
type AuditoriaRepository interface {
	Create(ctx context.Context, log *entity.LogAuditoria) error
}
