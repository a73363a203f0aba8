package repository

import (
	"context"
	"time"

	"github.com/mare-erp/mare-api/internal/domain/entity"
)

// UsuarioRepository define o porto de persistência para Usuario (DIP).
// A implementação vive em infrastructure.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	UpdateUltimoLogin(ctx context.Context, id string, em time.Time) error
}
