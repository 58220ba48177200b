package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/program-catalog/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Programs interface {
	List(ctx context.Context) ([]models.Program, error)
	GetByID(ctx context.Context, id string) (models.Program, error)
	Create(ctx context.Context, p models.Program) (models.Program, error)
	// Update applies a normalized patch in one write and stamps updated_at.
	Update(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error)
	Delete(ctx context.Context, id string) error
}

type Users interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error)
}

// Repositories bundles one backend's collections.
type Repositories struct {
	Programs  Programs
	Users     Users
	AuditLogs AuditLogs
	Ping      func(ctx context.Context) error
}
