package repository

import (
	"context"

	"github.com/jnovotny/examtrainer/internal/models"
)

// RunRepository handles run-history data access
type RunRepository interface {
	Insert(ctx context.Context, run models.Run) error
	List(ctx context.Context, filter models.RunFilter) ([]models.Run, error)
	Count(ctx context.Context, filter models.RunFilter) (int, error)
}
