package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository implementation
func NewRunRepository(db *sql.DB) repository.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Insert(ctx context.Context, run models.Run) error {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("inserting run: id=%s, user=%s, score=%.1f", run.ID, run.User, run.ScorePercent)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO runs (id, username, language, set_name, mode, total, correct, score_percent, elapsed_seconds, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.User, run.Language, run.Set, run.Mode, run.Total, run.Correct, run.ScorePercent, run.ElapsedSeconds, run.StartedAt, run.FinishedAt)
	if err != nil {
		log.Error("failed to insert run: %v", err)
	}
	return err
}

func filteredRuns(base squirrel.SelectBuilder, filter models.RunFilter) squirrel.SelectBuilder {
	if filter.User != "" {
		base = base.Where(squirrel.Eq{"username": filter.User})
	}
	if filter.Language != "" {
		base = base.Where(squirrel.Eq{"language": filter.Language})
	}
	if filter.Set != "" {
		base = base.Where(squirrel.Eq{"set_name": filter.Set})
	}
	if filter.Mode != "" {
		base = base.Where(squirrel.Eq{"mode": filter.Mode})
	}
	return base
}

func (r *runRepository) List(ctx context.Context, filter models.RunFilter) ([]models.Run, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing runs: user=%s, language=%s, set=%s, mode=%s",
		filter.User, filter.Language, filter.Set, filter.Mode)

	query := filteredRuns(sqlBuilder.Select(
		"id", "username", "language", "set_name", "mode", "total", "correct",
		"score_percent", "elapsed_seconds", "started_at", "finished_at", "created_at",
	).From("runs"), filter)

	query = query.OrderBy("finished_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build runs query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.User, &run.Language, &run.Set, &run.Mode, &run.Total, &run.Correct,
			&run.ScorePercent, &run.ElapsedSeconds, &run.StartedAt, &run.FinishedAt, &run.CreatedAt); err != nil {
			log.Error("failed to scan run row: %v", err)
			return nil, err
		}
		runs = append(runs, run)
	}
	log.Debug("found %d runs", len(runs))
	return runs, rows.Err()
}

func (r *runRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")

	query := filteredRuns(sqlBuilder.Select("COUNT(*)").From("runs"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count runs: %v", err)
		return 0, err
	}
	return count, nil
}
