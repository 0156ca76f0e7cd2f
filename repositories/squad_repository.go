package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/lib/pq"
)

var ErrSquadNotFound = errors.New("squad not found")

type SquadRepository interface {
	GetByID(ctx context.Context, id string) (*models.Squad, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Squad, error)
	List(ctx context.Context) ([]models.Squad, error)
}

type postgresSquadRepository struct {
	db *sql.DB
}

func NewPostgresSquadRepository(db *sql.DB) SquadRepository {
	return &postgresSquadRepository{db: db}
}

func (r *postgresSquadRepository) GetByID(ctx context.Context, id string) (*models.Squad, error) {
	s := &models.Squad{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, batch, created_at FROM squads WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Batch, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSquadNotFound
		}
		return nil, fmt.Errorf("failed to scan squad %s: %w", id, err)
	}
	return s, nil
}

func (r *postgresSquadRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Squad, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, batch, created_at FROM squads WHERE id = ANY($1) ORDER BY name`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list squads: %w", err)
	}
	defer rows.Close()
	return collectSquads(rows)
}

func (r *postgresSquadRepository) List(ctx context.Context) ([]models.Squad, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, batch, created_at FROM squads ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list squads: %w", err)
	}
	defer rows.Close()
	return collectSquads(rows)
}

func collectSquads(rows *sql.Rows) ([]models.Squad, error) {
	var squads []models.Squad
	for rows.Next() {
		var s models.Squad
		if err := rows.Scan(&s.ID, &s.Name, &s.Batch, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan squad row: %w", err)
		}
		squads = append(squads, s)
	}
	return squads, rows.Err()
}
