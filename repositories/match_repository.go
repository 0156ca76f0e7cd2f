package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/batchcrick/tournament-engine/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository persists match records. The engine creates matches at stage
// activation and reads status/winner written by the live-scoring subsystem.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string, stage *models.StageType) ([]models.Match, error)
	ExistsByMatchNo(ctx context.Context, tournamentID, matchNo string) (bool, error)
	UpdateResult(ctx context.Context, id string, status models.MatchStatus, winnerID *string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, stage, round, match_no, team_a_id, team_b_id,
	team_a_name, team_b_name, venue, date, time, overs_limit, status,
	winner_id, created_at
	`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches
			(id, tournament_id, stage, round, match_no, team_a_id, team_b_id,
			 team_a_name, team_b_name, venue, date, time, overs_limit, status, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at`

	err := exec.QueryRowContext(ctx, query,
		m.ID, m.TournamentID, m.Stage, m.Round, m.MatchNo,
		m.TeamAID, m.TeamBID, m.TeamAName, m.TeamBName,
		m.Venue, m.Date, m.Time, m.OversLimit, m.Status, m.WinnerID,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match %s (%s): %w", m.ID, m.MatchNo, err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT` + matchColumns + `FROM matches WHERE id = $1`
	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.Stage, &m.Round, &m.MatchNo,
		&m.TeamAID, &m.TeamBID, &m.TeamAName, &m.TeamBName,
		&m.Venue, &m.Date, &m.Time, &m.OversLimit, &m.Status,
		&m.WinnerID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID string, stage *models.StageType) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + `FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if stage != nil {
		queryBuilder.WriteString(` AND stage = $` + strconv.Itoa(len(args)+1))
		args = append(args, *stage)
	}
	queryBuilder.WriteString(` ORDER BY created_at, match_no`)

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Stage, &m.Round, &m.MatchNo,
			&m.TeamAID, &m.TeamBID, &m.TeamAName, &m.TeamBName,
			&m.Venue, &m.Date, &m.Time, &m.OversLimit, &m.Status,
			&m.WinnerID, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ExistsByMatchNo(ctx context.Context, tournamentID, matchNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE tournament_id = $1 AND upper(match_no) = upper($2))`,
		tournamentID, matchNo,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match %s existence: %w", matchNo, err)
	}
	return exists, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id string, status models.MatchStatus, winnerID *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $2, winner_id = $3 WHERE id = $1`,
		id, status, winnerID)
	if err != nil {
		return fmt.Errorf("failed to update result for match %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}
