package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/batchcrick/tournament-engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentRepository persists the tournament document. Stages, groups,
// confirmed qualifiers and the bracket are stored as JSONB columns, so a
// tournament row round-trips the whole aggregate the engine operates on.
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	id, name, season, year, status, default_venue, overs_limit, logo_key,
	stages, groups, confirmed_qualifiers, bracket, created_at, updated_at
	`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	stages, groups, qualifiers, bracket, err := marshalDocFields(t)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tournaments
			(id, name, season, year, status, default_venue, overs_limit, logo_key,
			 stages, groups, confirmed_qualifiers, bracket)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Season, t.Year, t.Status, t.DefaultVenue, t.OversLimit, t.LogoKey,
		stages, groups, qualifiers, bracket,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament %s: %w", t.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + `FROM tournaments WHERE id = $1`
	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + `FROM tournaments`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// Update writes the whole document back. Every engine operation is a pure
// function of current state plus a new value, so a full rewrite is safe to
// retry under optimistic serialization by the caller.
func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	stages, groups, qualifiers, bracket, err := marshalDocFields(t)
	if err != nil {
		return err
	}

	query := `
		UPDATE tournaments
		SET name = $2, season = $3, year = $4, status = $5, default_venue = $6,
		    overs_limit = $7, stages = $8, groups = $9, confirmed_qualifiers = $10,
		    bracket = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Season, t.Year, t.Status, t.DefaultVenue,
		t.OversLimit, stages, groups, qualifiers, bracket,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET logo_key = $2, updated_at = now() WHERE id = $1`, id, logoKey)
	if err != nil {
		return fmt.Errorf("failed to update logo for tournament %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	var stages, groups, qualifiers, bracket []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.Season, &t.Year, &t.Status, &t.DefaultVenue,
		&t.OversLimit, &t.LogoKey, &stages, &groups, &qualifiers, &bracket,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stages, &t.Stages); err != nil {
		return nil, fmt.Errorf("corrupt stages document for tournament %s: %w", t.ID, err)
	}
	if err := json.Unmarshal(groups, &t.Groups); err != nil {
		return nil, fmt.Errorf("corrupt groups document for tournament %s: %w", t.ID, err)
	}
	if err := json.Unmarshal(qualifiers, &t.ConfirmedQualifiers); err != nil {
		return nil, fmt.Errorf("corrupt qualifiers document for tournament %s: %w", t.ID, err)
	}
	if err := json.Unmarshal(bracket, &t.Bracket); err != nil {
		return nil, fmt.Errorf("corrupt bracket document for tournament %s: %w", t.ID, err)
	}
	return t, nil
}

func marshalDocFields(t *models.Tournament) (stages, groups, qualifiers, bracket []byte, err error) {
	if t.Stages == nil {
		t.Stages = []models.Stage{}
	}
	if t.Groups == nil {
		t.Groups = []models.Group{}
	}
	if t.ConfirmedQualifiers == nil {
		t.ConfirmedQualifiers = models.ConfirmedQualifiers{}
	}
	if t.Bracket == nil {
		t.Bracket = []models.BracketSlot{}
	}

	if stages, err = json.Marshal(t.Stages); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal stages: %w", err)
	}
	if groups, err = json.Marshal(t.Groups); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal groups: %w", err)
	}
	if qualifiers, err = json.Marshal(t.ConfirmedQualifiers); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal confirmed qualifiers: %w", err)
	}
	if bracket, err = json.Marshal(t.Bracket); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal bracket: %w", err)
	}
	return stages, groups, qualifiers, bracket, nil
}
