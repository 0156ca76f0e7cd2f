package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/batchcrick/tournament-engine/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CreateTournamentInput carries the admin-supplied fields for a new
// tournament. Zero values fall back to sensible defaults.
type CreateTournamentInput struct {
	Name         string  `json:"name"`
	Season       *string `json:"season,omitempty"`
	Year         int     `json:"year"`
	DefaultVenue string  `json:"default_venue"`
	OversLimit   int     `json:"overs_limit"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error)
	UploadLogo(ctx context.Context, id string, contentType string, reader io.Reader) (*models.Tournament, error)
	RecordMatchResult(ctx context.Context, matchID string, status models.MatchStatus, winnerID *string) (*models.Match, error)
}

// TournamentDefaults holds operator-configured fallbacks applied when a
// create request leaves the matching fields empty.
type TournamentDefaults struct {
	Venue      string
	OversLimit int
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	hub            *brackets.Hub
	defaults       TournamentDefaults
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	hub *brackets.Hub,
	defaults TournamentDefaults,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		hub:            hub,
		defaults:       defaults,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentName
	}
	if input.Year == 0 {
		input.Year = time.Now().Year()
	}
	if strings.TrimSpace(input.DefaultVenue) == "" {
		input.DefaultVenue = s.defaults.Venue
	}
	if input.OversLimit <= 0 {
		input.OversLimit = s.defaults.OversLimit
	}
	if input.OversLimit <= 0 {
		input.OversLimit = 20
	}

	t := &models.Tournament{
		ID:           uuid.NewString(),
		Name:         name,
		Season:       input.Season,
		Year:         input.Year,
		Status:       models.TournamentUpcoming,
		DefaultVenue: input.DefaultVenue,
		OversLimit:   input.OversLimit,
		Stages: []models.Stage{{
			ID:     uuid.NewString(),
			Name:   "Group Stage",
			Type:   models.StageTypeGroup,
			Order:  0,
			Status: models.StagePending,
		}},
		Groups:              []models.Group{},
		ConfirmedQualifiers: models.ConfirmedQualifiers{},
		Bracket:             []models.BracketSlot{},
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.String("name", t.Name))
	return s.decorate(t), nil
}

// GetByID loads the full aggregate: the tournament document plus its matches,
// fetched concurrently.
func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var (
		t       *models.Tournament
		matches []models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.tournamentRepo.GetByID(gctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		t = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.matchRepo.ListByTournament(gctx, id, nil)
		if err != nil {
			return err
		}
		matches = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.Matches = matches
	return s.decorate(t), nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.decorate(t)
	}
	return tournaments, nil
}

// UpdateStatus moves the tournament forward through its lifecycle. Only
// upcoming -> ongoing and ongoing -> completed are legal; going backwards
// would unfreeze structure that matches already depend on.
func (s *tournamentService) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if !validStatusTransition(t.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, t.Status, status)
	}
	t.Status = status

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tournament status updated",
		slog.String("tournament_id", t.ID), slog.String("status", string(status)))
	return s.decorate(t), nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id string, contentType string, reader io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, errors.New("logo storage is not configured")
	}
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/logo-%d", t.ID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := t.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, t.ID, &result.Key); err != nil {
		return nil, err
	}
	t.LogoKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous logo",
				slog.String("tournament_id", t.ID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}
	return s.decorate(t), nil
}

// RecordMatchResult writes a final status and winner for a match. The bracket
// reads these fields when resolving winner seeds, so the write also notifies
// the tournament's room.
func (s *tournamentService) RecordMatchResult(ctx context.Context, matchID string, status models.MatchStatus, winnerID *string) (*models.Match, error) {
	switch status {
	case models.MatchLive, models.MatchFinished, models.MatchAbandoned:
	default:
		return nil, ErrInvalidMatchStatus
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if winnerID != nil && *winnerID != "" {
		if *winnerID != match.TeamAID && *winnerID != match.TeamBID {
			return nil, ErrWinnerNotInMatch
		}
	}
	if status != models.MatchFinished {
		winnerID = nil
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, status, winnerID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	match.Status = status
	match.WinnerID = winnerID

	if s.hub != nil {
		s.hub.Publish(brackets.Event{
			Type:         brackets.EventMatchResult,
			TournamentID: match.TournamentID,
			Payload:      match,
		})
	}
	s.logger.Info("match result recorded",
		slog.String("match_id", match.ID),
		slog.String("match_no", match.MatchNo),
		slog.String("status", string(status)))
	return match, nil
}

// decorate fills in derived presentation fields.
func (s *tournamentService) decorate(t *models.Tournament) *models.Tournament {
	if t.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
	return t
}

func validStatusTransition(from, to models.TournamentStatus) bool {
	switch from {
	case models.TournamentUpcoming:
		return to == models.TournamentOngoing
	case models.TournamentOngoing:
		return to == models.TournamentCompleted
	default:
		return false
	}
}
