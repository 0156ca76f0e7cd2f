package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
)

// ResolvedSlot is a bracket slot with both sides resolved for display.
type ResolvedSlot struct {
	ID        string              `json:"id"`
	Round     models.BracketRound `json:"round"`
	SeedA     models.SeedRef      `json:"seedA"`
	SeedB     models.SeedRef      `json:"seedB"`
	TeamAID   string              `json:"teamAId,omitempty"`
	TeamAName string              `json:"teamAName"`
	TeamBID   string              `json:"teamBId,omitempty"`
	TeamBName string              `json:"teamBName"`
}

type BracketService interface {
	AutoMap(ctx context.Context, tournamentID string) (*models.Tournament, error)
	EnsureDefault(ctx context.Context, tournamentID string) (*models.Tournament, error)
	SetSlot(ctx context.Context, tournamentID, slotID string, side models.SlotSide, ref models.SeedRef) (*models.Tournament, error)
	ResolvedView(ctx context.Context, tournamentID string) ([]ResolvedSlot, error)
}

type bracketService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	squadRepo      repositories.SquadRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	squadRepo repositories.SquadRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		squadRepo:      squadRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *bracketService) AutoMap(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	slots, err := brackets.AutoMap(t.Groups)
	if err != nil {
		return nil, mapBracketError(err)
	}
	t.Bracket = slots

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.publishBracket(t)
	s.logger.Info("bracket auto-mapped",
		slog.String("tournament_id", t.ID), slog.Int("slots", len(slots)))
	return t, nil
}

func (s *bracketService) EnsureDefault(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	slots := brackets.EnsureDefault(t.Bracket, t.Groups)
	if len(slots) == len(t.Bracket) {
		return t, nil
	}
	t.Bracket = slots

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.publishBracket(t)
	return t, nil
}

func (s *bracketService) SetSlot(ctx context.Context, tournamentID, slotID string, side models.SlotSide, ref models.SeedRef) (*models.Tournament, error) {
	if side != models.SideA && side != models.SideB {
		return nil, ErrInvalidSlotSide
	}

	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := s.knockoutMatches(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	slots, err := brackets.SetSlot(t.Bracket, slotID, side, ref, t.ConfirmedQualifiers, matches)
	if err != nil {
		return nil, mapBracketError(err)
	}
	t.Bracket = slots

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.publishBracket(t)
	s.logger.Info("bracket slot updated",
		slog.String("tournament_id", t.ID),
		slog.String("slot_id", slotID),
		slog.String("side", string(side)),
		slog.String("seed", ref.String()))
	return t, nil
}

func (s *bracketService) ResolvedView(ctx context.Context, tournamentID string) ([]ResolvedSlot, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := s.knockoutMatches(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	names, err := s.squadNames(ctx, t)
	if err != nil {
		return nil, err
	}

	view := make([]ResolvedSlot, 0, len(t.Bracket))
	for _, slot := range t.Bracket {
		pairing := resolvePairing(t, slot, matches, names)
		view = append(view, ResolvedSlot{
			ID:        slot.ID,
			Round:     slot.Round,
			SeedA:     slot.SeedA,
			SeedB:     slot.SeedB,
			TeamAID:   pairing.TeamAID,
			TeamAName: pairing.TeamAName,
			TeamBID:   pairing.TeamBID,
			TeamBName: pairing.TeamBName,
		})
	}
	return view, nil
}

func (s *bracketService) load(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *bracketService) knockoutMatches(ctx context.Context, tournamentID string) (brackets.MatchSlice, error) {
	stage := models.StageTypeKnockout
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, &stage)
	if err != nil {
		return nil, err
	}
	return brackets.MatchSlice(matches), nil
}

// squadNames maps every squad id referenced by the tournament's groups to
// its display name.
func (s *bracketService) squadNames(ctx context.Context, t *models.Tournament) (map[string]string, error) {
	ids := make([]string, 0)
	for _, g := range t.Groups {
		ids = append(ids, g.SquadIDs...)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	squads, err := s.squadRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(squads))
	for _, sq := range squads {
		names[sq.ID] = sq.Name
	}
	return names, nil
}

func (s *bracketService) publishBracket(t *models.Tournament) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(brackets.Event{
		Type:         brackets.EventBracketUpdated,
		TournamentID: t.ID,
		Payload:      t.Bracket,
	})
}

func mapBracketError(err error) error {
	switch {
	case errors.Is(err, brackets.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, brackets.ErrInvalidSlot):
		return ErrInvalidSlot
	case errors.Is(err, brackets.ErrFinalSlotFixed):
		return ErrFinalSlotFixed
	case errors.Is(err, brackets.ErrSeedTaken):
		return ErrSeedTaken
	case errors.Is(err, brackets.ErrNoGroups):
		return ErrNoGroups
	default:
		return err
	}
}
