package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/google/uuid"
)

// StageService drives the tournament lifecycle: ordering stages, activating
// them (which materializes knockout fixtures), and gating completion on
// settled matches.
type StageService interface {
	AddStage(ctx context.Context, tournamentID, name string, stageType models.StageType) (*models.Tournament, error)
	RemoveStage(ctx context.Context, tournamentID, stageID string) (*models.Tournament, error)
	MoveStage(ctx context.Context, tournamentID, stageID string, dir models.MoveDirection) (*models.Tournament, error)
	ActivateStage(ctx context.Context, tournamentID, stageID string, schedules []models.MatchSchedule) (*models.Tournament, error)
	CompleteStage(ctx context.Context, tournamentID, stageID string) (*models.Tournament, error)
	StageMatchStats(ctx context.Context, tournamentID, stageID string) (*models.MatchStats, error)
}

type stageService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	squadRepo      repositories.SquadRepository
	materializer   *MatchMaterializer
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewStageService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	squadRepo repositories.SquadRepository,
	materializer *MatchMaterializer,
	hub *brackets.Hub,
	logger *slog.Logger,
) StageService {
	return &stageService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		squadRepo:      squadRepo,
		materializer:   materializer,
		hub:            hub,
		logger:         logger,
	}
}

func (s *stageService) AddStage(ctx context.Context, tournamentID, name string, stageType models.StageType) (*models.Tournament, error) {
	if stageType != models.StageTypeGroup && stageType != models.StageTypeKnockout {
		return nil, ErrInvalidStageType
	}
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "New Stage"
	}
	t.Stages = append(t.Stages, models.Stage{
		ID:     uuid.NewString(),
		Name:   name,
		Type:   stageType,
		Order:  len(t.Stages),
		Status: models.StagePending,
	})

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *stageService) RemoveStage(ctx context.Context, tournamentID, stageID string) (*models.Tournament, error) {
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(t.Stages) <= 1 {
		return nil, ErrLastStage
	}

	idx := stageIndex(t.Stages, stageID)
	if idx == -1 {
		return nil, ErrStageNotFound
	}
	t.Stages = append(t.Stages[:idx], t.Stages[idx+1:]...)
	normalizeStageOrder(t.Stages)

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MoveStage swaps a stage with its neighbor. Moving past either end is a
// no-op, not an error.
func (s *stageService) MoveStage(ctx context.Context, tournamentID, stageID string, dir models.MoveDirection) (*models.Tournament, error) {
	if dir != models.MoveUp && dir != models.MoveDown {
		return nil, ErrInvalidMoveDirection
	}
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(t.Stages, func(i, j int) bool { return t.Stages[i].Order < t.Stages[j].Order })
	idx := stageIndex(t.Stages, stageID)
	if idx == -1 {
		return nil, ErrStageNotFound
	}

	target := idx - 1
	if dir == models.MoveDown {
		target = idx + 1
	}
	if target < 0 || target >= len(t.Stages) {
		return t, nil
	}
	t.Stages[idx], t.Stages[target] = t.Stages[target], t.Stages[idx]
	normalizeStageOrder(t.Stages)

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ActivateStage marks the stage active and, for knockout stages, materializes
// its slots into matches. Activation may be repeated to pick up seeds that
// resolved since the first call; existing matches are never recreated.
func (s *stageService) ActivateStage(ctx context.Context, tournamentID, stageID string, schedules []models.MatchSchedule) (*models.Tournament, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	stage := t.StageByID(stageID)
	if stage == nil {
		return nil, ErrStageNotFound
	}

	if stage.Type == models.StageTypeKnockout {
		if err := s.materializeStage(ctx, t, stage, schedules); err != nil {
			return nil, err
		}
	}

	if stage.StartedAt == nil {
		now := time.Now().UTC()
		stage.StartedAt = &now
	}
	stage.Status = models.StageActive

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.publish(brackets.EventStageActivated, t, stage)
	s.logger.Info("stage activated",
		slog.String("tournament_id", t.ID),
		slog.String("stage_id", stage.ID),
		slog.String("stage_name", stage.Name))
	return t, nil
}

// CompleteStage transitions an active stage to completed, refusing while any
// of the stage's matches is still upcoming or live. A stage with no matches
// completes unconditionally.
func (s *stageService) CompleteStage(ctx context.Context, tournamentID, stageID string) (*models.Tournament, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	stage := t.StageByID(stageID)
	if stage == nil {
		return nil, ErrStageNotFound
	}

	stats, err := s.matchStats(ctx, t, stage)
	if err != nil {
		return nil, err
	}
	if stats.Total > 0 && stats.Completed < stats.Total {
		return nil, ErrStageMatchesUnfinished
	}

	now := time.Now().UTC()
	stage.CompletedAt = &now
	stage.Status = models.StageCompleted

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.publish(brackets.EventStageCompleted, t, stage)
	s.logger.Info("stage completed",
		slog.String("tournament_id", t.ID),
		slog.String("stage_id", stage.ID),
		slog.Int("matches", stats.Total))
	return t, nil
}

func (s *stageService) StageMatchStats(ctx context.Context, tournamentID, stageID string) (*models.MatchStats, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	stage := t.StageByID(stageID)
	if stage == nil {
		return nil, ErrStageNotFound
	}
	return s.matchStats(ctx, t, stage)
}

// materializeStage resolves every slot that belongs to the stage and creates
// the corresponding matches. Slots missing from the bracket are materialized
// with both sides unresolved, same as an empty slot set directly.
func (s *stageService) materializeStage(ctx context.Context, t *models.Tournament, stage *models.Stage, schedules []models.MatchSchedule) error {
	slotIDs := slotIDsForStage(stage.Name)

	knockout := models.StageTypeKnockout
	matches, err := s.matchRepo.ListByTournament(ctx, t.ID, &knockout)
	if err != nil {
		return err
	}
	lookup := brackets.MatchSlice(matches)

	names, err := s.squadNamesFor(ctx, t)
	if err != nil {
		return err
	}

	for i, slotID := range slotIDs {
		slot := bracketSlot(t.Bracket, slotID)
		pairing := resolvePairing(t, slot, lookup, names)

		var schedule models.MatchSchedule
		if i < len(schedules) {
			schedule = schedules[i]
		}
		if _, err := s.materializer.Materialize(ctx, t, slot, pairing, schedule); err != nil {
			return err
		}
	}
	return nil
}

func (s *stageService) matchStats(ctx context.Context, t *models.Tournament, stage *models.Stage) (*models.MatchStats, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, t.ID, &stage.Type)
	if err != nil {
		return nil, err
	}

	stats := &models.MatchStats{}
	if stage.Type == models.StageTypeKnockout {
		// Knockout stages share the stage type, so narrow by round.
		rounds := make(map[models.BracketRound]bool)
		for _, slotID := range slotIDsForStage(stage.Name) {
			if round, ok := models.RoundForSlot(slotID); ok {
				rounds[round] = true
			}
		}
		filtered := matches[:0:0]
		for _, m := range matches {
			if rounds[m.Round] {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	for _, m := range matches {
		stats.Total++
		if m.Status.Settled() {
			stats.Completed++
		}
	}
	return stats, nil
}

func (s *stageService) squadNamesFor(ctx context.Context, t *models.Tournament) (map[string]string, error) {
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

func (s *stageService) load(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *stageService) loadUnlocked(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Locked() {
		return nil, ErrTournamentLocked
	}
	return t, nil
}

func (s *stageService) publish(eventType string, t *models.Tournament, stage *models.Stage) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(brackets.Event{
		Type:         eventType,
		TournamentID: t.ID,
		Payload:      stage,
	})
}

// slotIDsForStage maps a stage name to the bracket slots it covers. The name
// match is deliberately loose ("Quarter Finals", "Semi Final", "Grand Final"
// all work); anything that is neither a quarter nor a semi is the final.
func slotIDsForStage(stageName string) []string {
	name := strings.ToLower(stageName)
	switch {
	case strings.Contains(name, "quarter"):
		return []string{models.SlotQF1, models.SlotQF2, models.SlotQF3, models.SlotQF4}
	case strings.Contains(name, "semi"):
		return []string{models.SlotSF1, models.SlotSF2}
	default:
		return []string{models.SlotF1}
	}
}

// bracketSlot finds a slot by id, synthesizing an unresolved slot when the
// bracket has no entry for it yet.
func bracketSlot(slots []models.BracketSlot, slotID string) models.BracketSlot {
	for i := range slots {
		if strings.EqualFold(slots[i].ID, slotID) {
			return slots[i]
		}
	}
	round, _ := models.RoundForSlot(slotID)
	return models.BracketSlot{
		ID:    slotID,
		Round: round,
		SeedA: models.UnresolvedSeed(),
		SeedB: models.UnresolvedSeed(),
	}
}

func stageIndex(stages []models.Stage, stageID string) int {
	for i := range stages {
		if stages[i].ID == stageID {
			return i
		}
	}
	return -1
}

func normalizeStageOrder(stages []models.Stage) {
	for i := range stages {
		stages[i].Order = i
	}
}
