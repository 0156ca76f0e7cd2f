package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/google/uuid"
)

// ResolvedPairing is one bracket slot's two sides after seed resolution.
// IDs are empty when the seed could not be resolved yet; names then carry
// placeholder text so the fixture is still presentable.
type ResolvedPairing struct {
	TeamAID   string
	TeamAName string
	TeamBID   string
	TeamBName string
}

// MatchMaterializer freezes a bracket slot into a schedulable match record.
// Creation is guarded by a matchNo existence check, so re-activating a stage
// never duplicates its matches.
type MatchMaterializer struct {
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewMatchMaterializer(matchRepo repositories.MatchRepository, logger *slog.Logger) *MatchMaterializer {
	return &MatchMaterializer{matchRepo: matchRepo, logger: logger}
}

// Materialize creates the match for one slot unless a match with the same
// match number already exists for the tournament. The created match (or nil
// when skipped) is returned.
func (m *MatchMaterializer) Materialize(
	ctx context.Context,
	t *models.Tournament,
	slot models.BracketSlot,
	pairing ResolvedPairing,
	schedule models.MatchSchedule,
) (*models.Match, error) {
	matchNo := strings.ToUpper(slot.ID)

	exists, err := m.matchRepo.ExistsByMatchNo(ctx, t.ID, matchNo)
	if err != nil {
		return nil, err
	}
	if exists {
		m.logger.Info("match already materialized, skipping",
			slog.String("tournament_id", t.ID), slog.String("match_no", matchNo))
		return nil, nil
	}

	match := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: t.ID,
		Stage:        models.StageTypeKnockout,
		Round:        slot.Round,
		MatchNo:      matchNo,
		TeamAID:      pairing.TeamAID,
		TeamBID:      pairing.TeamBID,
		TeamAName:    pairing.TeamAName,
		TeamBName:    pairing.TeamBName,
		Venue:        t.DefaultVenue,
		Date:         schedule.Date,
		Time:         schedule.Time,
		OversLimit:   t.OversLimit,
		Status:       models.MatchUpcoming,
	}

	if err := m.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, err
	}
	m.logger.Info("match materialized",
		slog.String("tournament_id", t.ID),
		slog.String("match_no", matchNo),
		slog.String("team_a", match.TeamAName),
		slog.String("team_b", match.TeamBName))
	return match, nil
}

// resolvePairing resolves both seeds of a slot against the confirmed
// qualifiers and loaded matches, falling back to descriptive placeholder
// names for anything still undecided.
func resolvePairing(
	t *models.Tournament,
	slot models.BracketSlot,
	matches brackets.MatchLookup,
	squadNames map[string]string,
) ResolvedPairing {
	resolveSide := func(ref models.SeedRef) (string, string) {
		if squadID, ok := brackets.Resolve(ref, t.ConfirmedQualifiers, matches); ok {
			if name, found := squadNames[squadID]; found {
				return squadID, name
			}
			return squadID, squadID
		}
		return "", describeSeed(t, ref)
	}

	p := ResolvedPairing{}
	p.TeamAID, p.TeamAName = resolveSide(slot.SeedA)
	p.TeamBID, p.TeamBName = resolveSide(slot.SeedB)
	return p
}

// describeSeed renders placeholder text for an unresolved seed, e.g.
// "1st in Group A" or "Winner of SF2".
func describeSeed(t *models.Tournament, ref models.SeedRef) string {
	switch ref.Kind {
	case models.SeedGroupRank:
		groupName := ref.GroupID
		if g := t.GroupByID(ref.GroupID); g != nil {
			groupName = g.Name
		}
		return fmt.Sprintf("%s in %s", ordinal(ref.Rank), groupName)
	case models.SeedMatchWinner:
		return "Winner of " + strings.ToUpper(ref.SlotID)
	case models.SeedLiteral:
		if ref.SquadID != "" {
			return ref.SquadID
		}
		return "TBD"
	default:
		return "TBD"
	}
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
