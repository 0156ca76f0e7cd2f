package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/batchcrick/tournament-engine/models"
)

var (
	ErrSlotNotFound   = errors.New("bracket slot not found")
	ErrInvalidSlot    = errors.New("invalid bracket slot id")
	ErrFinalSlotFixed = errors.New("final slots are wired to the semi final winners and cannot be set directly")
	ErrSeedTaken      = errors.New("seed is already used in another slot of this round")
	ErrNoGroups       = errors.New("cannot auto map a bracket without groups")
)

// AutoMap builds the default knockout bracket from an ordered group list
// using deterministic cross-seeding.
//
// Two groups [G0,G1]:
//
//	sf1 = G0:1 v G1:2, sf2 = G1:1 v G0:2, f1 = winner:sf1 v winner:sf2
//
// Four groups [G0..G3]:
//
//	qf1 = G0:1 v G2:2, qf2 = G1:1 v G3:2, qf3 = G2:1 v G0:2, qf4 = G3:1 v G1:2
//	sf1 = winner:qf1 v winner:qf2, sf2 = winner:qf3 v winner:qf4, f1 as above
//
// Any other count falls back to sequential pairing Gi:1 v G(i+1 mod n):2 into
// the quarter final slots, leaving semi finals and the final unresolved. The
// fallback does not avoid same-group rematches; that is a known limitation of
// the scheme, kept as is.
func AutoMap(groups []models.Group) ([]models.BracketSlot, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}

	switch len(groups) {
	case 2:
		return []models.BracketSlot{
			slot(models.SlotSF1, models.RoundSemiFinal,
				models.GroupRankSeed(groups[0].ID, 1), models.GroupRankSeed(groups[1].ID, 2)),
			slot(models.SlotSF2, models.RoundSemiFinal,
				models.GroupRankSeed(groups[1].ID, 1), models.GroupRankSeed(groups[0].ID, 2)),
			finalSlot(),
		}, nil
	case 4:
		return []models.BracketSlot{
			slot(models.SlotQF1, models.RoundQuarterFinal,
				models.GroupRankSeed(groups[0].ID, 1), models.GroupRankSeed(groups[2].ID, 2)),
			slot(models.SlotQF2, models.RoundQuarterFinal,
				models.GroupRankSeed(groups[1].ID, 1), models.GroupRankSeed(groups[3].ID, 2)),
			slot(models.SlotQF3, models.RoundQuarterFinal,
				models.GroupRankSeed(groups[2].ID, 1), models.GroupRankSeed(groups[0].ID, 2)),
			slot(models.SlotQF4, models.RoundQuarterFinal,
				models.GroupRankSeed(groups[3].ID, 1), models.GroupRankSeed(groups[1].ID, 2)),
			slot(models.SlotSF1, models.RoundSemiFinal,
				models.MatchWinnerSeed(models.SlotQF1), models.MatchWinnerSeed(models.SlotQF2)),
			slot(models.SlotSF2, models.RoundSemiFinal,
				models.MatchWinnerSeed(models.SlotQF3), models.MatchWinnerSeed(models.SlotQF4)),
			finalSlot(),
		}, nil
	default:
		quarterIDs := []string{models.SlotQF1, models.SlotQF2, models.SlotQF3, models.SlotQF4}
		n := len(groups)
		slots := make([]models.BracketSlot, 0, 7)
		for i := 0; i < n && i < len(quarterIDs); i++ {
			slots = append(slots, slot(quarterIDs[i], models.RoundQuarterFinal,
				models.GroupRankSeed(groups[i].ID, 1), models.GroupRankSeed(groups[(i+1)%n].ID, 2)))
		}
		slots = append(slots,
			slot(models.SlotSF1, models.RoundSemiFinal, models.UnresolvedSeed(), models.UnresolvedSeed()),
			slot(models.SlotSF2, models.RoundSemiFinal, models.UnresolvedSeed(), models.UnresolvedSeed()),
			slot(models.SlotF1, models.RoundFinal, models.UnresolvedSeed(), models.UnresolvedSeed()),
		)
		return slots, nil
	}
}

// EnsureDefault returns a default bracket when none exists yet and the group
// count supports auto mapping. Safe to call repeatedly; an existing bracket
// is returned untouched.
func EnsureDefault(slots []models.BracketSlot, groups []models.Group) []models.BracketSlot {
	if len(slots) > 0 {
		return slots
	}
	if len(groups) != 2 && len(groups) != 4 {
		return slots
	}
	mapped, err := AutoMap(groups)
	if err != nil {
		return slots
	}
	return mapped
}

// SetSlot replaces one side of a slot, enforcing per-round seed uniqueness
// and the fixed wiring of the final. Uniqueness considers both the seed tuple
// itself and, when qualifiers/matches allow it, the squad the seed currently
// resolves to. Setting an unresolved seed is always accepted. Writing a semi
// final slot rewires the final to the two semi final winners; the rewrite is
// idempotent.
//
// The input slice is not mutated; the updated bracket is returned.
func SetSlot(
	slots []models.BracketSlot,
	slotID string,
	side models.SlotSide,
	ref models.SeedRef,
	qualifiers models.ConfirmedQualifiers,
	matches MatchLookup,
) ([]models.BracketSlot, error) {
	slotID = strings.ToLower(slotID)
	round, ok := models.RoundForSlot(slotID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slotID)
	}
	if round == models.RoundFinal {
		return nil, ErrFinalSlotFixed
	}

	next := make([]models.BracketSlot, len(slots))
	copy(next, slots)

	idx := -1
	for i := range next {
		if strings.EqualFold(next[i].ID, slotID) {
			idx = i
			break
		}
	}
	if idx == -1 {
		next = append(next, slot(slotID, round, models.UnresolvedSeed(), models.UnresolvedSeed()))
		idx = len(next) - 1
	}

	if !ref.IsUnresolved() {
		if err := checkSeedUnique(next, round, slotID, side, ref, qualifiers, matches); err != nil {
			return nil, err
		}
	}

	next[idx].SetSeed(side, ref)

	if slotID == models.SlotSF1 || slotID == models.SlotSF2 {
		next = rewireFinal(next)
	}
	return next, nil
}

// checkSeedUnique rejects a seed that already occupies another position in
// the same round, either as the identical reference tuple or by resolving to
// the same squad.
func checkSeedUnique(
	slots []models.BracketSlot,
	round models.BracketRound,
	slotID string,
	side models.SlotSide,
	ref models.SeedRef,
	qualifiers models.ConfirmedQualifiers,
	matches MatchLookup,
) error {
	refSquad, refResolved := Resolve(ref, qualifiers, matches)

	for i := range slots {
		if slots[i].Round != round {
			continue
		}
		for _, s := range []models.SlotSide{models.SideA, models.SideB} {
			if strings.EqualFold(slots[i].ID, slotID) && s == side {
				continue // the position being replaced
			}
			existing := slots[i].Seed(s)
			if existing.IsUnresolved() {
				continue
			}
			if existing.Equal(ref) {
				return fmt.Errorf("%w: %s occupies %s.%s", ErrSeedTaken, ref, slots[i].ID, s)
			}
			if refResolved {
				if squad, ok := Resolve(existing, qualifiers, matches); ok && squad == refSquad {
					return fmt.Errorf("%w: squad %s already seeded at %s.%s", ErrSeedTaken, refSquad, slots[i].ID, s)
				}
			}
		}
	}
	return nil
}

func rewireFinal(slots []models.BracketSlot) []models.BracketSlot {
	for i := range slots {
		if slots[i].ID == models.SlotF1 {
			slots[i].SeedA = models.MatchWinnerSeed(models.SlotSF1)
			slots[i].SeedB = models.MatchWinnerSeed(models.SlotSF2)
			return slots
		}
	}
	return append(slots, finalSlot())
}

func slot(id string, round models.BracketRound, a, b models.SeedRef) models.BracketSlot {
	return models.BracketSlot{ID: id, Round: round, SeedA: a, SeedB: b}
}

func finalSlot() models.BracketSlot {
	return slot(models.SlotF1, models.RoundFinal,
		models.MatchWinnerSeed(models.SlotSF1), models.MatchWinnerSeed(models.SlotSF2))
}
