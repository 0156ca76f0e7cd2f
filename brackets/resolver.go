package brackets

import (
	"strings"

	"github.com/batchcrick/tournament-engine/models"
)

// MatchLookup supplies the only external fact the resolver consumes: the
// status and winner of an already-materialized knockout match, addressed by
// its match number.
type MatchLookup interface {
	MatchByNo(matchNo string) (*models.Match, bool)
}

// MatchSlice adapts a loaded match list to MatchLookup.
type MatchSlice []models.Match

func (m MatchSlice) MatchByNo(matchNo string) (*models.Match, bool) {
	for i := range m {
		if strings.EqualFold(m[i].MatchNo, matchNo) {
			return &m[i], true
		}
	}
	return nil, false
}

// Resolve maps a seed reference to a concrete squad id. It is pure: the
// result is recomputed from the supplied qualifier registry and match state
// on every call, so it always reflects the latest confirmations and results.
// The second return is false when the reference cannot be resolved yet.
func Resolve(ref models.SeedRef, qualifiers models.ConfirmedQualifiers, matches MatchLookup) (string, bool) {
	switch ref.Kind {
	case models.SeedLiteral:
		return ref.SquadID, ref.SquadID != ""
	case models.SeedGroupRank:
		confirmed := qualifiers[ref.GroupID]
		if ref.Rank < 1 || ref.Rank > len(confirmed) {
			return "", false
		}
		return confirmed[ref.Rank-1], true
	case models.SeedMatchWinner:
		if matches == nil {
			return "", false
		}
		match, ok := matches.MatchByNo(ref.SlotID)
		if !ok || match.Status != models.MatchFinished || match.WinnerID == nil || *match.WinnerID == "" {
			return "", false
		}
		return *match.WinnerID, true
	default:
		return "", false
	}
}
