package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SeedKind discriminates the forms a bracket slot seed can take.
type SeedKind string

const (
	SeedLiteral     SeedKind = "literal"      // a concrete squad id
	SeedGroupRank   SeedKind = "group_rank"   // "<groupID>:<rank>" on the wire
	SeedMatchWinner SeedKind = "match_winner" // "winner:<slotID>" on the wire
	SeedUnresolved  SeedKind = "unresolved"   // "TBD" or empty on the wire
)

// SeedRef is the parsed form of a seed label. The string encodings
// ("group-a:1", "winner:sf1", "TBD", raw squad id) exist only at the
// persistence/JSON boundary; everything past UnmarshalJSON works with
// the tagged value.
type SeedRef struct {
	Kind    SeedKind
	SquadID string // SeedLiteral
	GroupID string // SeedGroupRank
	Rank    int    // SeedGroupRank, 1-based
	SlotID  string // SeedMatchWinner
}

func LiteralSeed(squadID string) SeedRef {
	return SeedRef{Kind: SeedLiteral, SquadID: squadID}
}

func GroupRankSeed(groupID string, rank int) SeedRef {
	return SeedRef{Kind: SeedGroupRank, GroupID: groupID, Rank: rank}
}

func MatchWinnerSeed(slotID string) SeedRef {
	return SeedRef{Kind: SeedMatchWinner, SlotID: strings.ToLower(slotID)}
}

func UnresolvedSeed() SeedRef {
	return SeedRef{Kind: SeedUnresolved}
}

func (s SeedRef) IsUnresolved() bool {
	return s.Kind == SeedUnresolved
}

// Equal reports whether two refs denote the same seed tuple.
func (s SeedRef) Equal(other SeedRef) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case SeedLiteral:
		return s.SquadID == other.SquadID
	case SeedGroupRank:
		return s.GroupID == other.GroupID && s.Rank == other.Rank
	case SeedMatchWinner:
		return strings.EqualFold(s.SlotID, other.SlotID)
	default:
		return true
	}
}

// ParseSeedRef converts a stored seed label into a SeedRef. Unknown shapes
// fall through to a literal squad id, matching the historical encoding where
// anything that is not "TBD", "winner:x" or "group:rank" is a raw id.
func ParseSeedRef(label string) (SeedRef, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "TBD") {
		return UnresolvedSeed(), nil
	}
	if rest, ok := strings.CutPrefix(label, "winner:"); ok {
		if rest == "" {
			return SeedRef{}, fmt.Errorf("seed %q: winner reference missing slot id", label)
		}
		return MatchWinnerSeed(rest), nil
	}
	if groupID, rankStr, ok := strings.Cut(label, ":"); ok {
		rank, err := strconv.Atoi(rankStr)
		if err != nil || rank < 1 {
			return SeedRef{}, fmt.Errorf("seed %q: invalid rank %q", label, rankStr)
		}
		if groupID == "" {
			return SeedRef{}, fmt.Errorf("seed %q: missing group id", label)
		}
		return GroupRankSeed(groupID, rank), nil
	}
	return LiteralSeed(label), nil
}

// String renders the wire encoding.
func (s SeedRef) String() string {
	switch s.Kind {
	case SeedLiteral:
		return s.SquadID
	case SeedGroupRank:
		return fmt.Sprintf("%s:%d", s.GroupID, s.Rank)
	case SeedMatchWinner:
		return "winner:" + s.SlotID
	default:
		return "TBD"
	}
}

func (s SeedRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SeedRef) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	ref, err := ParseSeedRef(label)
	if err != nil {
		return err
	}
	*s = ref
	return nil
}
