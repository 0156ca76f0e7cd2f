package models

type BracketRound string

const (
	RoundQuarterFinal BracketRound = "quarter_final"
	RoundSemiFinal    BracketRound = "semi_final"
	RoundFinal        BracketRound = "final"
)

// Slot ids double as lowercase match numbers: "qf1".."qf4", "sf1", "sf2", "f1".
const (
	SlotQF1 = "qf1"
	SlotQF2 = "qf2"
	SlotQF3 = "qf3"
	SlotQF4 = "qf4"
	SlotSF1 = "sf1"
	SlotSF2 = "sf2"
	SlotF1  = "f1"
)

type SlotSide string

const (
	SideA SlotSide = "a"
	SideB SlotSide = "b"
)

// BracketSlot is a knockout fixture placeholder holding two seed references.
type BracketSlot struct {
	ID    string       `json:"id"`
	Round BracketRound `json:"round"`
	SeedA SeedRef      `json:"a"`
	SeedB SeedRef      `json:"b"`
}

func (s *BracketSlot) Seed(side SlotSide) SeedRef {
	if side == SideA {
		return s.SeedA
	}
	return s.SeedB
}

func (s *BracketSlot) SetSeed(side SlotSide, ref SeedRef) {
	if side == SideA {
		s.SeedA = ref
	} else {
		s.SeedB = ref
	}
}

// RoundForSlot derives the round from a canonical slot id.
func RoundForSlot(slotID string) (BracketRound, bool) {
	switch slotID {
	case SlotQF1, SlotQF2, SlotQF3, SlotQF4:
		return RoundQuarterFinal, true
	case SlotSF1, SlotSF2:
		return RoundSemiFinal, true
	case SlotF1:
		return RoundFinal, true
	}
	return "", false
}
