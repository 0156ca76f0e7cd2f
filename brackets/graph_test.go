package brackets

import (
	"testing"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoGroups() []models.Group {
	return []models.Group{
		{ID: "ga", Name: "Group A", QualifyCount: 2},
		{ID: "gb", Name: "Group B", QualifyCount: 2},
	}
}

func fourGroups() []models.Group {
	return []models.Group{
		{ID: "ga", Name: "Group A", QualifyCount: 2},
		{ID: "gb", Name: "Group B", QualifyCount: 2},
		{ID: "gc", Name: "Group C", QualifyCount: 2},
		{ID: "gd", Name: "Group D", QualifyCount: 2},
	}
}

func seedsOf(t *testing.T, slots []models.BracketSlot, slotID string) (string, string) {
	t.Helper()
	for _, s := range slots {
		if s.ID == slotID {
			return s.SeedA.String(), s.SeedB.String()
		}
	}
	t.Fatalf("slot %s not found", slotID)
	return "", ""
}

func TestAutoMapTwoGroups(t *testing.T) {
	slots, err := AutoMap(twoGroups())
	require.NoError(t, err)
	require.Len(t, slots, 3)

	a, b := seedsOf(t, slots, models.SlotSF1)
	assert.Equal(t, "ga:1", a)
	assert.Equal(t, "gb:2", b)

	a, b = seedsOf(t, slots, models.SlotSF2)
	assert.Equal(t, "gb:1", a)
	assert.Equal(t, "ga:2", b)

	a, b = seedsOf(t, slots, models.SlotF1)
	assert.Equal(t, "winner:sf1", a)
	assert.Equal(t, "winner:sf2", b)
}

func TestAutoMapFourGroups(t *testing.T) {
	slots, err := AutoMap(fourGroups())
	require.NoError(t, err)
	require.Len(t, slots, 7)

	expected := map[string][2]string{
		models.SlotQF1: {"ga:1", "gc:2"},
		models.SlotQF2: {"gb:1", "gd:2"},
		models.SlotQF3: {"gc:1", "ga:2"},
		models.SlotQF4: {"gd:1", "gb:2"},
		models.SlotSF1: {"winner:qf1", "winner:qf2"},
		models.SlotSF2: {"winner:qf3", "winner:qf4"},
		models.SlotF1:  {"winner:sf1", "winner:sf2"},
	}
	for slotID, want := range expected {
		a, b := seedsOf(t, slots, slotID)
		assert.Equal(t, want[0], a, slotID)
		assert.Equal(t, want[1], b, slotID)
	}

	// No squad's group meets its own runner-up before the semi finals.
	for _, slotID := range []string{models.SlotQF1, models.SlotQF2, models.SlotQF3, models.SlotQF4} {
		a, b := seedsOf(t, slots, slotID)
		refA, err := models.ParseSeedRef(a)
		require.NoError(t, err)
		refB, err := models.ParseSeedRef(b)
		require.NoError(t, err)
		assert.NotEqual(t, refA.GroupID, refB.GroupID, slotID)
	}
}

func TestAutoMapThreeGroupsFallback(t *testing.T) {
	groups := []models.Group{
		{ID: "ga", Name: "Group A"},
		{ID: "gb", Name: "Group B"},
		{ID: "gc", Name: "Group C"},
	}
	slots, err := AutoMap(groups)
	require.NoError(t, err)

	a, b := seedsOf(t, slots, models.SlotQF1)
	assert.Equal(t, "ga:1", a)
	assert.Equal(t, "gb:2", b)
	a, b = seedsOf(t, slots, models.SlotQF3)
	assert.Equal(t, "gc:1", a)
	assert.Equal(t, "ga:2", b)

	a, b = seedsOf(t, slots, models.SlotSF1)
	assert.Equal(t, "TBD", a)
	assert.Equal(t, "TBD", b)
}

func TestAutoMapNoGroups(t *testing.T) {
	_, err := AutoMap(nil)
	assert.ErrorIs(t, err, ErrNoGroups)
}

func TestEnsureDefault(t *testing.T) {
	t.Run("maps an empty bracket", func(t *testing.T) {
		slots := EnsureDefault(nil, twoGroups())
		assert.Len(t, slots, 3)
	})

	t.Run("leaves an existing bracket alone", func(t *testing.T) {
		existing := []models.BracketSlot{
			{ID: models.SlotSF1, Round: models.RoundSemiFinal, SeedA: models.LiteralSeed("x"), SeedB: models.UnresolvedSeed()},
		}
		slots := EnsureDefault(existing, twoGroups())
		assert.Equal(t, existing, slots)
	})

	t.Run("skips unsupported group counts", func(t *testing.T) {
		slots := EnsureDefault(nil, []models.Group{{ID: "ga"}})
		assert.Empty(t, slots)
	})
}

func TestSetSlot(t *testing.T) {
	qualifiers := models.ConfirmedQualifiers{
		"ga": {"alpha", "bravo"},
		"gb": {"charlie", "delta"},
	}

	t.Run("sets a side without mutating the input", func(t *testing.T) {
		original, err := AutoMap(twoGroups())
		require.NoError(t, err)

		updated, err := SetSlot(original, models.SlotSF1, models.SideA, models.LiteralSeed("echo"), nil, nil)
		require.NoError(t, err)

		a, _ := seedsOf(t, updated, models.SlotSF1)
		assert.Equal(t, "echo", a)
		origA, _ := seedsOf(t, original, models.SlotSF1)
		assert.Equal(t, "ga:1", origA)
	})

	t.Run("rejects the final slot", func(t *testing.T) {
		slots, err := AutoMap(twoGroups())
		require.NoError(t, err)
		_, err = SetSlot(slots, models.SlotF1, models.SideA, models.LiteralSeed("echo"), nil, nil)
		assert.ErrorIs(t, err, ErrFinalSlotFixed)
	})

	t.Run("rejects an unknown slot id", func(t *testing.T) {
		_, err := SetSlot(nil, "xyz", models.SideA, models.LiteralSeed("echo"), nil, nil)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("rejects a duplicate seed tuple in the round", func(t *testing.T) {
		slots, err := AutoMap(twoGroups())
		require.NoError(t, err)
		// ga:1 already occupies sf1.a.
		_, err = SetSlot(slots, models.SlotSF2, models.SideB, models.GroupRankSeed("ga", 1), nil, nil)
		assert.ErrorIs(t, err, ErrSeedTaken)
	})

	t.Run("rejects a seed resolving to an already seeded squad", func(t *testing.T) {
		slots, err := AutoMap(twoGroups())
		require.NoError(t, err)
		// "alpha" is ga rank 1, which already sits at sf1.a as ga:1.
		_, err = SetSlot(slots, models.SlotSF2, models.SideB, models.LiteralSeed("alpha"), qualifiers, nil)
		assert.ErrorIs(t, err, ErrSeedTaken)
	})

	t.Run("replacing a position with its own seed is allowed", func(t *testing.T) {
		slots, err := AutoMap(twoGroups())
		require.NoError(t, err)
		_, err = SetSlot(slots, models.SlotSF1, models.SideA, models.GroupRankSeed("ga", 1), qualifiers, nil)
		assert.NoError(t, err)
	})

	t.Run("unsetting a side is always accepted", func(t *testing.T) {
		slots, err := AutoMap(twoGroups())
		require.NoError(t, err)
		updated, err := SetSlot(slots, models.SlotSF1, models.SideA, models.UnresolvedSeed(), qualifiers, nil)
		require.NoError(t, err)
		a, _ := seedsOf(t, updated, models.SlotSF1)
		assert.Equal(t, "TBD", a)
	})

	t.Run("creates a missing canonical slot", func(t *testing.T) {
		updated, err := SetSlot(nil, models.SlotQF2, models.SideA, models.LiteralSeed("echo"), nil, nil)
		require.NoError(t, err)
		a, b := seedsOf(t, updated, models.SlotQF2)
		assert.Equal(t, "echo", a)
		assert.Equal(t, "TBD", b)
	})

	t.Run("writing a semi final rewires the final", func(t *testing.T) {
		updated, err := SetSlot(nil, models.SlotSF1, models.SideA, models.LiteralSeed("echo"), nil, nil)
		require.NoError(t, err)
		a, b := seedsOf(t, updated, models.SlotF1)
		assert.Equal(t, "winner:sf1", a)
		assert.Equal(t, "winner:sf2", b)

		// The rewrite is idempotent across repeated writes.
		again, err := SetSlot(updated, models.SlotSF2, models.SideB, models.LiteralSeed("foxtrot"), nil, nil)
		require.NoError(t, err)
		a, b = seedsOf(t, again, models.SlotF1)
		assert.Equal(t, "winner:sf1", a)
		assert.Equal(t, "winner:sf2", b)
		assert.Len(t, filterSlots(again, models.RoundFinal), 1)
	})
}

func filterSlots(slots []models.BracketSlot, round models.BracketRound) []models.BracketSlot {
	var out []models.BracketSlot
	for _, s := range slots {
		if s.Round == round {
			out = append(out, s)
		}
	}
	return out
}
