package services

import (
	"context"
	"testing"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBracketService(tour *models.Tournament, store *matchStore, squads ...models.Squad) BracketService {
	return NewBracketService(tournamentRepoFor(tour), store, squadRepoWith(squads...), nil, testLogger())
}

func TestBracketServiceAutoMap(t *testing.T) {
	tour, squads := twoGroupTournament(t)
	tour.Bracket = nil
	svc := newBracketService(tour, &matchStore{}, squads...)

	got, err := svc.AutoMap(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, got.Bracket, 3)
	assert.Equal(t, "ga:1", got.Bracket[0].SeedA.String())

	t.Run("fails without groups", func(t *testing.T) {
		empty := &models.Tournament{ID: "t2", Status: models.TournamentUpcoming}
		svc := newBracketService(empty, &matchStore{})
		_, err := svc.AutoMap(context.Background(), "t2")
		assert.ErrorIs(t, err, ErrNoGroups)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestBracketServiceSetSlot(t *testing.T) {
	t.Run("maps conflict sentinels", func(t *testing.T) {
		tour, squads := twoGroupTournament(t)
		svc := newBracketService(tour, &matchStore{}, squads...)

		_, err := svc.SetSlot(context.Background(), "t1", models.SlotSF2, models.SideB, models.GroupRankSeed("ga", 1))
		assert.ErrorIs(t, err, ErrSeedTaken)
		assert.ErrorIs(t, err, ErrConflict)

		_, err = svc.SetSlot(context.Background(), "t1", models.SlotF1, models.SideA, models.LiteralSeed("a1"))
		assert.ErrorIs(t, err, ErrFinalSlotFixed)

		_, err = svc.SetSlot(context.Background(), "t1", "bogus", models.SideA, models.LiteralSeed("a1"))
		assert.ErrorIs(t, err, ErrInvalidSlot)

		_, err = svc.SetSlot(context.Background(), "t1", models.SlotSF1, "c", models.LiteralSeed("a1"))
		assert.ErrorIs(t, err, ErrInvalidSlotSide)
	})

	t.Run("persists a valid write", func(t *testing.T) {
		tour, squads := twoGroupTournament(t)
		svc := newBracketService(tour, &matchStore{}, squads...)

		// "c9" is a wildcard entrant outside both groups, so no conflict.
		got, err := svc.SetSlot(context.Background(), "t1", models.SlotSF1, models.SideA, models.LiteralSeed("c9"))
		require.NoError(t, err)
		assert.Equal(t, "c9", got.Bracket[0].SeedA.String())
	})

	t.Run("unknown tournament", func(t *testing.T) {
		svc := newBracketService(nil, &matchStore{})
		_, err := svc.SetSlot(context.Background(), "missing", models.SlotSF1, models.SideA, models.LiteralSeed("x"))
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})
}

func TestBracketServiceResolvedView(t *testing.T) {
	tour, squads := twoGroupTournament(t)
	store := &matchStore{}
	svc := newBracketService(tour, store, squads...)

	view, err := svc.ResolvedView(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, view, 3)

	byID := make(map[string]ResolvedSlot, len(view))
	for _, slot := range view {
		byID[slot.ID] = slot
	}

	sf1 := byID[models.SlotSF1]
	assert.Equal(t, "a1", sf1.TeamAID)
	assert.Equal(t, "Alpha One", sf1.TeamAName)
	assert.Equal(t, "b2", sf1.TeamBID)
	assert.Equal(t, "Bravo Two", sf1.TeamBName)

	f1 := byID[models.SlotF1]
	assert.Empty(t, f1.TeamAID)
	assert.Equal(t, "Winner of SF1", f1.TeamAName)

	// Once SF1 finishes, the same view resolves the final's A side.
	winner := "a1"
	require.NoError(t, store.Create(context.Background(), nil, &models.Match{
		ID: "m1", TournamentID: "t1", Stage: models.StageTypeKnockout,
		Round: models.RoundSemiFinal, MatchNo: "SF1",
		TeamAID: "a1", TeamBID: "b2",
		Status: models.MatchFinished, WinnerID: &winner,
	}))

	view, err = svc.ResolvedView(context.Background(), "t1")
	require.NoError(t, err)
	for _, slot := range view {
		byID[slot.ID] = slot
	}
	assert.Equal(t, "a1", byID[models.SlotF1].TeamAID)
	assert.Equal(t, "Alpha One", byID[models.SlotF1].TeamAName)
}
