package services

import (
	"context"
	"testing"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upcomingTournament() *models.Tournament {
	return &models.Tournament{
		ID:     "t1",
		Name:   "Spring Cup",
		Status: models.TournamentUpcoming,
		Groups: []models.Group{
			{ID: "ga", Name: "Group A", SquadIDs: []string{"s1", "s2"}, QualifyCount: 2},
			{ID: "gb", Name: "Group B", SquadIDs: []string{"s3"}, QualifyCount: 2},
		},
		ConfirmedQualifiers: models.ConfirmedQualifiers{},
	}
}

func TestGroupServiceAddGroup(t *testing.T) {
	tour := upcomingTournament()
	svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith())

	got, err := svc.AddGroup(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, got.Groups, 3)
	added := got.Groups[2]
	assert.Equal(t, "Group C", added.Name)
	assert.Equal(t, 2, added.QualifyCount)
	assert.Empty(t, added.SquadIDs)
}

func TestGroupServiceAddGroupLocked(t *testing.T) {
	tour := upcomingTournament()
	tour.Status = models.TournamentOngoing
	svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith())

	_, err := svc.AddGroup(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrTournamentLocked)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestGroupServiceRemoveGroup(t *testing.T) {
	tour := upcomingTournament()
	tour.ConfirmedQualifiers["ga"] = []string{"s1", "s2"}
	svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith())

	got, err := svc.RemoveGroup(context.Background(), "t1", "ga")
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "gb", got.Groups[0].ID)
	assert.NotContains(t, got.ConfirmedQualifiers, "ga")
}

func TestGroupServiceRemoveGroupNotFound(t *testing.T) {
	svc := NewGroupService(tournamentRepoFor(upcomingTournament()), squadRepoWith())
	_, err := svc.RemoveGroup(context.Background(), "t1", "nope")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupServiceAssignSquad(t *testing.T) {
	squads := []models.Squad{{ID: "s1", Name: "Lions"}, {ID: "s3", Name: "Tigers"}, {ID: "s4", Name: "Bears"}}

	t.Run("adds a squad", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith(squads...))

		got, err := svc.AssignSquad(context.Background(), "t1", "gb", "s4", true)
		require.NoError(t, err)
		assert.True(t, got.GroupByID("gb").HasSquad("s4"))
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith(squads...))

		_, err := svc.AssignSquad(context.Background(), "t1", "gb", "s3", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"s3"}, tour.GroupByID("gb").SquadIDs)
	})

	t.Run("rejects a squad already in another group", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith(squads...))

		_, err := svc.AssignSquad(context.Background(), "t1", "gb", "s1", true)
		assert.ErrorIs(t, err, ErrSquadInOtherGroup)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects an unknown squad", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith(squads...))

		_, err := svc.AssignSquad(context.Background(), "t1", "gb", "ghost", true)
		assert.ErrorIs(t, err, ErrSquadNotFound)
	})

	t.Run("removes a squad", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith(squads...))

		got, err := svc.AssignSquad(context.Background(), "t1", "ga", "s1", false)
		require.NoError(t, err)
		assert.False(t, got.GroupByID("ga").HasSquad("s1"))
		assert.True(t, got.GroupByID("ga").HasSquad("s2"))
	})
}

func TestGroupServiceSetQualifyCount(t *testing.T) {
	t.Run("clamps to the allowed range", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith())

		got, err := svc.SetQualifyCount(context.Background(), "t1", "ga", 9)
		require.NoError(t, err)
		assert.Equal(t, models.MaxQualifyCount, got.GroupByID("ga").QualifyCount)

		got, err = svc.SetQualifyCount(context.Background(), "t1", "ga", 0)
		require.NoError(t, err)
		assert.Equal(t, models.MinQualifyCount, got.GroupByID("ga").QualifyCount)
	})

	t.Run("shrinking truncates the confirmed list", func(t *testing.T) {
		tour := upcomingTournament()
		tour.ConfirmedQualifiers["ga"] = []string{"s1", "s2"}
		svc := NewGroupService(tournamentRepoFor(tour), squadRepoWith())

		got, err := svc.SetQualifyCount(context.Background(), "t1", "ga", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, got.ConfirmedQualifiers["ga"])
	})
}
