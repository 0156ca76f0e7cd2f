package services

import (
	"context"
	"testing"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmQualifiers(t *testing.T) {
	t.Run("records the ranked list", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		got, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s2", "s1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"s2", "s1"}, got.ConfirmedQualifiers["ga"])
	})

	t.Run("re-confirmation replaces the prior list", func(t *testing.T) {
		tour := upcomingTournament()
		tour.ConfirmedQualifiers["ga"] = []string{"s1", "s2"}
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		got, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"s2"}, got.ConfirmedQualifiers["ga"])
	})

	t.Run("list above the qualify count is rejected wholesale", func(t *testing.T) {
		tour := upcomingTournament()
		tour.ConfirmedQualifiers["ga"] = []string{"s1"}
		tour.GroupByID("ga").QualifyCount = 1
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		_, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s1", "s2"})
		assert.ErrorIs(t, err, ErrTooManyQualifiers)
		// The prior confirmation survives a rejected call.
		assert.Equal(t, []string{"s1"}, tour.ConfirmedQualifiers["ga"])
	})

	t.Run("rejects a squad outside the group", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		_, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s3"})
		assert.ErrorIs(t, err, ErrQualifierNotInGroup)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		tour := upcomingTournament()
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		_, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s1", "s1"})
		assert.ErrorIs(t, err, ErrQualifierNotInGroup)
	})

	t.Run("window closes when the tournament is locked without an active group stage", func(t *testing.T) {
		tour := upcomingTournament()
		tour.Status = models.TournamentOngoing
		tour.Stages = []models.Stage{
			{ID: "st1", Name: "Group Stage", Type: models.StageTypeGroup, Status: models.StageCompleted},
			{ID: "st2", Name: "Semi Final", Type: models.StageTypeKnockout, Status: models.StageActive},
		}
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		_, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s1"})
		assert.ErrorIs(t, err, ErrQualifierWindowClosed)
	})

	t.Run("window stays open while the group stage runs", func(t *testing.T) {
		tour := upcomingTournament()
		tour.Status = models.TournamentOngoing
		tour.Stages = []models.Stage{
			{ID: "st1", Name: "Group Stage", Type: models.StageTypeGroup, Status: models.StageActive},
		}
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		_, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", []string{"s1"})
		assert.NoError(t, err)
	})

	t.Run("empty list clears the confirmation", func(t *testing.T) {
		tour := upcomingTournament()
		tour.ConfirmedQualifiers["ga"] = []string{"s1", "s2"}
		svc := NewQualifierService(tournamentRepoFor(tour), nil)

		got, err := svc.ConfirmQualifiers(context.Background(), "t1", "ga", nil)
		require.NoError(t, err)
		assert.Empty(t, got.ConfirmedQualifiers["ga"])
	})
}

func TestIsFullyConfirmed(t *testing.T) {
	tour := upcomingTournament()
	svc := NewQualifierService(tournamentRepoFor(tour), nil)

	assert.False(t, svc.IsFullyConfirmed(tour, "ga"))

	tour.ConfirmedQualifiers["ga"] = []string{"s1"}
	assert.False(t, svc.IsFullyConfirmed(tour, "ga"))

	tour.ConfirmedQualifiers["ga"] = []string{"s1", "s2"}
	assert.True(t, svc.IsFullyConfirmed(tour, "ga"))

	assert.False(t, svc.IsFullyConfirmed(tour, "missing"))
}
