package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
)

// QualifierService is the confirmation registry: the ranked list of squads an
// admin has confirmed to advance from each group. Rankings are an admin
// decision informed by the points table, never derived automatically here.
type QualifierService interface {
	ConfirmQualifiers(ctx context.Context, tournamentID, groupID string, orderedSquadIDs []string) (*models.Tournament, error)
	IsFullyConfirmed(t *models.Tournament, groupID string) bool
}

type qualifierService struct {
	tournamentRepo repositories.TournamentRepository
	hub            *brackets.Hub
}

func NewQualifierService(tournamentRepo repositories.TournamentRepository, hub *brackets.Hub) QualifierService {
	return &qualifierService{
		tournamentRepo: tournamentRepo,
		hub:            hub,
	}
}

// ConfirmQualifiers replaces the confirmed list for a group. The list order
// defines rank (index 0 = rank 1). The whole list is validated before any
// field changes, so a rejected call leaves the prior list intact.
func (s *qualifierService) ConfirmQualifiers(ctx context.Context, tournamentID, groupID string, orderedSquadIDs []string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	group := t.GroupByID(groupID)
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if !qualifierWindowOpen(t) {
		return nil, ErrQualifierWindowClosed
	}

	if len(orderedSquadIDs) > group.QualifyCount {
		return nil, fmt.Errorf("%w: got %d, qualify count is %d",
			ErrTooManyQualifiers, len(orderedSquadIDs), group.QualifyCount)
	}
	seen := make(map[string]bool, len(orderedSquadIDs))
	for _, id := range orderedSquadIDs {
		if !group.HasSquad(id) {
			return nil, fmt.Errorf("%w: %s is not in %s", ErrQualifierNotInGroup, id, group.Name)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrQualifierNotInGroup, id)
		}
		seen[id] = true
	}

	if t.ConfirmedQualifiers == nil {
		t.ConfirmedQualifiers = models.ConfirmedQualifiers{}
	}
	confirmed := make([]string, len(orderedSquadIDs))
	copy(confirmed, orderedSquadIDs)
	t.ConfirmedQualifiers[groupID] = confirmed

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(brackets.Event{
			Type:         brackets.EventQualifiersConfirmed,
			TournamentID: t.ID,
			Payload:      map[string]interface{}{"group_id": groupID, "qualifiers": confirmed},
		})
	}
	return t, nil
}

func (s *qualifierService) IsFullyConfirmed(t *models.Tournament, groupID string) bool {
	group := t.GroupByID(groupID)
	if group == nil || group.QualifyCount <= 0 {
		return false
	}
	return len(t.ConfirmedQualifiers[groupID]) >= group.QualifyCount
}

// qualifierWindowOpen: confirmations are allowed during setup (tournament not
// locked) and afterwards only while a group stage is running.
func qualifierWindowOpen(t *models.Tournament) bool {
	if !t.Locked() {
		return true
	}
	for i := range t.Stages {
		if t.Stages[i].Type == models.StageTypeGroup && t.Stages[i].Status == models.StageActive {
			return true
		}
	}
	return false
}
