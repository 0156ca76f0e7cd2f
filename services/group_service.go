package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/google/uuid"
)

// GroupService owns group definitions: squad membership and qualifier counts.
// All structural edits require the tournament to still be in the upcoming
// state.
type GroupService interface {
	AddGroup(ctx context.Context, tournamentID string) (*models.Tournament, error)
	RemoveGroup(ctx context.Context, tournamentID, groupID string) (*models.Tournament, error)
	AssignSquad(ctx context.Context, tournamentID, groupID, squadID string, included bool) (*models.Tournament, error)
	SetQualifyCount(ctx context.Context, tournamentID, groupID string, count int) (*models.Tournament, error)
}

type groupService struct {
	tournamentRepo repositories.TournamentRepository
	squadRepo      repositories.SquadRepository
}

func NewGroupService(
	tournamentRepo repositories.TournamentRepository,
	squadRepo repositories.SquadRepository,
) GroupService {
	return &groupService{
		tournamentRepo: tournamentRepo,
		squadRepo:      squadRepo,
	}
}

func (s *groupService) AddGroup(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	t.Groups = append(t.Groups, models.Group{
		ID:             uuid.NewString(),
		Name:           nextGroupName(len(t.Groups)),
		SquadIDs:       []string{},
		QualifyCount:   2,
		WinnerPriority: true,
	})

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *groupService) RemoveGroup(ctx context.Context, tournamentID, groupID string) (*models.Tournament, error) {
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range t.Groups {
		if t.Groups[i].ID == groupID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrGroupNotFound
	}

	t.Groups = append(t.Groups[:idx], t.Groups[idx+1:]...)
	delete(t.ConfirmedQualifiers, groupID)

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *groupService) AssignSquad(ctx context.Context, tournamentID, groupID, squadID string, included bool) (*models.Tournament, error) {
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	group := t.GroupByID(groupID)
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if _, err := s.squadRepo.GetByID(ctx, squadID); err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			return nil, ErrSquadNotFound
		}
		return nil, err
	}

	if included {
		if owner := t.GroupOfSquad(squadID); owner != nil && owner.ID != groupID {
			return nil, fmt.Errorf("%w: squad %s is in %s", ErrSquadInOtherGroup, squadID, owner.Name)
		}
		if !group.HasSquad(squadID) {
			group.SquadIDs = append(group.SquadIDs, squadID)
		}
	} else {
		for i, id := range group.SquadIDs {
			if id == squadID {
				group.SquadIDs = append(group.SquadIDs[:i], group.SquadIDs[i+1:]...)
				break
			}
		}
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetQualifyCount clamps the count to [1,4]. Shrinking below an already
// confirmed qualifier list truncates that list; this is the one place
// confirmed qualifiers change outside an explicit confirmation.
func (s *groupService) SetQualifyCount(ctx context.Context, tournamentID, groupID string, count int) (*models.Tournament, error) {
	t, err := s.loadUnlocked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	group := t.GroupByID(groupID)
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if count < models.MinQualifyCount {
		count = models.MinQualifyCount
	}
	if count > models.MaxQualifyCount {
		count = models.MaxQualifyCount
	}
	group.QualifyCount = count

	if confirmed := t.ConfirmedQualifiers[groupID]; len(confirmed) > count {
		t.ConfirmedQualifiers[groupID] = confirmed[:count]
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *groupService) loadUnlocked(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if t.Locked() {
		return nil, ErrTournamentLocked
	}
	return t, nil
}

// nextGroupName yields "Group A", "Group B", ... falling back to a numeric
// suffix past Z.
func nextGroupName(existing int) string {
	if existing < 26 {
		return fmt.Sprintf("Group %c", rune('A'+existing))
	}
	return fmt.Sprintf("Group %d", existing+1)
}
