package services

import (
	"context"
	"strings"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
)

type fakeTournamentRepo struct {
	CreateFunc        func(ctx context.Context, t *models.Tournament) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.Tournament, error)
	ListFunc          func(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	UpdateFunc        func(ctx context.Context, t *models.Tournament) error
	UpdateLogoKeyFunc func(ctx context.Context, id string, logoKey *string) error
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	return f.CreateFunc(ctx, t)
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeTournamentRepo) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	return f.ListFunc(ctx, status)
}

func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	return f.UpdateFunc(ctx, t)
}

func (f *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	return f.UpdateLogoKeyFunc(ctx, id, logoKey)
}

// tournamentRepoFor serves a single tournament and records updates, which is
// what most service tests need.
func tournamentRepoFor(t *models.Tournament) *fakeTournamentRepo {
	return &fakeTournamentRepo{
		GetByIDFunc: func(_ context.Context, id string) (*models.Tournament, error) {
			if t == nil || t.ID != id {
				return nil, repositories.ErrTournamentNotFound
			}
			return t, nil
		},
		UpdateFunc: func(_ context.Context, _ *models.Tournament) error {
			return nil
		},
	}
}

type fakeSquadRepo struct {
	GetByIDFunc   func(ctx context.Context, id string) (*models.Squad, error)
	ListByIDsFunc func(ctx context.Context, ids []string) ([]models.Squad, error)
	ListFunc      func(ctx context.Context) ([]models.Squad, error)
}

func (f *fakeSquadRepo) GetByID(ctx context.Context, id string) (*models.Squad, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeSquadRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Squad, error) {
	return f.ListByIDsFunc(ctx, ids)
}

func (f *fakeSquadRepo) List(ctx context.Context) ([]models.Squad, error) {
	return f.ListFunc(ctx)
}

// squadRepoWith recognizes the given squads and nothing else.
func squadRepoWith(squads ...models.Squad) *fakeSquadRepo {
	byID := make(map[string]models.Squad, len(squads))
	for _, s := range squads {
		byID[s.ID] = s
	}
	return &fakeSquadRepo{
		GetByIDFunc: func(_ context.Context, id string) (*models.Squad, error) {
			s, ok := byID[id]
			if !ok {
				return nil, repositories.ErrSquadNotFound
			}
			return &s, nil
		},
		ListByIDsFunc: func(_ context.Context, ids []string) ([]models.Squad, error) {
			var out []models.Squad
			for _, id := range ids {
				if s, ok := byID[id]; ok {
					out = append(out, s)
				}
			}
			return out, nil
		},
		ListFunc: func(_ context.Context) ([]models.Squad, error) {
			return squads, nil
		},
	}
}

// matchStore is an in-memory MatchRepository used by stage and bracket tests
// that exercise materialization end to end.
type matchStore struct {
	matches []*models.Match
}

func (s *matchStore) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	cp := *m
	s.matches = append(s.matches, &cp)
	return nil
}

func (s *matchStore) GetByID(_ context.Context, id string) (*models.Match, error) {
	for _, m := range s.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (s *matchStore) ListByTournament(_ context.Context, tournamentID string, stage *models.StageType) ([]models.Match, error) {
	var out []models.Match
	for _, m := range s.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if stage != nil && m.Stage != *stage {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *matchStore) ExistsByMatchNo(_ context.Context, tournamentID, matchNo string) (bool, error) {
	for _, m := range s.matches {
		if m.TournamentID == tournamentID && strings.EqualFold(m.MatchNo, matchNo) {
			return true, nil
		}
	}
	return false, nil
}

func (s *matchStore) UpdateResult(_ context.Context, id string, status models.MatchStatus, winnerID *string) error {
	for _, m := range s.matches {
		if m.ID == id {
			m.Status = status
			m.WinnerID = winnerID
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (s *matchStore) byNo(matchNo string) *models.Match {
	for _, m := range s.matches {
		if strings.EqualFold(m.MatchNo, matchNo) {
			return m
		}
	}
	return nil
}
