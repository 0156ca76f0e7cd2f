package models

// Group is a round-robin pool inside the group stage. SquadIDs is an ordered
// set; a squad id may appear in at most one group of a tournament.
type Group struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	SquadIDs       []string `json:"squad_ids"`
	QualifyCount   int      `json:"qualify_count"`
	WinnerPriority bool     `json:"winner_priority"`
}

const (
	MinQualifyCount = 1
	MaxQualifyCount = 4
)

func (g *Group) HasSquad(squadID string) bool {
	for _, id := range g.SquadIDs {
		if id == squadID {
			return true
		}
	}
	return false
}

// ConfirmedQualifiers maps group id to the ranked list of squads confirmed
// to advance (index 0 = rank 1).
type ConfirmedQualifiers map[string][]string
