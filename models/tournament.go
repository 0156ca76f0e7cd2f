package models

import "time"

// TournamentStatus mirrors the ENUM stored in the database.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is the aggregate the engine operates on. Stages, groups,
// confirmed qualifiers and the bracket are document-style fields persisted
// as JSONB; matches live in their own table and are loaded separately.
type Tournament struct {
	ID                  string              `json:"id" db:"id"`
	Name                string              `json:"name" db:"name"`
	Season              *string             `json:"season,omitempty" db:"season"`
	Year                int                 `json:"year" db:"year"`
	Status              TournamentStatus    `json:"status" db:"status"`
	DefaultVenue        string              `json:"default_venue" db:"default_venue"`
	OversLimit          int                 `json:"overs_limit" db:"overs_limit"`
	LogoKey             *string             `json:"-" db:"logo_key"`
	LogoURL             *string             `json:"logo_url,omitempty" db:"-"`
	Stages              []Stage             `json:"stages" db:"stages"`
	Groups              []Group             `json:"groups" db:"groups"`
	ConfirmedQualifiers ConfirmedQualifiers `json:"confirmed_qualifiers" db:"confirmed_qualifiers"`
	Bracket             []BracketSlot       `json:"bracket" db:"bracket"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" db:"updated_at"`

	// Loaded on demand, not part of the tournament document.
	Matches []Match `json:"matches,omitempty" db:"-"`
}

// Locked reports whether structural edits (stages, groups) are frozen.
// Everything locks the moment the tournament leaves the upcoming state.
func (t *Tournament) Locked() bool {
	return t.Status != TournamentUpcoming
}

func (t *Tournament) StageByID(stageID string) *Stage {
	for i := range t.Stages {
		if t.Stages[i].ID == stageID {
			return &t.Stages[i]
		}
	}
	return nil
}

func (t *Tournament) GroupByID(groupID string) *Group {
	for i := range t.Groups {
		if t.Groups[i].ID == groupID {
			return &t.Groups[i]
		}
	}
	return nil
}

// GroupOfSquad returns the group currently holding squadID, if any.
func (t *Tournament) GroupOfSquad(squadID string) *Group {
	for i := range t.Groups {
		if t.Groups[i].HasSquad(squadID) {
			return &t.Groups[i]
		}
	}
	return nil
}
