package models

import "time"

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
	MatchAbandoned MatchStatus = "abandoned"
)

// Settled reports whether the match no longer blocks stage completion.
func (s MatchStatus) Settled() bool {
	return s == MatchFinished || s == MatchAbandoned
}

// Match is owned by the live-scoring subsystem. The engine creates matches at
// knockout stage activation and afterwards only ever reads Status/WinnerID.
type Match struct {
	ID           string       `json:"id" db:"id"`
	TournamentID string       `json:"tournament_id" db:"tournament_id"`
	Stage        StageType    `json:"stage" db:"stage"`
	Round        BracketRound `json:"round,omitempty" db:"round"`
	MatchNo      string       `json:"match_no" db:"match_no"`
	TeamAID      string       `json:"team_a_id" db:"team_a_id"`
	TeamBID      string       `json:"team_b_id" db:"team_b_id"`
	TeamAName    string       `json:"team_a_name" db:"team_a_name"`
	TeamBName    string       `json:"team_b_name" db:"team_b_name"`
	Venue        string       `json:"venue" db:"venue"`
	Date         string       `json:"date" db:"date"`
	Time         string       `json:"time" db:"time"`
	OversLimit   int          `json:"overs_limit" db:"overs_limit"`
	Status       MatchStatus  `json:"status" db:"status"`
	WinnerID     *string      `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// MatchSchedule is the caller-supplied date/time for one materialized slot.
type MatchSchedule struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// MatchStats summarizes the matches associated with a stage, used to gate
// stage completion.
type MatchStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
