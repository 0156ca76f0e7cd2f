package models

import "time"

// Squad is a participating team. The engine only needs ids and display names.
type Squad struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Batch     *string   `json:"batch,omitempty" db:"batch"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
