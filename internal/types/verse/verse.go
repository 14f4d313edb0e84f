package verse

import "github.com/google/uuid"

type Verse struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference"`
	Text      string    `json:"text" db:"text"`
	DayOfYear int       `json:"day_of_year" db:"day_of_year"`
}
