package domain

import "time"

// Fulfiller is a human operator who verifies payments and delivers account
// credentials. Active fulfillers receive new orders in sortOrder rotation.
type Fulfiller struct {
	ID        uint
	Name      string
	Phone     string
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
