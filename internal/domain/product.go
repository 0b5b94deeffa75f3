package domain

import "time"

// Product is a catalog entry. The order engine reads it only at checkout time
// to build the denormalized line snapshot.
type Product struct {
	ID        int
	Name      string
	Price     float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
