package models

import "time"

// Booking links a user to a tour at a snapshotted price. Price is copied
// from the tour at booking time so later price changes do not alter it.
type Booking struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tour"`
	UserID    string    `json:"user"`
	Price     float64   `json:"price"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
}
