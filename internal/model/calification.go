package model

import "time"

// Calification is a score a user gives through the platform
type Calification struct {
	ID       int64     `json:"id"`
	Score    int       `json:"score" validate:"min=0,max=20"`
	ShipDate time.Time `json:"ship_date" validate:"required"`
	UserID   int64     `json:"user_id" validate:"gt=0"`
}

// Apply overwrites the mutable fields with those of changed.
// ID and the owning UserID are kept.
func (c *Calification) Apply(changed *Calification) {
	c.Score = changed.Score
	c.ShipDate = changed.ShipDate
}

// SaveCalificationRequest is the body accepted when creating or updating a calification
type SaveCalificationRequest struct {
	Score    int        `json:"score"`
	ShipDate *time.Time `json:"ship_date,omitempty"`
	UserID   int64      `json:"user_id,omitempty"`
}

// ToCalification converts the request into an entity
func (r *SaveCalificationRequest) ToCalification() *Calification {
	c := &Calification{
		Score:  r.Score,
		UserID: r.UserID,
	}
	if r.ShipDate != nil {
		c.ShipDate = *r.ShipDate
	}
	return c
}
