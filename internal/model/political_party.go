package model

import "time"

// PoliticalParty is a party registered on the platform
type PoliticalParty struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required,max=150"`
	PresidentName  string    `json:"president_name" validate:"required,max=150"`
	FoundationDate time.Time `json:"foundation_date"`
	Ideology       string    `json:"ideology" validate:"max=100"`
	Position       string    `json:"position" validate:"max=100"` // left, center, right...
	PictureLink    string    `json:"picture_link" validate:"max=500"`
}

// Apply overwrites the mutable fields with those of changed. ID is kept.
func (p *PoliticalParty) Apply(changed *PoliticalParty) {
	p.Name = changed.Name
	p.PresidentName = changed.PresidentName
	p.FoundationDate = changed.FoundationDate
	p.Ideology = changed.Ideology
	p.Position = changed.Position
	p.PictureLink = changed.PictureLink
}

// SavePoliticalPartyRequest is the body accepted when creating or updating a party
type SavePoliticalPartyRequest struct {
	Name           string    `json:"name"`
	PresidentName  string    `json:"president_name"`
	FoundationDate time.Time `json:"foundation_date"`
	Ideology       string    `json:"ideology"`
	Position       string    `json:"position"`
	PictureLink    string    `json:"picture_link"`
}

// ToPoliticalParty converts the request into an entity
func (r *SavePoliticalPartyRequest) ToPoliticalParty() *PoliticalParty {
	return &PoliticalParty{
		Name:           r.Name,
		PresidentName:  r.PresidentName,
		FoundationDate: r.FoundationDate,
		Ideology:       r.Ideology,
		Position:       r.Position,
		PictureLink:    r.PictureLink,
	}
}
