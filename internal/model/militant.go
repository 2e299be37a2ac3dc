package model

import "time"

// Militant is a member of a political party shown on the platform
type Militant struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name" validate:"required,max=100"`
	BirthDate   time.Time `json:"birth_date"`
	Profession  string    `json:"profession" validate:"max=100"`
	PictureLink string    `json:"picture_link" validate:"max=500"`
}

// Apply overwrites the mutable fields with those of changed. ID is kept.
func (m *Militant) Apply(changed *Militant) {
	m.FirstName = changed.FirstName
	m.LastName = changed.LastName
	m.BirthDate = changed.BirthDate
	m.Profession = changed.Profession
	m.PictureLink = changed.PictureLink
}

// SaveMilitantRequest is the body accepted when creating or updating a militant
type SaveMilitantRequest struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	BirthDate   time.Time `json:"birth_date"`
	Profession  string    `json:"profession"`
	PictureLink string    `json:"picture_link"`
}

// ToMilitant converts the request into an entity
func (r *SaveMilitantRequest) ToMilitant() *Militant {
	return &Militant{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   r.BirthDate,
		Profession:  r.Profession,
		PictureLink: r.PictureLink,
	}
}
