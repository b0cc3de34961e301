package models

import (
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Address            string   `bun:"address,notnull" json:"address"`
	Phone              string   `bun:"phone,nullzero" json:"phone"`
	ImageLink          string   `bun:"image_link,nullzero" json:"image_link"`
	FacebookLink       string   `bun:"facebook_link,nullzero" json:"facebook_link"`
	Website            string   `bun:"website,nullzero" json:"website"`
	Genres             []string `bun:"genres,notnull" json:"genres"`
	SeekingTalent      bool     `bun:"seeking_talent,notnull" json:"seeking_talent"`
	SeekingDescription string   `bun:"seeking_description,nullzero" json:"seeking_description"`
}

// Fields returns the editable part of the record.
func (v *Venue) Fields() VenueInput {
	return VenueInput{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             append([]string(nil), v.Genres...),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Assign overwrites every editable field from in.
func (v *Venue) Assign(in VenueInput) {
	v.Name = in.Name
	v.City = in.City
	v.State = in.State
	v.Address = in.Address
	v.Phone = in.Phone
	v.ImageLink = in.ImageLink
	v.FacebookLink = in.FacebookLink
	v.Website = in.Website
	v.Genres = in.Genres
	v.SeekingTalent = in.SeekingTalent
	v.SeekingDescription = in.SeekingDescription
}
