package models

import (
	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Phone              string   `bun:"phone,nullzero" json:"phone"`
	Genres             []string `bun:"genres,notnull" json:"genres"`
	ImageLink          string   `bun:"image_link,nullzero" json:"image_link"`
	FacebookLink       string   `bun:"facebook_link,nullzero" json:"facebook_link"`
	WebsiteLink        string   `bun:"website_link,nullzero" json:"website_link"`
	SeekingVenue       bool     `bun:"seeking_venue,notnull" json:"seeking_venue"`
	SeekingDescription string   `bun:"seeking_description,nullzero" json:"seeking_description"`
}

func (a *Artist) Fields() ArtistInput {
	return ArtistInput{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             append([]string(nil), a.Genres...),
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (a *Artist) Assign(in ArtistInput) {
	a.Name = in.Name
	a.City = in.City
	a.State = in.State
	a.Phone = in.Phone
	a.Genres = in.Genres
	a.ImageLink = in.ImageLink
	a.FacebookLink = in.FacebookLink
	a.WebsiteLink = in.WebsiteLink
	a.SeekingVenue = in.SeekingVenue
	a.SeekingDescription = in.SeekingDescription
}
