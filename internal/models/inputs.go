package models

import "time"

// VenueInput is the full set of editable venue fields, used for creation and
// as the merge target of an update.
type VenueInput struct {
	Name               string   `json:"name" validate:"notblank"`
	City               string   `json:"city" validate:"notblank,max=120"`
	State              string   `json:"state" validate:"notblank,max=120"`
	Address            string   `json:"address" validate:"notblank,max=120"`
	Phone              string   `json:"phone" validate:"omitempty,max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `json:"website" validate:"omitempty,url,max=120"`
	Genres             []string `json:"genres" validate:"min=1,dive,notblank"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// UpdateVenueInput carries only the fields the caller wants to change; nil
// leaves the stored value untouched.
type UpdateVenueInput struct {
	Name               *string   `json:"name,omitempty"`
	City               *string   `json:"city,omitempty"`
	State              *string   `json:"state,omitempty"`
	Address            *string   `json:"address,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	ImageLink          *string   `json:"image_link,omitempty"`
	FacebookLink       *string   `json:"facebook_link,omitempty"`
	Website            *string   `json:"website,omitempty"`
	Genres             *[]string `json:"genres,omitempty"`
	SeekingTalent      *bool     `json:"seeking_talent,omitempty"`
	SeekingDescription *string   `json:"seeking_description,omitempty"`
}

func (u UpdateVenueInput) Apply(in *VenueInput) {
	setString(&in.Name, u.Name)
	setString(&in.City, u.City)
	setString(&in.State, u.State)
	setString(&in.Address, u.Address)
	setString(&in.Phone, u.Phone)
	setString(&in.ImageLink, u.ImageLink)
	setString(&in.FacebookLink, u.FacebookLink)
	setString(&in.Website, u.Website)
	if u.Genres != nil {
		in.Genres = *u.Genres
	}
	if u.SeekingTalent != nil {
		in.SeekingTalent = *u.SeekingTalent
	}
	setString(&in.SeekingDescription, u.SeekingDescription)
}

type ArtistInput struct {
	Name               string   `json:"name" validate:"notblank"`
	City               string   `json:"city" validate:"notblank,max=120"`
	State              string   `json:"state" validate:"notblank,max=120"`
	Phone              string   `json:"phone" validate:"omitempty,max=120"`
	Genres             []string `json:"genres" validate:"min=1,dive,notblank"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `json:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

type UpdateArtistInput struct {
	Name               *string   `json:"name,omitempty"`
	City               *string   `json:"city,omitempty"`
	State              *string   `json:"state,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	Genres             *[]string `json:"genres,omitempty"`
	ImageLink          *string   `json:"image_link,omitempty"`
	FacebookLink       *string   `json:"facebook_link,omitempty"`
	WebsiteLink        *string   `json:"website_link,omitempty"`
	SeekingVenue       *bool     `json:"seeking_venue,omitempty"`
	SeekingDescription *string   `json:"seeking_description,omitempty"`
}

func (u UpdateArtistInput) Apply(in *ArtistInput) {
	setString(&in.Name, u.Name)
	setString(&in.City, u.City)
	setString(&in.State, u.State)
	setString(&in.Phone, u.Phone)
	if u.Genres != nil {
		in.Genres = *u.Genres
	}
	setString(&in.ImageLink, u.ImageLink)
	setString(&in.FacebookLink, u.FacebookLink)
	setString(&in.WebsiteLink, u.WebsiteLink)
	if u.SeekingVenue != nil {
		in.SeekingVenue = *u.SeekingVenue
	}
	setString(&in.SeekingDescription, u.SeekingDescription)
}

// ShowInput schedules an artist at a venue. A nil StartTime means "now".
type ShowInput struct {
	VenueID   int64      `json:"venue_id" validate:"gt=0"`
	ArtistID  int64      `json:"artist_id" validate:"gt=0"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
