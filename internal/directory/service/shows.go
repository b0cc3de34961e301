package service

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/models"
)

// CreateShow books an artist at a venue. Without a start time the show
// starts at the current time.
func (s *Service) CreateShow(ctx context.Context, in models.ShowInput) (*models.Show, error) {
	if err := s.check("show", in); err != nil {
		s.record("create_show", err)
		return nil, err
	}

	start := s.now()
	if in.StartTime != nil && !in.StartTime.IsZero() {
		start = in.StartTime.UTC()
	}

	show := &models.Show{
		VenueID:   in.VenueID,
		ArtistID:  in.ArtistID,
		StartTime: start.Truncate(time.Microsecond),
	}
	if err := s.DB.CreateShow(ctx, show); err != nil {
		s.record("create_show", err)
		return nil, err
	}
	s.record("create_show", nil)

	s.Logger.LogDatabase("INSERT", "shows", fmt.Sprintf("show %d: artist %d at venue %d", show.ID, show.ArtistID, show.VenueID))
	s.publish(ctx, models.ShowListed, show.ID, show)
	return show, nil
}

// ListShows returns every show with the names needed for the shows page.
func (s *Service) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	shows, err := s.DB.ListShows(ctx)
	s.record("list_shows", err)
	if err != nil {
		return nil, err
	}

	listings := make([]models.ShowListing, 0, len(shows))
	for _, show := range shows {
		listing := models.ShowListing{
			ID:        show.ID,
			VenueID:   show.VenueID,
			ArtistID:  show.ArtistID,
			StartTime: show.StartTime,
		}
		if show.Venue != nil {
			listing.VenueName = show.Venue.Name
		}
		if show.Artist != nil {
			listing.ArtistName = show.Artist.Name
			listing.ArtistImageLink = show.Artist.ImageLink
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
