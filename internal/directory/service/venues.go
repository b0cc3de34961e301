package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"fyyur/internal/models"
)

func (s *Service) CreateVenue(ctx context.Context, in models.VenueInput) (*models.Venue, error) {
	in.Genres = uniqueGenres(in.Genres)
	if err := s.check("venue", in); err != nil {
		s.record("create_venue", err)
		return nil, err
	}

	venue := &models.Venue{}
	venue.Assign(in)
	if err := s.DB.CreateVenue(ctx, venue); err != nil {
		s.record("create_venue", err)
		return nil, err
	}
	s.record("create_venue", nil)

	s.Logger.LogDatabase("INSERT", "venues", fmt.Sprintf("venue %d %q listed", venue.ID, venue.Name))
	s.publish(ctx, models.VenueListed, venue.ID, venue)
	return venue, nil
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	s.record("get_venue", err)
	return venue, err
}

// UpdateVenue changes only the fields set in upd. The merged record must
// pass the same checks as a new venue; otherwise nothing is written.
func (s *Service) UpdateVenue(ctx context.Context, id int64, upd models.UpdateVenueInput) (*models.Venue, error) {
	venue, err := s.DB.UpdateVenue(ctx, id, func(v *models.Venue) error {
		in := v.Fields()
		upd.Apply(&in)
		in.Genres = uniqueGenres(in.Genres)
		if err := s.check("venue", in); err != nil {
			return err
		}
		v.Assign(in)
		return nil
	})
	s.record("update_venue", err)
	if err != nil {
		return nil, err
	}

	s.Logger.LogDatabase("UPDATE", "venues", fmt.Sprintf("venue %d %q updated", venue.ID, venue.Name))
	s.publish(ctx, models.VenueUpdated, venue.ID, venue)
	return venue, nil
}

func (s *Service) DeleteVenue(ctx context.Context, id int64) error {
	err := s.DB.DeleteVenue(ctx, id)
	s.record("delete_venue", err)
	if err != nil {
		return err
	}

	s.Logger.LogDatabase("DELETE", "venues", fmt.Sprintf("venue %d deleted", id))
	s.publish(ctx, models.VenueDeleted, id, nil)
	return nil
}

func (s *Service) SearchVenues(ctx context.Context, term string) (models.SearchResult[models.Venue], error) {
	venues, err := s.DB.SearchVenuesByName(ctx, strings.TrimSpace(term))
	s.record("search_venues", err)
	if err != nil {
		return models.SearchResult[models.Venue]{}, err
	}
	return models.SearchResult[models.Venue]{Count: len(venues), Data: venues}, nil
}

// ListVenueGroupsByLocation groups venues by their exact (city, state)
// pair. Groups are ordered by city then state and venues inside a group
// by id.
func (s *Service) ListVenueGroupsByLocation(ctx context.Context) ([]models.LocationGroup, error) {
	venues, err := s.DB.ListVenuesByLocation(ctx)
	s.record("list_venue_groups", err)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(venues, func(a, b models.Venue) int {
		return cmp.Or(
			cmp.Compare(a.City, b.City),
			cmp.Compare(a.State, b.State),
			cmp.Compare(a.ID, b.ID),
		)
	})

	groups := []models.LocationGroup{}
	for _, v := range venues {
		last := len(groups) - 1
		if last < 0 || groups[last].City != v.City || groups[last].State != v.State {
			groups = append(groups, models.LocationGroup{City: v.City, State: v.State, Venues: []models.VenueSummary{}})
			last++
		}
		groups[last].Venues = append(groups[last].Venues, models.VenueSummary{ID: v.ID, Name: v.Name})
	}
	return groups, nil
}

// GetVenueDetail splits the venue's shows around the current time. A show
// starting exactly now is in neither list.
func (s *Service) GetVenueDetail(ctx context.Context, id int64) (*models.VenueDetail, error) {
	venue, shows, err := s.DB.GetVenueWithShows(ctx, id)
	s.record("get_venue_detail", err)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := models.NewVenueDetail(venue)
	for _, show := range shows {
		entry := models.VenueShow{ArtistID: show.ArtistID, StartTime: show.StartTime}
		if show.Artist != nil {
			entry.ArtistName = show.Artist.Name
			entry.ArtistImageLink = show.Artist.ImageLink
		}
		switch {
		case show.StartTime.Before(now):
			detail.PastShows = append(detail.PastShows, entry)
		case show.StartTime.After(now):
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}
