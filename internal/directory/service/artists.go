package service

import (
	"context"
	"fmt"
	"strings"

	"fyyur/internal/models"
)

func (s *Service) CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error) {
	in.Genres = uniqueGenres(in.Genres)
	if err := s.check("artist", in); err != nil {
		s.record("create_artist", err)
		return nil, err
	}

	artist := &models.Artist{}
	artist.Assign(in)
	if err := s.DB.CreateArtist(ctx, artist); err != nil {
		s.record("create_artist", err)
		return nil, err
	}
	s.record("create_artist", nil)

	s.Logger.LogDatabase("INSERT", "artists", fmt.Sprintf("artist %d %q listed", artist.ID, artist.Name))
	s.publish(ctx, models.ArtistListed, artist.ID, artist)
	return artist, nil
}

func (s *Service) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	s.record("get_artist", err)
	return artist, err
}

func (s *Service) UpdateArtist(ctx context.Context, id int64, upd models.UpdateArtistInput) (*models.Artist, error) {
	artist, err := s.DB.UpdateArtist(ctx, id, func(a *models.Artist) error {
		in := a.Fields()
		upd.Apply(&in)
		in.Genres = uniqueGenres(in.Genres)
		if err := s.check("artist", in); err != nil {
			return err
		}
		a.Assign(in)
		return nil
	})
	s.record("update_artist", err)
	if err != nil {
		return nil, err
	}

	s.Logger.LogDatabase("UPDATE", "artists", fmt.Sprintf("artist %d %q updated", artist.ID, artist.Name))
	s.publish(ctx, models.ArtistUpdated, artist.ID, artist)
	return artist, nil
}

func (s *Service) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := s.DB.ListArtists(ctx)
	s.record("list_artists", err)
	return artists, err
}

func (s *Service) SearchArtists(ctx context.Context, term string) (models.SearchResult[models.Artist], error) {
	artists, err := s.DB.SearchArtistsByName(ctx, strings.TrimSpace(term))
	s.record("search_artists", err)
	if err != nil {
		return models.SearchResult[models.Artist]{}, err
	}
	return models.SearchResult[models.Artist]{Count: len(artists), Data: artists}, nil
}

func (s *Service) GetArtistDetail(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	artist, shows, err := s.DB.GetArtistWithShows(ctx, id)
	s.record("get_artist_detail", err)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := models.NewArtistDetail(artist)
	for _, show := range shows {
		entry := models.ArtistShow{VenueID: show.VenueID, StartTime: show.StartTime}
		if show.Venue != nil {
			entry.VenueName = show.Venue.Name
			entry.VenueImageLink = show.Venue.ImageLink
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
