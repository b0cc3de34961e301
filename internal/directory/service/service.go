// Package service is the query and aggregation layer of the directory. It
// validates input, drives the record store and shapes read models for the
// presentation layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"fyyur/internal/logger"
	"fyyur/internal/metrics"
	"fyyur/internal/models"
)

type DirectoryDBLayer interface {
	CreateVenue(ctx context.Context, venue *models.Venue) error
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, mutate func(*models.Venue) error) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	ListVenuesByLocation(ctx context.Context) ([]models.Venue, error)
	SearchVenuesByName(ctx context.Context, term string) ([]models.Venue, error)
	GetVenueWithShows(ctx context.Context, id int64) (*models.Venue, []models.Show, error)

	CreateArtist(ctx context.Context, artist *models.Artist) error
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, mutate func(*models.Artist) error) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtistsByName(ctx context.Context, term string) ([]models.Artist, error)
	GetArtistWithShows(ctx context.Context, id int64) (*models.Artist, []models.Show, error)

	CreateShow(ctx context.Context, show *models.Show) error
	ListShows(ctx context.Context) ([]models.Show, error)
}

// EventPublisher receives a change event after each committed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ChangeEvent) error
}

// Publishers hands every event to each publisher in turn and joins their
// failures.
type Publishers []EventPublisher

func (p Publishers) Publish(ctx context.Context, event models.ChangeEvent) error {
	var errs []error
	for _, pub := range p {
		if err := pub.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Service struct {
	DB        DirectoryDBLayer
	Publisher EventPublisher
	Logger    *logger.Logger

	// Now is the clock used for show defaults and the past/upcoming split.
	Now func() time.Time

	validate *validator.Validate
}

func NewService(db DirectoryDBLayer, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		DB:        db,
		Publisher: publisher,
		Logger:    log,
		Now:       time.Now,
		validate:  newValidator(),
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// record counts the outcome of op and logs it when it failed.
func (s *Service) record(op string, err error) {
	metrics.ObserveStoreOperation(op, err)
	if err == nil {
		return
	}
	s.Logger.Warn("DIRECTORY", fmt.Sprintf("%s: %v", op, err))
}

func (s *Service) publish(ctx context.Context, t models.ChangeType, id int64, payload any) {
	if s.Publisher == nil {
		return
	}
	event := models.NewChangeEvent(t, id, payload, s.now())
	err := s.Publisher.Publish(ctx, event)
	metrics.ObserveChangeEvent(string(t), err)
	if err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish %s for %s: %v", event.Type, event.Key(), err))
	}
}
