package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"fyyur/internal/apperrors"
	"fyyur/internal/models"
)

// CreateVenue inserts venue and fills in its generated ID.
func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	_, err := d.Bun.NewInsert().Model(venue).Exec(ctx)
	return apperrors.Storage("insert venue", err)
}

func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	venue := &models.Venue{ID: id}
	err := d.Bun.NewSelect().
		Model(venue).
		WherePK().
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "venue", id, "select venue")
	}
	return venue, nil
}

// UpdateVenue loads the venue, lets mutate change it and writes every
// column back, all inside one transaction. An error from mutate aborts the
// update and is returned unchanged.
func (d *DB) UpdateVenue(ctx context.Context, id int64, mutate func(*models.Venue) error) (*models.Venue, error) {
	var updated *models.Venue
	err := d.inTx(ctx, "update venue", func(ctx context.Context, tx bun.Tx) error {
		venue := &models.Venue{ID: id}
		if err := tx.NewSelect().Model(venue).WherePK().Scan(ctx); err != nil {
			return lookupErr(err, "venue", id, "select venue")
		}
		if err := mutate(venue); err != nil {
			return err
		}
		venue.ID = id

		if _, err := tx.NewUpdate().Model(venue).WherePK().Exec(ctx); err != nil {
			return apperrors.Storage("update venue", err)
		}
		updated = venue
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteVenue removes a venue that no show references. A venue with shows
// is kept and a ReferentialError is returned.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.inTx(ctx, "delete venue", func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Venue)(nil)).
			Where("v.id = ?", id).
			Exists(ctx)
		if err != nil {
			return apperrors.Storage("select venue", err)
		}
		if !exists {
			return apperrors.NotFound("venue", id)
		}

		shows, err := tx.NewSelect().
			Model((*models.Show)(nil)).
			Where("s.venue_id = ?", id).
			Count(ctx)
		if err != nil {
			return apperrors.Storage("count shows", err)
		}
		if shows > 0 {
			return &apperrors.ReferentialError{
				Entity: "venue",
				ID:     id,
				Reason: fmt.Sprintf("still has %d scheduled show(s)", shows),
			}
		}

		_, err = tx.NewDelete().
			Model((*models.Venue)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return writeErr("delete venue", err, func() *apperrors.ReferentialError {
			return &apperrors.ReferentialError{Entity: "venue", ID: id, Reason: "still has scheduled shows"}
		})
	})
}

func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues := []models.Venue{}
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("v.id").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("list venues", err)
	}
	return venues, nil
}

// ListVenuesByLocation returns every venue ordered by city, state, then id.
func (d *DB) ListVenuesByLocation(ctx context.Context) ([]models.Venue, error) {
	venues := []models.Venue{}
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("v.city", "v.state", "v.id").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("list venues by location", err)
	}
	return venues, nil
}

// SearchVenuesByName matches term anywhere in the name, ignoring case.
func (d *DB) SearchVenuesByName(ctx context.Context, term string) ([]models.Venue, error) {
	venues := []models.Venue{}
	q := d.Bun.NewSelect().
		Model(&venues).
		Order("v.id")
	if err := d.searchByName(q, term).Scan(ctx); err != nil {
		return nil, apperrors.Storage("search venues", err)
	}
	if d.foldsInGo() {
		venues = filterByName(venues, func(v *models.Venue) string { return v.Name }, term)
	}
	return venues, nil
}

// GetVenueWithShows reads a venue and its shows, each joined with its
// artist, from one snapshot.
func (d *DB) GetVenueWithShows(ctx context.Context, id int64) (*models.Venue, []models.Show, error) {
	var (
		venue *models.Venue
		shows []models.Show
	)
	err := d.inTx(ctx, "select venue shows", func(ctx context.Context, tx bun.Tx) error {
		v := &models.Venue{ID: id}
		if err := tx.NewSelect().Model(v).WherePK().Scan(ctx); err != nil {
			return lookupErr(err, "venue", id, "select venue")
		}

		err := tx.NewSelect().
			Model(&shows).
			Relation("Artist").
			Where("s.venue_id = ?", id).
			Order("s.start_time", "s.id").
			Scan(ctx)
		if err != nil {
			return apperrors.Storage("select venue shows", err)
		}
		venue = v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return venue, shows, nil
}
