package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"fyyur/internal/apperrors"
	"fyyur/internal/models"
)

// CreateShow checks both references and inserts the show in one
// transaction, so a dangling show is never committed.
func (d *DB) CreateShow(ctx context.Context, show *models.Show) error {
	return d.inTx(ctx, "insert show", func(ctx context.Context, tx bun.Tx) error {
		venueExists, err := tx.NewSelect().
			Model((*models.Venue)(nil)).
			Where("v.id = ?", show.VenueID).
			Exists(ctx)
		if err != nil {
			return apperrors.Storage("select venue", err)
		}
		if !venueExists {
			return &apperrors.ReferentialError{Entity: "venue", ID: show.VenueID, Reason: "does not exist"}
		}

		artistExists, err := tx.NewSelect().
			Model((*models.Artist)(nil)).
			Where("a.id = ?", show.ArtistID).
			Exists(ctx)
		if err != nil {
			return apperrors.Storage("select artist", err)
		}
		if !artistExists {
			return &apperrors.ReferentialError{Entity: "artist", ID: show.ArtistID, Reason: "does not exist"}
		}

		_, err = tx.NewInsert().Model(show).Exec(ctx)
		return writeErr("insert show", err, func() *apperrors.ReferentialError {
			return &apperrors.ReferentialError{
				Entity: "show",
				Reason: fmt.Sprintf("venue %d or artist %d no longer exists", show.VenueID, show.ArtistID),
			}
		})
	})
}

// ListShows returns every show joined with its venue and artist.
func (d *DB) ListShows(ctx context.Context) ([]models.Show, error) {
	shows := []models.Show{}
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		Order("s.start_time", "s.id").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("list shows", err)
	}
	return shows, nil
}

func (d *DB) CountShows(ctx context.Context) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		Count(ctx)
	return count, apperrors.Storage("count shows", err)
}
