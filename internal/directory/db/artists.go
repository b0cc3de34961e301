package db

import (
	"context"

	"github.com/uptrace/bun"

	"fyyur/internal/apperrors"
	"fyyur/internal/models"
)

func (d *DB) CreateArtist(ctx context.Context, artist *models.Artist) error {
	_, err := d.Bun.NewInsert().Model(artist).Exec(ctx)
	return apperrors.Storage("insert artist", err)
}

func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	artist := &models.Artist{ID: id}
	err := d.Bun.NewSelect().
		Model(artist).
		WherePK().
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "artist", id, "select artist")
	}
	return artist, nil
}

// UpdateArtist is the artist counterpart of UpdateVenue.
func (d *DB) UpdateArtist(ctx context.Context, id int64, mutate func(*models.Artist) error) (*models.Artist, error) {
	var updated *models.Artist
	err := d.inTx(ctx, "update artist", func(ctx context.Context, tx bun.Tx) error {
		artist := &models.Artist{ID: id}
		if err := tx.NewSelect().Model(artist).WherePK().Scan(ctx); err != nil {
			return lookupErr(err, "artist", id, "select artist")
		}
		if err := mutate(artist); err != nil {
			return err
		}
		artist.ID = id

		if _, err := tx.NewUpdate().Model(artist).WherePK().Exec(ctx); err != nil {
			return apperrors.Storage("update artist", err)
		}
		updated = artist
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	err := d.Bun.NewSelect().
		Model(&artists).
		Order("a.id").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("list artists", err)
	}
	return artists, nil
}

func (d *DB) SearchArtistsByName(ctx context.Context, term string) ([]models.Artist, error) {
	artists := []models.Artist{}
	q := d.Bun.NewSelect().
		Model(&artists).
		Order("a.id")
	if err := d.searchByName(q, term).Scan(ctx); err != nil {
		return nil, apperrors.Storage("search artists", err)
	}
	if d.foldsInGo() {
		artists = filterByName(artists, func(a *models.Artist) string { return a.Name }, term)
	}
	return artists, nil
}

// GetArtistWithShows reads an artist and its shows, each joined with its
// venue, from one snapshot.
func (d *DB) GetArtistWithShows(ctx context.Context, id int64) (*models.Artist, []models.Show, error) {
	var (
		artist *models.Artist
		shows  []models.Show
	)
	err := d.inTx(ctx, "select artist shows", func(ctx context.Context, tx bun.Tx) error {
		a := &models.Artist{ID: id}
		if err := tx.NewSelect().Model(a).WherePK().Scan(ctx); err != nil {
			return lookupErr(err, "artist", id, "select artist")
		}

		err := tx.NewSelect().
			Model(&shows).
			Relation("Venue").
			Where("s.artist_id = ?", id).
			Order("s.start_time", "s.id").
			Scan(ctx)
		if err != nil {
			return apperrors.Storage("select artist shows", err)
		}
		artist = a
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return artist, shows, nil
}
