//go:build integration

package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fyyur/internal/apperrors"
	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/directory/db"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

func setupPostgres(t *testing.T) *db.DB {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "fyyur",
				"POSTGRES_PASSWORD": "fyyur",
				"POSTGRES_DB":       "fyyur",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:       database.DriverPostgres,
		Host:         host,
		Port:         port.Port(),
		Username:     "fyyur",
		Password:     "fyyur",
		Database:     "fyyur",
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 5,
		MaxLifetime:  time.Minute,
	}

	runner := migrations.NewRunner(migrations.Options{Dir: "../../../migrations", DSN: cfg.DSN()}, logger.Discard())
	require.NoError(t, runner.Up())
	version, dirty, err := runner.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, runner.Close())

	bunDB, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })
	return db.New(bunDB)
}

func TestPostgresRecordStore(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	venue := musicalHop()
	require.NoError(t, store.CreateVenue(ctx, venue))
	fetched, err := store.GetVenueByID(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, venue, fetched)

	for i, name := range []string{"Guns N Petals", "Matt Quevado", "The Wild Sax Band"} {
		artist := artistNamed(name)
		require.NoError(t, store.CreateArtist(ctx, artist), fmt.Sprintf("artist %d", i))
	}

	found, err := store.SearchVenuesByName(ctx, "HOP")
	require.NoError(t, err)
	require.Len(t, found, 1)

	artists, err := store.SearchArtistsByName(ctx, "band")
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "The Wild Sax Band", artists[0].Name)

	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artists[0].ID, StartTime: start}))

	err = store.CreateShow(ctx, &models.Show{VenueID: venue.ID + 100, ArtistID: artists[0].ID, StartTime: start})
	assert.True(t, apperrors.IsReferential(err))

	assert.True(t, apperrors.IsReferential(store.DeleteVenue(ctx, venue.ID)))

	_, shows, err := store.GetVenueWithShows(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.True(t, start.Equal(shows[0].StartTime))
	assert.Equal(t, "The Wild Sax Band", shows[0].Artist.Name)
}
