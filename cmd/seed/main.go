package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/directory/db"
	"fyyur/internal/directory/service"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/utils"
)

// seed loads the demo directory. It does nothing when venues already exist
// unless force is set.
func seed(ctx context.Context, store *db.DB, svc *service.Service, force bool, log *logger.Logger) error {
	existing, err := store.ListVenues(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !force {
		log.Info("SEED", fmt.Sprintf("%d venues already present, skipping (use -force to seed anyway)", len(existing)))
		return nil
	}

	venueIDs := make([]int64, 0, len(demoVenues))
	for _, in := range demoVenues {
		venue, err := svc.CreateVenue(ctx, in)
		if err != nil {
			return fmt.Errorf("venue %q: %w", in.Name, err)
		}
		venueIDs = append(venueIDs, venue.ID)
	}

	artistIDs := make([]int64, 0, len(demoArtists))
	for _, in := range demoArtists {
		artist, err := svc.CreateArtist(ctx, in)
		if err != nil {
			return fmt.Errorf("artist %q: %w", in.Name, err)
		}
		artistIDs = append(artistIDs, artist.ID)
	}

	for _, s := range demoShows {
		start, err := utils.ParseTime(s.start)
		if err != nil {
			return err
		}
		_, err = svc.CreateShow(ctx, models.ShowInput{
			VenueID:   venueIDs[s.venue],
			ArtistID:  artistIDs[s.artist],
			StartTime: start,
		})
		if err != nil {
			return fmt.Errorf("show at %s: %w", s.start, err)
		}
	}

	log.Info("SEED", fmt.Sprintf("Seeded %d venues, %d artists and %d shows", len(venueIDs), len(artistIDs), len(demoShows)))
	return nil
}

func main() {
	force := flag.Bool("force", false, "seed even when venues already exist")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx := context.Background()
	bunDB, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if cfg.Database.Driver == database.DriverPostgres {
		runner := migrations.NewRunner(migrations.Options{Dir: cfg.Migrations.Dir, DSN: cfg.Database.DSN()}, log)
		err = runner.Up()
		runner.Close()
	} else {
		err = database.CreateSchema(ctx, bunDB)
	}
	if err != nil {
		log.Fatal("MIGRATION", err.Error())
	}

	store := db.New(bunDB)
	svc := service.NewService(store, kafka.Nop{}, log)
	if err := seed(ctx, store, svc, *force, log); err != nil {
		log.Fatal("SEED", err.Error())
	}
}
