// Command admin runs maintenance operations against the marketplace stores.
//
//	admin delete-booking <id>
//	admin seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/you/agrigo/pkg/auth"
	"github.com/you/agrigo/pkg/config"
	"github.com/you/agrigo/pkg/db"
	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/marketplace-api/internal/chatstore"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
	"github.com/you/agrigo/services/marketplace-api/internal/seed"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin delete-booking <id> | admin seed")
	os.Exit(2)
}

func main() {
	switch {
	case len(os.Args) == 3 && os.Args[1] == "delete-booking":
	case len(os.Args) == 2 && os.Args[1] == "seed":
	default:
		usage()
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	obs.InitLogger(obs.LogOptions{Service: "marketplace-admin", Env: cfg.Env, Level: cfg.LogLevel})
	log := obs.GetLogger()

	gdb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close(gdb)
	if err := repository.MigrateAll(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	// the API holds the bolt file lock while running
	chats, err := chatstore.Open(cfg.ChatDBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ChatDBPath).Msg("open chat store")
	}
	defer chats.Close()

	ctx := context.Background()
	bookings := repository.NewBookingRepo(gdb)
	resources := repository.NewResourceRepo(gdb)
	svc := service.NewBookingSvc(bookings, resources, chats, nil)

	if os.Args[1] == "seed" {
		s := &seed.Seeder{
			Auth:      service.NewAuthSvc(repository.NewUserRepo(gdb), auth.NewIssuer(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())),
			Resources: service.NewResourceSvc(resources, bookings),
			Bookings:  svc,
		}
		rep, err := s.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("seed")
			os.Exit(1)
		}
		log.Info().Strs("skipped", rep.Skipped).Msg("demo login farmer1@example.com / FarmerPass123, provider1@example.com / ProviderPass123")
		return
	}

	id := os.Args[2]
	if err := svc.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("delete booking")
		os.Exit(1)
	}
	log.Info().Str("booking_id", id).Msg("booking deleted")
}
