package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/peladeiro-app/api/config"
	"github.com/peladeiro-app/api/internal/auth"
	"github.com/peladeiro-app/api/internal/formation"
	"github.com/peladeiro-app/api/internal/game"
	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/lookup"
	"github.com/peladeiro-app/api/internal/mailer"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
	"github.com/peladeiro-app/api/routes"
)

// @title Peladeiro REST API
// @version 1.0
// @description Backend for organizing amateur sports matches.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{}, &user.UserPosition{}, &auth.PasswordReset{},
		&lookup.State{}, &lookup.City{}, &lookup.MatchType{}, &lookup.Position{},
		&match.Match{},
		&player.Player{}, &player.MatchParticipant{},
		&invite.Invite{},
		&game.Game{}, &game.Team{}, &game.TeamParticipant{},
		&formation.Slot{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := lookup.NewLookupRepository(db).Seed(); err != nil {
		log.Fatalf("Failed to seed lookup tables: %v", err)
	}

	var mail mailer.Mailer
	if cfg.Mail.AWSAccessKeyID != "" {
		ses, err := mailer.NewSESClient(cfg.Mail.AWSAccessKeyID, cfg.Mail.AWSSecretAccessKey, cfg.Mail.AWSRegion, cfg.Mail.Sender)
		if err != nil {
			log.Fatalf("Failed to initialize SES client: %v", err)
		}
		mail = ses
	} else {
		log.Println("AWS credentials not set, password recovery emails are disabled.")
	}

	r := routes.SetupRoutes(db, cfg, mail)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on port %s in %s mode", cfg.App.Port, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
