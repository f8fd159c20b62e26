/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManivannanSenthilrajan/issueboard/internal/adapters/gitlab"
	"github.com/ManivannanSenthilrajan/issueboard/internal/adapters/openai"
	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	boardhttp "github.com/ManivannanSenthilrajan/issueboard/internal/http"
	"github.com/ManivannanSenthilrajan/issueboard/internal/jobs"
	"github.com/ManivannanSenthilrajan/issueboard/internal/logger"
	"github.com/ManivannanSenthilrajan/issueboard/internal/repo"
	"github.com/ManivannanSenthilrajan/issueboard/internal/service"
	"github.com/ManivannanSenthilrajan/issueboard/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB is optional; without DB_DSN the dashboard serves from memory only
	var repository *repo.Repository
	if cfg.DBDSN != "" {
		db := repo.MustOpen(ctx, cfg, log)
		defer db.Close()
		repository = repo.NewRepository(db, log)
	}

	// Adapters
	gl := gitlab.NewClient(cfg, log)
	llm := openai.NewClient(cfg, log)

	// Stores
	commentary := store.NewCommentary(cfg.CommentaryFile, log)
	activity := store.NewActivity(cfg.ActivityFile, log)

	svc := service.New(cfg, log, gl, repository, commentary, activity, llm)

	// Initial fetch; a failure is logged and the server starts empty
	{
		ctx2, cancel2 := context.WithTimeout(ctx, 2*time.Minute)
		if n, err := svc.Sync(ctx2); err != nil {
			log.Error().Err(err).Msg("initial sync failed; starting with empty snapshot")
		} else {
			log.Info().Int("issues", n).Msg("initial sync done")
		}
		cancel2()
	}

	router := boardhttp.NewRouter(cfg, log, svc)

	// Cron
	if cfg.RefreshCron != "" {
		cron := jobs.NewCron(cfg, log, svc, repository)
		cron.Start()
		defer cron.Stop()
	}

	// graceful shutdown
	errCh := make(chan error, 1)
	go func() { errCh <- router.Run(cfg.HTTPAddr) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("shutting down...")
	case err := <-errCh:
		if err != nil { log.Error().Err(err).Msg("http server error") }
	}

	time.Sleep(500 * time.Millisecond)
}
