package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/repo"
)

type service interface {
	Sync(ctx context.Context) (int, error)
}

// Cron drives the periodic issue refresh when REFRESH_CRON is set.
type Cron struct {
	cfg  config.Config
	log  zerolog.Logger
	svc  service
	repo *repo.Repository // nil without a DB; refresh then runs unlocked
	c    *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service, r *repo.Repository) *Cron {
	loc, _ := time.LoadLocation(cfg.TZ)
	c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
	cr := &Cron{cfg: cfg, log: log, svc: svc, repo: r, c: c}
	if _, err := c.AddFunc(cfg.RefreshCron, cr.refresh); err != nil {
		log.Error().Err(err).Str("schedule", cfg.RefreshCron).Msg("cron: bad refresh schedule, refresh disabled")
	}
	return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute); defer cancel()
	if cr.repo != nil {
		const lockKey int64 = 727272
		ok, err := cr.repo.TryAdvisoryLock(ctx, lockKey)
		if err != nil { cr.log.Error().Err(err).Msg("cron: lock error"); return }
		if !ok { cr.log.Info().Msg("cron: refresh already running elsewhere"); return }
		defer func() { _ = cr.repo.AdvisoryUnlock(context.Background(), lockKey) }()
	}
	cr.log.Info().Msg("cron: issue refresh")
	if _, err := cr.svc.Sync(ctx); err != nil { cr.log.Error().Err(err).Msg("cron: refresh failed") }
}
