package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/quesadillascandy/candy-backend/internal/config"
	"github.com/quesadillascandy/candy-backend/internal/scaninbox"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

// Scheduler runs the periodic background jobs: alert recomputation keeps the
// cache warm, and the scan inbox poll drains the Drive folder.
type Scheduler struct {
	cron      *cron.Cron
	inventory *service.InventoryService
	inbox     *scaninbox.Inbox
	cfg       *config.Config
}

func New(cfg *config.Config, inventory *service.InventoryService, inbox *scaninbox.Inbox) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		inventory: inventory,
		inbox:     inbox,
		cfg:       cfg,
	}
}

func (s *Scheduler) Start() {
	log.Info().Msg("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Alerts.RecomputeCron, s.recomputeAlerts); err != nil {
		log.Error().Err(err).Str("spec", s.cfg.Alerts.RecomputeCron).Msg("failed to schedule alert recompute")
	}

	if s.inbox != nil {
		if _, err := s.cron.AddFunc(s.cfg.ScanInbox.PollCron, s.pollInbox); err != nil {
			log.Error().Err(err).Str("spec", s.cfg.ScanInbox.PollCron).Msg("failed to schedule inbox poll")
		}
	}

	s.cron.Start()
}

// Stop halts scheduling. Jobs already running finish on their own contexts.
func (s *Scheduler) Stop() {
	log.Info().Msg("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) recomputeAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	alerts, err := s.inventory.RecomputeAlerts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert recompute failed")
		return
	}
	log.Info().Int("alerts", len(alerts)).Msg("alerts recomputed")
}

func (s *Scheduler) pollInbox() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.inbox.Poll(ctx); err != nil {
		log.Error().Err(err).Msg("scan inbox poll failed")
	}
}
