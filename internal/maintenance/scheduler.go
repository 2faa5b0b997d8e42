package maintenance

import (
	"time"

	"github.com/davmont/quorum-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs periodic housekeeping: tags no question references
// anymore are pruned on a cron schedule.
type Scheduler struct {
	tagService services.TagServiceProvider
	schedule   cron.Schedule
	nextRun    time.Time
	ticker     *time.Ticker
	done       chan bool
}

// NewScheduler creates a scheduler from a standard cron expression.
func NewScheduler(tagService services.TagServiceProvider, cronExpr string) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		tagService: tagService,
		schedule:   schedule,
		nextRun:    schedule.Next(time.Now()),
		done:       make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop.
func (s *Scheduler) Run() {
	log.Info().Time("next_run", s.nextRun).Msg("Starting maintenance scheduler...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping maintenance scheduler.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRun) {
				s.pruneTags()
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.done <- true
}

func (s *Scheduler) pruneTags() {
	pruned, err := s.tagService.PruneUnused()
	if err != nil {
		log.Error().Err(err).Msg("Maintenance: failed to prune unused tags")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("Maintenance: removed unused tags")
	}
}
