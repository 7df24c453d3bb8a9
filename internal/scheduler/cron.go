package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/dealerhub/invsync/internal/domain"
	"github.com/dealerhub/invsync/internal/usecase"
)

// Cron fires the inventory import on a recurring schedule. Overlapping runs
// are rejected by the use case's job lock; the scheduler just logs them.
type Cron struct {
	spec    string
	cron    *cron.Cron
	imports *usecase.ImportUC
}

func New(spec string, loc *time.Location, imports *usecase.ImportUC) *Cron {
	return &Cron{
		spec:    spec,
		cron:    cron.New(cron.WithLocation(loc)),
		imports: imports,
	}
}

// Start registers the import job and begins the schedule.
func (s *Cron) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		rep, err := s.imports.Run(ctx)
		switch {
		case errors.Is(err, domain.ErrImportRunning):
			log.Warn().Msg("scheduled import skipped: previous run still active")
		case err != nil:
			// Run already logged the cause; the report carries it for the admin surface.
		default:
			log.Debug().Int("processed", rep.Processed).Msg("scheduled import done")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("import scheduler started")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Cron) Stop() {
	<-s.cron.Stop().Done()
}
