package audit

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Retention prunes audit rows older than the configured age.
type Retention struct {
	store Store
	keep  time.Duration
	log   zerolog.Logger
	now   func() time.Time
	cron  *cron.Cron
}

func NewRetention(store Store, days int, log zerolog.Logger) *Retention {
	return &Retention{
		store: store,
		keep:  time.Duration(days) * 24 * time.Hour,
		log:   log.With().Str("component", "audit_retention").Logger(),
		now:   time.Now,
	}
}

// Sweep deletes everything created before now minus the retention period.
func (r *Retention) Sweep(ctx context.Context) (int64, error) {
	if r.keep <= 0 {
		return 0, nil
	}
	cutoff := r.now().Add(-r.keep)
	n, err := r.store.DeleteAuditLogsBefore(ctx, cutoff)
	if err != nil {
		r.log.Error().Err(err).Msg("audit retention sweep failed")
		return 0, err
	}
	r.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("audit retention sweep")
	return n, nil
}

// Start schedules Sweep with a standard five-field cron spec.
func (r *Retention) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = r.Sweep(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	return nil
}

// Stop waits for a running sweep to finish.
func (r *Retention) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
