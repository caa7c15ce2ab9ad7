package server

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/common/log"
)

// Scheduler periodically reprocesses memos whose keywords are missing.
type Scheduler struct {
	cron      *cron.Cron
	extractor *KeywordExtractor
}

func NewScheduler(spec string, loc *time.Location, extractor *KeywordExtractor) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		extractor: extractor,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, errors.Wrapf(err, "invalid reprocess spec %q", spec)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	processed, err := s.extractor.Reprocess(ctx)
	if err != nil {
		log.Warn("scheduled reprocess failed", zap.Error(err))
		return
	}
	log.Debug("scheduled reprocess finished", zap.Int("processed", processed))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
