package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"translatix/backend/internal/logger"
	"translatix/backend/internal/service"
)

// DefaultSweepSpec runs the stale session sweep every ten minutes.
const DefaultSweepSpec = "@every 10m"

const sweepTimeout = time.Minute

// Scheduler periodically drops selections that were abandoned mid-flow.
type Scheduler struct {
	conversations service.ConversationService
	ttl           time.Duration
	spec          string
	cron          *cron.Cron
	cancelFunc    context.CancelFunc // cancels the current sweep
	mu            sync.Mutex         // protects cancelFunc
}

func New(conversations service.ConversationService, ttl time.Duration, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	return &Scheduler{
		conversations: conversations,
		ttl:           ttl,
		spec:          spec,
		cron:          cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", s.spec, err)
	}
	s.cron.Start()
	logger.Info("scheduler started", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok", "spec", s.spec, "ttl_ms", s.ttl.Milliseconds())
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok")
}

// Sweep deletes sessions idle for longer than the configured TTL.
func (s *Scheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	removed, err := s.conversations.ExpireSessions(ctx, s.ttl)
	if err != nil {
		logger.Error("session sweep failed", "module", "scheduler", "action", "sweep", "resource", "session", "result", "failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("stale sessions removed", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok", "count", removed)
	}
}
