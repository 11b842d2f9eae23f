package chat

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Defaults for idle session expiry
const (
	DefaultSessionTTL = 2 * time.Hour
	DefaultSweepSpec  = "@every 5m"
)

// Sweeper periodically ends sessions whose browser has gone away
type Sweeper struct {
	store *Store
	ttl   time.Duration
	cron  *cron.Cron
}

// NewSweeper schedules Store.Sweep on the given cron spec
func NewSweeper(store *Store, spec string, ttl time.Duration) (*Sweeper, error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &Sweeper{
		store: store,
		ttl:   ttl,
		cron:  cron.New(),
	}

	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, fmt.Errorf("failed to schedule session sweep %q: %w", spec, err)
	}

	return s, nil
}

// Run performs one sweep
func (s *Sweeper) Run() {
	if removed := s.store.Sweep(s.ttl); removed > 0 {
		log.Printf("[CHAT]: Expired %d idle session(s), %d remaining", removed, s.store.Len())
	}
}

// Start begins the schedule
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
