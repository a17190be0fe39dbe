package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permsample/pkg/search"
)

// heartbeatInterval is how often a running search logs its status.
const heartbeatInterval = 10 * time.Second

// searchLogger logs the progress of a sampling batch: the initial best,
// every improvement and a periodic heartbeat. It is safe for concurrent
// use; improved is called from the sampler goroutines.
type searchLogger struct {
	logger  *log.Logger
	tracker *search.ProgressTracker[int]
	timeout time.Duration
	start   time.Time

	mu       sync.Mutex
	lastBest int
	lastLog  time.Time
}

func newSearchLogger(l *log.Logger, t *search.ProgressTracker[int], timeout time.Duration) *searchLogger {
	return &searchLogger{logger: l, tracker: t, timeout: timeout, start: time.Now(), lastBest: -1}
}

// seeded logs the best solution taken from the cache.
func (s *searchLogger) seeded(cost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Infof("Cached best: %d", cost)
	s.lastBest = cost
	s.lastLog = time.Now()
}

// improved is the samplers' OnImproved callback.
func (s *searchLogger) improved(best search.SolutionCostPair[int]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Callbacks from different workers may arrive out of order.
	if s.lastBest >= 0 && best.Cost >= s.lastBest {
		return
	}
	if s.lastBest < 0 {
		s.logger.Infof("Initial: %d", best.Cost)
	} else {
		s.logger.Infof("Improved: %d (↓%d)", best.Cost, s.lastBest-best.Cost)
	}
	s.lastBest = best.Cost
	s.lastLog = time.Now()
}

// heartbeat logs the current best every heartbeatInterval without an
// improvement, until ctx is done.
func (s *searchLogger) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.beat()
		}
	}
}

func (s *searchLogger) beat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastLog) < heartbeatInterval {
		return
	}
	elapsed := time.Since(s.start).Truncate(time.Second)
	cost, ok := s.tracker.Cost()
	switch {
	case !ok:
		s.logger.Infof("Sampling... %v elapsed", elapsed)
	case s.timeout > 0:
		s.logger.Infof("Sampling... %v/%v elapsed, best %d", elapsed, s.timeout, cost)
	default:
		s.logger.Infof("Sampling... %v elapsed, best %d", elapsed, cost)
	}
	s.lastLog = time.Now()
}
