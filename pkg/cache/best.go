package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/observability"
	"github.com/matzehuels/permsample/pkg/perm"
)

// keyTypeBest labels best-solution entries in cache hooks.
const keyTypeBest = "best"

// Best is a cached best known solution.
type Best struct {
	Solution  []int     `json:"solution"`
	Cost      float64   `json:"cost"`
	Algorithm string    `json:"algorithm"`
	RunID     string    `json:"run_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the solution is a permutation of n labels.
func (b *Best) Validate(n int) error {
	return perm.Validate(b.Solution, n)
}

// LoadBest returns the best solution stored under key. Entries that fail
// to decode are treated as misses.
func LoadBest(ctx context.Context, c Cache, key string) (*Best, bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	if !ok {
		hooks.OnCacheMiss(ctx, keyTypeBest)
		return nil, false, nil
	}
	var best Best
	if err := json.Unmarshal(data, &best); err != nil {
		hooks.OnCacheMiss(ctx, keyTypeBest)
		return nil, false, nil
	}
	hooks.OnCacheHit(ctx, keyTypeBest)
	return &best, true, nil
}

// SaveBest stores best under key, unconditionally.
func SaveBest(ctx context.Context, c Cache, key string, best *Best, ttl time.Duration) error {
	if best == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil best solution")
	}
	if best.UpdatedAt.IsZero() {
		best.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(best)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyTypeBest, len(data))
	return nil
}

// SaveIfBetter stores candidate only if no entry exists or candidate has a
// strictly lower cost. It reports whether it wrote.
func SaveIfBetter(ctx context.Context, c Cache, key string, candidate *Best, ttl time.Duration) (bool, error) {
	current, ok, err := LoadBest(ctx, c, key)
	if err != nil {
		return false, err
	}
	if ok && current.Cost <= candidate.Cost {
		return false, nil
	}
	if err := SaveBest(ctx, c, key, candidate, ttl); err != nil {
		return false, err
	}
	return true, nil
}
