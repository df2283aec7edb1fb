package solver

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/napolitain/battlesim/internal/logging"
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/solver/combat"
)

// BatchResult is one matchup's outcome tagged with its caller id
type BatchResult struct {
	ID string `json:"id"`
	combat.Outcome
}

// runAll simulates every matchup on the worker pool. Results are indexed
// like the input.
func (s *Service) runAll(ms []matchup, opts models.Options) []combat.Outcome {
	out := make([]combat.Outcome, len(ms))
	jobs := make(chan int, len(ms))
	var wg sync.WaitGroup

	for w := 0; w < min(s.workers, len(ms)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = ms[i].run(opts)
			}
		}()
	}
	for i := range ms {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// Batch runs independent matchups with shared options. Every matchup is
// resolved before any runs, so a bad entry fails the whole batch. Results
// come back in input order.
func (s *Service) Batch(matchups []models.Matchup, opts models.Options) ([]BatchResult, error) {
	if len(matchups) == 0 {
		return nil, models.Validationf("matchups must be a non-empty array")
	}
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	resolved := make([]matchup, len(matchups))
	for i := range matchups {
		m, err := s.resolve(matchups[i].SideA, matchups[i].SideB, opts.Ruleset)
		if err != nil {
			return nil, fmt.Errorf("matchup %d (%s): %w", i, matchups[i].ID, err)
		}
		resolved[i] = m
	}

	outcomes := s.runAll(resolved, opts)
	results := make([]BatchResult, len(matchups))
	for i := range outcomes {
		results[i] = BatchResult{ID: matchups[i].ID, Outcome: outcomes[i]}
	}

	s.log.Info("batch finished",
		logging.RunID(),
		zap.String("ruleset", opts.Ruleset.String()),
		zap.Int("matchups", len(matchups)),
	)
	return results, nil
}
