package insights

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

// Run stages, logged as the analysis progresses. insufficient_data is
// terminal: no later stage runs.
const (
	stageFetching   = "fetching"
	stageMining     = "mining"
	stageScoring    = "scoring"
	stagePersisting = "persisting"
	stageDone       = "done"
)

type Service struct {
	entries      journal.EntryRepository
	correlations CorrelationRepository
	engine       *Engine
	logger       zerolog.Logger
}

func NewService(entries journal.EntryRepository, correlations CorrelationRepository, engine *Engine, logger zerolog.Logger) *Service {
	return &Service{
		entries:      entries,
		correlations: correlations,
		engine:       engine,
		logger:       logger,
	}
}

// Analyze runs a full pattern-discovery batch for one user: fetch the
// complete history, mine and score patterns, persist the survivors, and
// return a compact summary. A failed history read aborts the run with
// nothing persisted. Individual upsert failures are logged and counted but
// do not abort the batch.
func (s *Service) Analyze(ctx context.Context, userID string) (*AnalysisResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	log := s.logger.With().Str("user_id", userID).Logger()

	log.Debug().Str("stage", stageFetching).Msg("analysis")
	entries, err := s.entries.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch entry history: %w", err)
	}

	if len(entries) < MinEntries {
		log.Info().Int("entries", len(entries)).Msg("insufficient data for analysis")
		return &AnalysisResult{
			Status:            StatusInsufficientData,
			CorrelationsFound: 0,
			TopPatterns:       []TopPattern{},
		}, nil
	}

	log.Debug().Str("stage", stageMining).Int("entries", len(entries)).Msg("analysis")
	patterns := s.engine.Mine(entries)
	log.Debug().Str("stage", stageScoring).Int("patterns", len(patterns)).Msg("analysis")

	log.Debug().Str("stage", stagePersisting).Msg("analysis")
	computedAt := time.Now().UTC()
	failures := 0
	for _, p := range patterns {
		c := &Correlation{
			UserID:          userID,
			AntecedentType:  p.Key.AntecedentType,
			AntecedentValue: p.Key.AntecedentValue,
			OutcomeType:     p.Key.OutcomeType,
			OutcomeValue:    p.Key.OutcomeValue,
			OccurrenceCount: p.OccurrenceCount,
			Confidence:      p.Confidence,
			AvgDelayMinutes: p.AvgDelayMinutes,
			LastOccurred:    p.LastOccurred,
			ComputedAt:      computedAt,
		}
		if err := s.correlations.Upsert(ctx, c); err != nil {
			failures++
			log.Error().Err(err).
				Str("antecedent", p.Key.AntecedentValue).
				Str("outcome", p.Key.OutcomeValue).
				Msg("failed to persist correlation")
		}
	}

	result := &AnalysisResult{
		Status:            StatusOK,
		CorrelationsFound: len(patterns),
		TopPatterns:       summarize(patterns),
		PersistFailures:   failures,
	}

	log.Info().Str("stage", stageDone).
		Int("correlations", result.CorrelationsFound).
		Int("persist_failures", failures).
		Msg("analysis complete")
	return result, nil
}

// ListCorrelations returns a user's persisted patterns ordered by descending
// confidence.
func (s *Service) ListCorrelations(ctx context.Context, userID string, limit, offset int) ([]*Correlation, int, error) {
	return s.correlations.ListByUser(ctx, userID, limit, offset)
}

// summarize formats the top patterns for the analysis response.
func summarize(patterns []Pattern) []TopPattern {
	n := len(patterns)
	if n > topPatternCount {
		n = topPatternCount
	}
	top := make([]TopPattern, 0, n)
	for _, p := range patterns[:n] {
		top = append(top, TopPattern{
			Pattern:     fmt.Sprintf("%s → %s", p.Key.AntecedentValue, p.Key.OutcomeValue),
			Confidence:  fmt.Sprintf("%d%%", int(math.Round(p.Confidence*100))),
			Occurrences: p.OccurrenceCount,
			AvgDelay:    formatDelay(p.AvgDelayMinutes),
		})
	}
	return top
}

func formatDelay(avgDelayMinutes float64) string {
	if avgDelayMinutes <= 0 {
		return "immediate"
	}
	return fmt.Sprintf("%dh", int(math.Round(avgDelayMinutes/60)))
}
