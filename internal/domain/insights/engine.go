package insights

import (
	"github.com/rs/zerolog"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

// MinEntries is the minimum history size below which a run returns
// insufficient_data without mining anything.
const MinEntries = 10

// Engine is the batch pattern-discovery pipeline. One call to Mine performs a
// full recomputation over a user's entire entry history: it never merges with
// previously persisted state, so re-running on identical input yields
// identical patterns. The engine holds no per-run state and is safe to share
// across invocations; each invocation covers exactly one user.
type Engine struct {
	extractor AntecedentExtractor
	logger    zerolog.Logger
}

func NewEngine(extractor AntecedentExtractor, logger zerolog.Logger) *Engine {
	if extractor == nil {
		extractor = NewLexicalExtractor()
	}
	return &Engine{extractor: extractor, logger: logger}
}

// Mine runs the temporal join, note mining, symptom co-occurrence, and the
// sleep/weather correlators over the given history, scores the accumulated
// patterns, and returns the ranked survivors. Entries are read-only inputs;
// the engine never mutates them.
func (e *Engine) Mine(entries []*journal.Entry) []Pattern {
	var flares []*journal.Entry
	for _, entry := range entries {
		if entry.IsFlare() {
			flares = append(flares, entry)
		}
	}

	acc := newAccumulator()

	for _, flare := range flares {
		mineTemporal(acc, entries, flare, e.extractor)
		mineCooccurrence(acc, flare)
	}
	mineSleep(acc, flares)
	mineWeather(acc, flares)

	e.logger.Debug().
		Int("entries", len(entries)).
		Int("flares", len(flares)).
		Int("candidates", acc.Len()).
		Msg("mining complete")

	scoreRecords(acc.records, len(flares))
	return rankPatterns(acc.records)
}
