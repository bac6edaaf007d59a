package insights

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Antecedent and outcome type names used in pattern keys.
const (
	AntecedentTrigger = "trigger"
	AntecedentFood    = "food"
	AntecedentSymptom = "symptom"
	AntecedentSleep   = "sleep"
	AntecedentWeather = "weather"

	OutcomeFlare   = "flare"
	OutcomeSymptom = "symptom"

	// OutcomeAny is the outcome value for patterns not tied to a specific
	// severity (macro correlations, flares logged without a severity).
	OutcomeAny = "any"
)

// PatternKey is the natural key of a discovered pattern: a directed
// association from one antecedent value to one outcome value. A struct key is
// used instead of a separator-joined string so values containing arbitrary
// characters can never collide.
type PatternKey struct {
	AntecedentType  string `json:"antecedent_type"`
	AntecedentValue string `json:"antecedent_value"`
	OutcomeType     string `json:"outcome_type"`
	OutcomeValue    string `json:"outcome_value"`
}

// NewPatternKey builds a case-normalized pattern key.
func NewPatternKey(antecedentType, antecedentValue, outcomeType, outcomeValue string) PatternKey {
	return PatternKey{
		AntecedentType:  strings.ToLower(strings.TrimSpace(antecedentType)),
		AntecedentValue: strings.ToLower(strings.TrimSpace(antecedentValue)),
		OutcomeType:     strings.ToLower(strings.TrimSpace(outcomeType)),
		OutcomeValue:    strings.ToLower(strings.TrimSpace(outcomeValue)),
	}
}

// PatternRecord accumulates corroborating evidence for one key within a
// single engine run. Records are discarded at the end of the run unless they
// survive filtering, at which point they are persisted as Correlations.
type PatternRecord struct {
	Count           int
	AvgDelayMinutes float64
	LastOccurred    time.Time
	Confidence      float64

	// sum of observed delays, kept so AvgDelayMinutes stays an exact
	// arithmetic mean as observations arrive
	totalDelayMinutes float64

	// frozen records carry a directly computed confidence (sleep and weather
	// correlations) and are not rescored
	frozen bool
}

// observe folds one corroborating observation into the record.
func (r *PatternRecord) observe(delayMinutes float64, observedAt time.Time) {
	r.Count++
	r.totalDelayMinutes += delayMinutes
	r.AvgDelayMinutes = r.totalDelayMinutes / float64(r.Count)
	if observedAt.After(r.LastOccurred) {
		r.LastOccurred = observedAt
	}
}

// Pattern is a ranked survivor of one engine run, ready to persist.
type Pattern struct {
	Key             PatternKey
	OccurrenceCount int
	Confidence      float64
	AvgDelayMinutes float64
	LastOccurred    time.Time
}

// Correlation maps to the correlation table: one persisted pattern, uniquely
// keyed by (user_id, antecedent_type, antecedent_value, outcome_type,
// outcome_value). Rows from earlier runs that the latest run did not
// reconfirm are kept; consumers can compare computed_at against the newest
// value to filter them.
type Correlation struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	AntecedentType  string    `json:"antecedent_type"`
	AntecedentValue string    `json:"antecedent_value"`
	OutcomeType     string    `json:"outcome_type"`
	OutcomeValue    string    `json:"outcome_value"`
	OccurrenceCount int       `json:"occurrence_count"`
	Confidence      float64   `json:"confidence"`
	AvgDelayMinutes float64   `json:"avg_delay_minutes"`
	LastOccurred    time.Time `json:"last_occurred"`
	ComputedAt      time.Time `json:"computed_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TopPattern is one line of the analysis summary.
type TopPattern struct {
	Pattern     string `json:"pattern"`
	Confidence  string `json:"confidence"`
	Occurrences int    `json:"occurrences"`
	AvgDelay    string `json:"avgDelay"`
}

// Analysis statuses.
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
)

// AnalysisResult is the summary returned to the caller after a run.
type AnalysisResult struct {
	Status            string       `json:"status"`
	CorrelationsFound int          `json:"correlationsFound"`
	TopPatterns       []TopPattern `json:"topPatterns"`
	// PersistFailures counts survivors whose upsert failed; omitted when the
	// whole batch landed.
	PersistFailures int `json:"persistFailures,omitempty"`
}
