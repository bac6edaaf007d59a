package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry types. The engine treats "flare" entries as outcomes; every entry,
// regardless of type, is a candidate antecedent.
const (
	TypeFlare      = "flare"
	TypeMedication = "medication"
	TypeNote       = "note"
	TypeEnergy     = "energy"
	TypeFood       = "food"
	TypeActivity   = "activity"
)

// Flare severities, ordered mild < moderate < severe.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Environmental is an optional snapshot of conditions at the time of an entry.
type Environmental struct {
	WeatherCondition *string  `json:"weather_condition,omitempty"`
	TemperatureC     *float64 `json:"temperature_c,omitempty"`
	HumidityPct      *float64 `json:"humidity_pct,omitempty"`
}

// Physiological is an optional snapshot of body measurements at the time of
// an entry.
type Physiological struct {
	SleepHours       *float64 `json:"sleep_hours,omitempty"`
	RestingHeartRate *int     `json:"resting_heart_rate,omitempty"`
}

// Entry maps to the journal_entry table. Entries are immutable inputs to the
// pattern engine; only the journal CRUD API mutates them.
type Entry struct {
	ID            uuid.UUID      `json:"id"`
	UserID        string         `json:"user_id"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Type          string         `json:"type"`
	Severity      *string        `json:"severity,omitempty"`
	Symptoms      []string       `json:"symptoms,omitempty"`
	Triggers      []string       `json:"triggers,omitempty"`
	Note          *string        `json:"note,omitempty"`
	Environmental *Environmental `json:"environmental,omitempty"`
	Physiological *Physiological `json:"physiological,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsFlare reports whether the entry is a flare outcome event.
func (e *Entry) IsFlare() bool {
	return e.Type == TypeFlare
}

// SleepHours returns the recorded sleep duration and whether one is present.
func (e *Entry) SleepHours() (float64, bool) {
	if e.Physiological == nil || e.Physiological.SleepHours == nil {
		return 0, false
	}
	return *e.Physiological.SleepHours, true
}

// WeatherCondition returns the recorded weather condition and whether one is
// present.
func (e *Entry) WeatherCondition() (string, bool) {
	if e.Environmental == nil || e.Environmental.WeatherCondition == nil || *e.Environmental.WeatherCondition == "" {
		return "", false
	}
	return *e.Environmental.WeatherCondition, true
}

// NoteText returns the free-text note, or "" when absent.
func (e *Entry) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

var validTypes = map[string]bool{
	TypeFlare: true, TypeMedication: true, TypeNote: true,
	TypeEnergy: true, TypeFood: true, TypeActivity: true,
}

var validSeverities = map[string]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

// ValidType reports whether t is a known entry type.
func ValidType(t string) bool { return validTypes[t] }

// ValidSeverity reports whether s is a known severity.
func ValidSeverity(s string) bool { return validSeverities[s] }
