package insights

import (
	"time"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

// lookbackHorizonHours are the delay offsets searched for antecedents
// preceding each flare. For horizon h the search window is
// [flare − (h+6)h, flare − h·h): a fixed 6-hour-wide window whose right edge
// recedes by h hours. Windows overlap across horizons on purpose: an
// antecedent close to the flare lands in several windows and accumulates a
// higher count, which acts as recency weighting.
var lookbackHorizonHours = []int{0, 2, 6, 12, 24, 48, 72}

// windowWidth is the width of every lookback window.
const windowWidth = 6 * time.Hour

type lookbackWindow struct {
	start time.Time // inclusive
	end   time.Time // exclusive
}

func (w lookbackWindow) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// lookbackWindows returns the search windows for one outcome time, one per
// horizon.
func lookbackWindows(outcomeAt time.Time) []lookbackWindow {
	windows := make([]lookbackWindow, 0, len(lookbackHorizonHours))
	for _, h := range lookbackHorizonHours {
		offset := time.Duration(h) * time.Hour
		end := outcomeAt.Add(-offset)
		windows = append(windows, lookbackWindow{start: end.Add(-windowWidth), end: end})
	}
	return windows
}

// outcomeValue is the outcome side of every pattern keyed off a flare:
// its severity, or "any" when the flare was logged without one.
func outcomeValue(flare *journal.Entry) string {
	if flare.Severity != nil && *flare.Severity != "" {
		return *flare.Severity
	}
	return OutcomeAny
}

// mineTemporal searches every lookback window before the given flare and
// registers a pattern for each structured trigger and each note-mined token
// found inside. An antecedent falling into several overlapping windows is
// counted once per window. Delay is measured from the antecedent entry to the
// flare and is non-negative by window construction.
func mineTemporal(acc *accumulator, entries []*journal.Entry, flare *journal.Entry, extractor AntecedentExtractor) {
	outcome := outcomeValue(flare)
	for _, w := range lookbackWindows(flare.OccurredAt) {
		for _, e := range entries {
			if e == flare || !w.contains(e.OccurredAt) {
				continue
			}
			delay := flare.OccurredAt.Sub(e.OccurredAt).Minutes()

			for _, trigger := range e.Triggers {
				if trigger == "" {
					continue
				}
				key := NewPatternKey(AntecedentTrigger, trigger, OutcomeFlare, outcome)
				acc.Observe(key, delay, flare.OccurredAt)
			}

			for _, token := range extractor.Extract(e.NoteText()) {
				key := NewPatternKey(AntecedentFood, token, OutcomeFlare, outcome)
				acc.Observe(key, delay, flare.OccurredAt)
			}
		}
	}
}
