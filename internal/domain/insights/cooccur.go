package insights

import (
	"strings"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

// mineCooccurrence registers a zero-delay pattern for every ordered pair of
// distinct symptoms on one flare. Both directions of each pair are emitted,
// so (A→B) and (B→A) always carry equal counts.
func mineCooccurrence(acc *accumulator, flare *journal.Entry) {
	symptoms := distinctSymptoms(flare.Symptoms)
	if len(symptoms) < 2 {
		return
	}
	for _, a := range symptoms {
		for _, b := range symptoms {
			if a == b {
				continue
			}
			key := NewPatternKey(AntecedentSymptom, a, OutcomeSymptom, b)
			acc.Observe(key, 0, flare.OccurredAt)
		}
	}
}

// distinctSymptoms lowercases the symptom list and drops blanks and
// duplicates, preserving first-seen order. Symptom sets are unordered, so
// duplicates are user noise rather than extra evidence.
func distinctSymptoms(symptoms []string) []string {
	seen := make(map[string]bool, len(symptoms))
	var out []string
	for _, s := range symptoms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
