package insights

import "sort"

// Scoring and filtering parameters. Confidence is deliberately capped below
// certainty: the method is heuristic frequency counting, not a calibrated
// statistical test.
const (
	maxConfidence   = 0.95
	delayBoost      = 0.10
	minOccurrences  = 2
	minConfidence   = 0.2
	maxPatterns     = 50
	topPatternCount = 10
)

// scoreRecords assigns a confidence to every accumulated record. Frozen
// records (sleep, weather) already carry a directly computed ratio and are
// left alone. The small flat boost rewards patterns with a measurable delay
// over same-instant co-occurrences.
func scoreRecords(records map[PatternKey]*PatternRecord, totalOutcomes int) {
	denominator := totalOutcomes
	if denominator < 1 {
		denominator = 1
	}
	for _, rec := range records {
		if rec.frozen {
			continue
		}
		confidence := float64(rec.Count) / float64(denominator)
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		if rec.AvgDelayMinutes > 0 {
			confidence += delayBoost
		}
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		rec.Confidence = confidence
	}
}

// rankPatterns keeps records clearing the occurrence and confidence floors,
// sorted descending by confidence and truncated to maxPatterns. Ties are
// broken by key so identical input always yields identical output.
func rankPatterns(records map[PatternKey]*PatternRecord) []Pattern {
	patterns := make([]Pattern, 0, len(records))
	for key, rec := range records {
		if rec.Count < minOccurrences || rec.Confidence < minConfidence {
			continue
		}
		patterns = append(patterns, Pattern{
			Key:             key,
			OccurrenceCount: rec.Count,
			Confidence:      rec.Confidence,
			AvgDelayMinutes: rec.AvgDelayMinutes,
			LastOccurred:    rec.LastOccurred,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		return lessKey(patterns[i].Key, patterns[j].Key)
	})

	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}
	return patterns
}

func lessKey(a, b PatternKey) bool {
	if a.AntecedentType != b.AntecedentType {
		return a.AntecedentType < b.AntecedentType
	}
	if a.AntecedentValue != b.AntecedentValue {
		return a.AntecedentValue < b.AntecedentValue
	}
	if a.OutcomeType != b.OutcomeType {
		return a.OutcomeType < b.OutcomeType
	}
	return a.OutcomeValue < b.OutcomeValue
}
