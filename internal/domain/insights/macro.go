package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

// Thresholds for the two pre-defined macro correlations.
const (
	minSleepSamples   = 3
	minLowSleepFlares = 2
	sleepDeficitHours = 1.0
	minWeatherMatches = 3
)

// cappedRatio is the directly computed confidence of a macro correlation:
// the share of the tagged population matching the condition, subject to the
// same ceiling the general scorer enforces. Even a universal match never
// reaches certainty.
func cappedRatio(matched, population int) float64 {
	ratio := float64(matched) / float64(population)
	if ratio > maxConfidence {
		ratio = maxConfidence
	}
	return ratio
}

// mineSleep detects a sleep-deficit correlation across all flares carrying a
// sleep reading. It emits at most one pattern per run, with a directly
// computed confidence (share of sleep-tagged flares that were short on
// sleep); the general scorer does not touch it.
func mineSleep(acc *accumulator, flares []*journal.Entry) {
	var withSleep []*journal.Entry
	var total float64
	for _, f := range flares {
		if hours, ok := f.SleepHours(); ok {
			withSleep = append(withSleep, f)
			total += hours
		}
	}
	if len(withSleep) < minSleepSamples {
		return
	}

	avg := total / float64(len(withSleep))
	threshold := avg - sleepDeficitHours

	var lowCount int
	var lastOccurred time.Time
	for _, f := range withSleep {
		hours, _ := f.SleepHours()
		if hours < threshold {
			lowCount++
			if f.OccurredAt.After(lastOccurred) {
				lastOccurred = f.OccurredAt
			}
		}
	}
	if lowCount < minLowSleepFlares {
		return
	}

	key := NewPatternKey(
		AntecedentSleep,
		fmt.Sprintf("poor sleep (<%.1fh)", threshold),
		OutcomeFlare,
		OutcomeAny,
	)
	acc.PutFrozen(key, &PatternRecord{
		Count:        lowCount,
		Confidence:   cappedRatio(lowCount, len(withSleep)),
		LastOccurred: lastOccurred,
	})
}

// mineWeather tallies flares per distinct weather condition and emits one
// pattern for every condition seen on at least minWeatherMatches flares.
// Confidence is the condition's share of all weather-tagged flares.
func mineWeather(acc *accumulator, flares []*journal.Entry) {
	counts := make(map[string]int)
	lastSeen := make(map[string]time.Time)
	var totalWithWeather int

	for _, f := range flares {
		cond, ok := f.WeatherCondition()
		if !ok {
			continue
		}
		cond = strings.ToLower(strings.TrimSpace(cond))
		totalWithWeather++
		counts[cond]++
		if f.OccurredAt.After(lastSeen[cond]) {
			lastSeen[cond] = f.OccurredAt
		}
	}

	for cond, count := range counts {
		if count < minWeatherMatches {
			continue
		}
		key := NewPatternKey(AntecedentWeather, cond, OutcomeFlare, OutcomeAny)
		acc.PutFrozen(key, &PatternRecord{
			Count:        count,
			Confidence:   cappedRatio(count, totalWithWeather),
			LastOccurred: lastSeen[cond],
		})
	}
}
