package insights

import (
	"fmt"
	"testing"

	"github.com/flarelog/flarelog/internal/domain/journal"
)

func TestMineSleep_DeficitCorrelation(t *testing.T) {
	// Five flares with sleep data: 8, 8, 8, 5, 5. Mean 6.8, threshold 5.8,
	// two flares below it.
	hours := []float64{8, 8, 8, 5, 5}
	var flares []*journal.Entry
	for i, h := range hours {
		flares = append(flares, withSleep(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), h))
	}

	acc := newAccumulator()
	mineSleep(acc, flares)

	if acc.Len() != 1 {
		t.Fatalf("expected exactly one sleep pattern, got %d", acc.Len())
	}
	for key, rec := range acc.records {
		if key.AntecedentType != AntecedentSleep {
			t.Errorf("unexpected antecedent type %s", key.AntecedentType)
		}
		if key.AntecedentValue != "poor sleep (<5.8h)" {
			t.Errorf("unexpected antecedent value %q", key.AntecedentValue)
		}
		if key.OutcomeValue != OutcomeAny {
			t.Errorf("unexpected outcome value %s", key.OutcomeValue)
		}
		if rec.Count != 2 {
			t.Errorf("expected occurrence count 2, got %d", rec.Count)
		}
		if rec.Confidence != 0.4 {
			t.Errorf("expected confidence 0.4, got %f", rec.Confidence)
		}
		if !rec.frozen {
			t.Error("sleep pattern should be frozen")
		}
	}
}

func TestMineSleep_TooFewSamples(t *testing.T) {
	flares := []*journal.Entry{
		withSleep(flareEntry(testBase, journal.SeverityMild), 8),
		withSleep(flareEntry(testBase.AddDate(0, 0, 1), journal.SeverityMild), 4),
	}

	acc := newAccumulator()
	mineSleep(acc, flares)
	if acc.Len() != 0 {
		t.Errorf("expected no pattern with fewer than 3 sleep samples, got %d", acc.Len())
	}
}

func TestMineSleep_TooFewLowSleepFlares(t *testing.T) {
	// Mean of 8, 8, 8, 4 is 7; only one flare below 6.
	hours := []float64{8, 8, 8, 4}
	var flares []*journal.Entry
	for i, h := range hours {
		flares = append(flares, withSleep(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), h))
	}

	acc := newAccumulator()
	mineSleep(acc, flares)
	if acc.Len() != 0 {
		t.Errorf("expected no pattern with a single low-sleep flare, got %d", acc.Len())
	}
}

func TestMineSleep_IgnoresFlaresWithoutSleepData(t *testing.T) {
	flares := []*journal.Entry{
		withSleep(flareEntry(testBase, journal.SeverityMild), 8),
		withSleep(flareEntry(testBase.AddDate(0, 0, 1), journal.SeverityMild), 8),
		withSleep(flareEntry(testBase.AddDate(0, 0, 2), journal.SeverityMild), 5),
		withSleep(flareEntry(testBase.AddDate(0, 0, 3), journal.SeverityMild), 5),
		flareEntry(testBase.AddDate(0, 0, 4), journal.SeverityMild),
	}

	acc := newAccumulator()
	mineSleep(acc, flares)

	for _, rec := range acc.records {
		// 4 sleep-tagged flares, mean 6.5, threshold 5.5: two below.
		if rec.Confidence != 0.5 {
			t.Errorf("expected confidence 0.5 over sleep-tagged flares only, got %f", rec.Confidence)
		}
	}
}

func TestMineWeather_BelowThreshold(t *testing.T) {
	// Two rainy flares out of four weather-tagged ones: below the >= 3 bar.
	conditions := []string{"rain", "rain", "sunny", "cloudy"}
	var flares []*journal.Entry
	for i, cond := range conditions {
		flares = append(flares, withWeather(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), cond))
	}

	acc := newAccumulator()
	mineWeather(acc, flares)
	if acc.Len() != 0 {
		t.Errorf("expected no weather pattern below threshold, got %d", acc.Len())
	}
}

func TestMineWeather_Correlation(t *testing.T) {
	conditions := []string{"rain", "rain", "rain", "sunny"}
	var flares []*journal.Entry
	for i, cond := range conditions {
		flares = append(flares, withWeather(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), cond))
	}

	acc := newAccumulator()
	mineWeather(acc, flares)

	key := NewPatternKey(AntecedentWeather, "rain", OutcomeFlare, OutcomeAny)
	rec, ok := acc.records[key]
	if !ok {
		t.Fatal("expected rain pattern")
	}
	if rec.Count != 3 {
		t.Errorf("expected count 3, got %d", rec.Count)
	}
	if rec.Confidence != 0.75 {
		t.Errorf("expected confidence 0.75, got %f", rec.Confidence)
	}
	if !rec.LastOccurred.Equal(testBase.AddDate(0, 0, 2)) {
		t.Errorf("expected last occurrence of the latest rainy flare, got %v", rec.LastOccurred)
	}
}

func TestMineWeather_NormalizesConditionCase(t *testing.T) {
	conditions := []string{"Rain", "rain", "RAIN"}
	var flares []*journal.Entry
	for i, cond := range conditions {
		flares = append(flares, withWeather(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), cond))
	}

	acc := newAccumulator()
	mineWeather(acc, flares)

	key := NewPatternKey(AntecedentWeather, "rain", OutcomeFlare, OutcomeAny)
	rec, ok := acc.records[key]
	if !ok {
		t.Fatal("expected case-insensitive rain pattern")
	}
	if rec.Count != 3 {
		t.Errorf("expected count 3, got %d", rec.Count)
	}
	if rec.Confidence != maxConfidence {
		t.Errorf("expected confidence capped at %f, got %f", maxConfidence, rec.Confidence)
	}
}

func TestMineWeather_UniversalConditionCapped(t *testing.T) {
	// Every weather-tagged flare shares one condition: the raw ratio would be
	// 1.0, but persisted confidence must stay below certainty.
	var flares []*journal.Entry
	for i := 0; i < 4; i++ {
		flares = append(flares, withWeather(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), "rain"))
	}

	acc := newAccumulator()
	mineWeather(acc, flares)

	key := NewPatternKey(AntecedentWeather, "rain", OutcomeFlare, OutcomeAny)
	rec, ok := acc.records[key]
	if !ok {
		t.Fatal("expected rain pattern")
	}
	if rec.Confidence != maxConfidence {
		t.Errorf("expected confidence %f, got %f", maxConfidence, rec.Confidence)
	}
}

func TestSleepThresholdFormatting(t *testing.T) {
	// The threshold is embedded in the antecedent value to one decimal.
	hours := []float64{7.25, 7.25, 7.25, 5, 5}
	var flares []*journal.Entry
	for i, h := range hours {
		flares = append(flares, withSleep(flareEntry(testBase.AddDate(0, 0, i), journal.SeverityMild), h))
	}

	acc := newAccumulator()
	mineSleep(acc, flares)

	// Mean 6.35, threshold 5.35, formatted to one decimal.
	want := fmt.Sprintf("poor sleep (<%.1fh)", 6.35-1)
	found := false
	for key := range acc.records {
		if key.AntecedentValue == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected antecedent value %q, got %v", want, acc.records)
	}
}
