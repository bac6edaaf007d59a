package insights

import "time"

// accumulator is the shared keyed map all miners feed. One accumulator lives
// for exactly one engine run.
type accumulator struct {
	records map[PatternKey]*PatternRecord
}

func newAccumulator() *accumulator {
	return &accumulator{records: make(map[PatternKey]*PatternRecord)}
}

// Observe registers one corroborating observation for key, creating the
// record on first sight.
func (a *accumulator) Observe(key PatternKey, delayMinutes float64, observedAt time.Time) {
	rec, ok := a.records[key]
	if !ok {
		rec = &PatternRecord{}
		a.records[key] = rec
	}
	rec.observe(delayMinutes, observedAt)
}

// PutFrozen stores a record whose confidence was computed directly by its
// miner. Frozen records bypass the general scorer. A later PutFrozen for the
// same key overwrites the earlier one; the macro miners emit each key at most
// once per run.
func (a *accumulator) PutFrozen(key PatternKey, rec *PatternRecord) {
	rec.frozen = true
	a.records[key] = rec
}

func (a *accumulator) Len() int {
	return len(a.records)
}
