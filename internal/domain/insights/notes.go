package insights

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// AntecedentExtractor recovers candidate antecedent tokens (foods,
// activities) from free-text notes. The engine only depends on this
// interface, so the lexical matcher below can be swapped for a real
// tokenizer/classifier without touching the accumulator contract.
type AntecedentExtractor interface {
	Extract(note string) []string
}

// consumptionPattern captures verb-plus-object phrasing users write when they
// describe exposures in prose ("ate some chocolate", "drank a coffee").
var consumptionPattern = regexp.MustCompile(`\b(?:ate|had|drank|tried)\s+(?:(?:a|an|some|the)\s+)?([a-z]+)`)

// triggerVocabulary is a fixed list of common dietary and chemical triggers
// matched as whole tokens anywhere in a note.
var triggerVocabulary = map[string]bool{
	"chocolate": true, "coffee": true, "caffeine": true, "alcohol": true,
	"wine": true, "beer": true, "cheese": true, "dairy": true, "milk": true,
	"gluten": true, "wheat": true, "sugar": true, "nuts": true, "peanuts": true,
	"shellfish": true, "soy": true, "eggs": true, "msg": true, "nitrates": true,
	"citrus": true, "tomato": true, "histamine": true, "pollen": true,
	"fragrance": true, "perfume": true, "smoke": true,
}

// noteStopWords are tokens the consumption pattern captures that never name a
// trigger.
var noteStopWords = map[string]bool{
	"and": true, "the": true, "some": true, "that": true, "this": true,
	"with": true, "for": true, "too": true, "very": true, "really": true,
	"lots": true, "much": true, "more": true, "bit": true, "been": true,
	"lunch": true, "dinner": true, "breakfast": true, "today": true,
}

// LexicalExtractor is the default AntecedentExtractor: fixed regex plus a
// fixed vocabulary. Deliberately simple pattern matching, not NLP.
type LexicalExtractor struct{}

func NewLexicalExtractor() *LexicalExtractor {
	return &LexicalExtractor{}
}

// Extract returns the distinct candidate tokens mentioned in the note,
// lowercased, stop-words removed, length > 2. The returned slice is sorted so
// runs over identical input are deterministic.
func (x *LexicalExtractor) Extract(note string) []string {
	if note == "" {
		return nil
	}
	lower := strings.ToLower(note)

	found := make(map[string]bool)
	for _, m := range consumptionPattern.FindAllStringSubmatch(lower, -1) {
		if token := m[1]; keepToken(token) {
			found[token] = true
		}
	}

	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if triggerVocabulary[token] && keepToken(token) {
			found[token] = true
		}
	}

	if len(found) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(found))
	for t := range found {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

func keepToken(token string) bool {
	return len(token) > 2 && !noteStopWords[token]
}
