package kansou

import (
	"encoding/json"
	"fmt"
)

// A Morpheme is one unit produced by the morphological analyzer, before any
// filtering. BaseForm and Reading hold the analyzer's placeholder ("*") when
// the dictionary has no value for them.
type Morpheme struct {
	Surface  string // The unit as written.
	POS      string // Primary grammatical category (e.g. 名詞).
	BaseForm string // Dictionary form or placeholder.
	Reading  string // Katakana reading or placeholder.
}

// A Token represents a retained, normalized morphological unit.
type Token struct {
	Surface string // The token as written, after canonicalization.
	Lemma   string // Dictionary base form; the surface form when unavailable.
	Reading string // Phonetic canonical form; empty when absent.
	POS     string // The token's part-of-speech tag.
	Term    string // The form selected by the normalization profile.
}

// Forms returns the token's distinct forms in candidate order: lemma,
// surface, reading. Empty forms are skipped.
func (t Token) Forms() []string {
	forms := make([]string, 0, 3)
	add := func(s string) {
		if s == "" {
			return
		}
		for _, f := range forms {
			if f == s {
				return
			}
		}
		forms = append(forms, s)
	}
	add(t.Lemma)
	add(t.Surface)
	add(t.Reading)
	return forms
}

// A TokenSet is the set of distinct canonical strings derived from a
// document's tokens. It is used for membership tests only.
type TokenSet map[string]struct{}

// NewTokenSet builds the set of every form of every token.
func NewTokenSet(tokens []Token) TokenSet {
	set := make(TokenSet, len(tokens)*2)
	for _, tok := range tokens {
		for _, f := range tok.Forms() {
			set[f] = struct{}{}
		}
	}
	return set
}

// Has reports whether word is in the set.
func (s TokenSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Intersects reports whether any of words is in the set.
func (s TokenSet) Intersects(words WordSet) bool {
	small, large := map[string]struct{}(s), map[string]struct{}(words)
	if len(small) > len(large) {
		small, large = large, small
	}
	for w := range small {
		if _, ok := large[w]; ok {
			return true
		}
	}
	return false
}

// CountIn returns how many members of words are in the set. Each word
// contributes at most once.
func (s TokenSet) CountIn(words WordSet) int {
	n := 0
	for w := range words {
		if _, ok := s[w]; ok {
			n++
		}
	}
	return n
}

// SentimentClass is the polarity label of a document.
type SentimentClass int

const (
	Neutral SentimentClass = iota
	Positive
	Negative
)

// SentimentClasses lists the labels in reporting order.
var SentimentClasses = []SentimentClass{Positive, Negative, Neutral}

var sentimentClassNames = map[SentimentClass]string{
	Positive: "Positive",
	Negative: "Negative",
	Neutral:  "Neutral",
}

// String returns the label name.
func (c SentimentClass) String() string {
	if name, ok := sentimentClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SentimentClass(%d)", int(c))
}

// MarshalJSON encodes the label as a JSON string.
func (c SentimentClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a label name.
func (c *SentimentClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for class, name := range sentimentClassNames {
		if name == s {
			*c = class
			return nil
		}
	}
	return fmt.Errorf("kansou: unknown sentiment class %q", s)
}

// SentimentResult is the lexicon match outcome for one document.
type SentimentResult struct {
	Positive int            // Count of tokens matching the positive set.
	Negative int            // Count of tokens matching the negative set.
	Label    SentimentClass // Positive, Negative or Neutral.
}

// DocumentSentiment ties a SentimentResult to its document.
type DocumentSentiment struct {
	Title      string
	DocumentID int
	Text       string
	SentimentResult
}

// SentimentSummary counts labels for one title.
type SentimentSummary struct {
	Title  string
	Counts map[SentimentClass]int // Always holds all three classes.
	Total  int
}

// TermScore is one ranked term of a TfidfResult.
type TermScore struct {
	Title string  // Work title (or document key for per-document ranking).
	Rank  int     // 1-based, descending by score.
	Term  string  // The n-gram text.
	Score float64 // Non-negative TF-IDF weight.
}

// AspectScore is the co-occurrence score of one aspect for one title.
type AspectScore struct {
	Title              string
	Aspect             string
	TriggeredDocuments int     // Documents mentioning any trigger word.
	PositiveMatches    int     // Summed positive eval word matches.
	NegativeMatches    int     // Summed negative eval word matches.
	NetScore           float64 // (positive - negative) / triggered; 0 when nothing triggered.
}

// TermCount is a token and its number of occurrences.
type TermCount struct {
	Title string
	Term  string
	Count int
}

// PairCount is an unordered token pair and its within-document
// co-occurrence count. First sorts before Second.
type PairCount struct {
	Title  string
	First  string
	Second string
	Count  int
}
