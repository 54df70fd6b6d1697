package kansou

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// placeholder is the value the IPA dictionary uses for a missing feature.
const placeholder = "*"

// A MorphAnalyzer splits text into morphemes. Implementations must be safe
// for concurrent use.
type MorphAnalyzer interface {
	Analyze(text string) ([]Morpheme, error)
}

// IPA feature columns.
const (
	featurePOS      = 0
	featureBaseForm = 6
	featureReading  = 7
)

// KagomeAnalyzer is a MorphAnalyzer backed by kagome and the IPA dictionary.
type KagomeAnalyzer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeAnalyzer loads the IPA dictionary.
func NewKagomeAnalyzer() (*KagomeAnalyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create kagome tokenizer: %w", err)
	}
	return &KagomeAnalyzer{t: t}, nil
}

// Analyze runs kagome over text. A panic inside the analyzer is returned as
// an error.
func (a *KagomeAnalyzer) Analyze(text string) (morphemes []Morpheme, err error) {
	defer func() {
		if r := recover(); r != nil {
			morphemes, err = nil, fmt.Errorf("kagome: analysis failed: %v", r)
		}
	}()
	for _, tok := range a.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		features := tok.Features()
		morphemes = append(morphemes, Morpheme{
			Surface:  tok.Surface,
			POS:      featureAt(features, featurePOS),
			BaseForm: featureAt(features, featureBaseForm),
			Reading:  featureAt(features, featureReading),
		})
	}
	return morphemes, nil
}

func featureAt(features []string, i int) string {
	if i < len(features) {
		return features[i]
	}
	return placeholder
}

// OutputForm selects which form of a unit a profile records as Token.Term.
type OutputForm int

const (
	SurfaceForm OutputForm = iota
	LemmaForm
)

// A Profile is a set of retention rules for the normalizer.
type Profile struct {
	Name             string
	PartsOfSpeech    WordSet
	Output           OutputForm
	MinSurfaceLength int // Units whose surface has fewer runes are dropped.
}

// The three normalization profiles used by the pipeline.
var (
	// TermProfile feeds term weighting and frequency counts.
	TermProfile = Profile{
		Name:             "term",
		PartsOfSpeech:    NewWordSet("名詞", "動詞", "形容詞", "感動詞"),
		Output:           SurfaceForm,
		MinSurfaceLength: 2,
	}
	// LemmaProfile feeds lemma-only sentiment.
	LemmaProfile = Profile{
		Name:             "lemma",
		PartsOfSpeech:    NewWordSet("名詞", "動詞", "形容詞", "感動詞"),
		Output:           LemmaForm,
		MinSurfaceLength: 2,
	}
	// CandidateProfile feeds aspect scoring and all-candidate sentiment. It
	// keeps single-character units because several trigger words (絆, 旅)
	// and polarity words (神) are one kanji long.
	CandidateProfile = Profile{
		Name:          "candidate",
		PartsOfSpeech: NewWordSet("名詞", "形容詞", "動詞", "形状詞", "副詞", "形容動詞", "助動詞"),
		Output:        LemmaForm,
	}
)

// Tokenizer turns raw text into the normalized token sequence of a profile.
// It holds no mutable state and can be shared between goroutines.
type Tokenizer struct {
	analyzer MorphAnalyzer
	lexicon  *Lexicon
	profile  Profile
}

type TokenizerOptFunc func(*Tokenizer)

// UsingProfile replaces the whole retention profile.
func UsingProfile(p Profile) TokenizerOptFunc {
	return func(t *Tokenizer) {
		t.profile = p
	}
}

// UsingPartsOfSpeech sets the accepted primary POS tags.
func UsingPartsOfSpeech(pos ...string) TokenizerOptFunc {
	return func(t *Tokenizer) {
		t.profile.PartsOfSpeech = NewWordSet(pos...)
	}
}

// UsingOutputForm sets the form recorded as Token.Term.
func UsingOutputForm(f OutputForm) TokenizerOptFunc {
	return func(t *Tokenizer) {
		t.profile.Output = f
	}
}

// UsingMinSurfaceLength drops units whose surface is shorter than n runes.
// Zero disables the filter.
func UsingMinSurfaceLength(n int) TokenizerOptFunc {
	return func(t *Tokenizer) {
		t.profile.MinSurfaceLength = n
	}
}

// NewTokenizer returns a Tokenizer using TermProfile unless an option says
// otherwise.
func NewTokenizer(analyzer MorphAnalyzer, lex *Lexicon, opts ...TokenizerOptFunc) *Tokenizer {
	t := &Tokenizer{
		analyzer: analyzer,
		lexicon:  lex,
		profile:  TermProfile,
	}
	for _, applyOpt := range opts {
		applyOpt(t)
	}
	return t
}

// Profile returns the retention profile in use.
func (t *Tokenizer) Profile() Profile { return t.profile }

// Tokenize analyzes text and returns its retained tokens. Texts shorter
// than two characters, and texts the analyzer rejects, yield no tokens.
func (t *Tokenizer) Tokenize(text string) []Token {
	morphemes, err := AnalyzeText(t.analyzer, text)
	if err != nil {
		return nil
	}
	return t.Normalize(morphemes)
}

// Normalize applies the profile's retention rules to analyzer output.
func (t *Tokenizer) Normalize(morphemes []Morpheme) []Token {
	var out []Token
	for _, m := range morphemes {
		if !t.profile.PartsOfSpeech.Has(m.POS) {
			continue
		}
		if t.profile.MinSurfaceLength > 0 && utf8.RuneCountInString(m.Surface) < t.profile.MinSurfaceLength {
			continue
		}
		lemma := m.BaseForm
		if lemma == "" || lemma == placeholder {
			lemma = m.Surface
		}
		reading := m.Reading
		if reading == placeholder {
			reading = ""
		}
		if t.isStopword(m.Surface, lemma, reading) {
			continue
		}
		tok := Token{
			Surface: t.lexicon.Canonical(m.Surface),
			Lemma:   t.lexicon.Canonical(lemma),
			POS:     m.POS,
		}
		if reading != "" {
			tok.Reading = t.lexicon.Canonical(reading)
		}
		tok.Term = tok.Surface
		if t.profile.Output == LemmaForm {
			tok.Term = tok.Lemma
		}
		out = append(out, tok)
	}
	return out
}

func (t *Tokenizer) isStopword(forms ...string) bool {
	for _, f := range forms {
		if f != "" && t.lexicon.IsStopword(f) {
			return true
		}
	}
	return false
}

// ErrNoAnalyzer is returned by AnalyzeText when no analyzer is configured.
var ErrNoAnalyzer = errors.New("kansou: no morphological analyzer")

// AnalyzeText normalizes text to NFKC and runs the analyzer once. Text
// shorter than two characters, before or after normalization, yields no
// morphemes and no error. NFKC can expand one character (㌔) into several.
func AnalyzeText(analyzer MorphAnalyzer, text string) ([]Morpheme, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 2 {
		return nil, nil
	}
	text = NormalizeText(text)
	if utf8.RuneCountInString(text) < 2 {
		return nil, nil
	}
	if analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	return analyzer.Analyze(text)
}
