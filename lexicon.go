package kansou

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyAspect is returned when an aspect has an empty trigger or
// evaluation word set.
var ErrEmptyAspect = errors.New("kansou: aspect word set is empty")

// A WordSet is an immutable set of lexicon words.
type WordSet map[string]struct{}

// NewWordSet builds a WordSet, ignoring blank entries.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Has reports whether word is in the set.
func (s WordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// An Aspect is a thematic category: trigger words signal that a document
// discusses it, evaluation words carry the polarity.
type Aspect struct {
	Name     string
	Triggers WordSet
	Positive WordSet
	Negative WordSet
}

// Lexicon holds every word list the scorers consume. It is built once and
// never mutated, so a single *Lexicon can be shared by concurrent workers.
type Lexicon struct {
	stopwords WordSet
	positive  WordSet
	negative  WordSet
	canonical map[string]string
	aspects   []Aspect
}

// IsStopword reports whether word is a stopword.
func (l *Lexicon) IsStopword(word string) bool { return l.stopwords.Has(word) }

// IsPositive reports whether word is in the positive polarity set.
func (l *Lexicon) IsPositive(word string) bool { return l.positive.Has(word) }

// IsNegative reports whether word is in the negative polarity set.
func (l *Lexicon) IsNegative(word string) bool { return l.negative.Has(word) }

// Canonical maps a surface variant (e.g. an abbreviation) to its full form.
// Words without a mapping are returned unchanged.
func (l *Lexicon) Canonical(word string) string {
	if to, ok := l.canonical[word]; ok {
		return to
	}
	return word
}

// Aspects returns the configured aspects in declaration order.
func (l *Lexicon) Aspects() []Aspect { return l.aspects }

// Aspect returns the named aspect.
func (l *Lexicon) Aspect(name string) (Aspect, bool) {
	for _, a := range l.aspects {
		if a.Name == name {
			return a, true
		}
	}
	return Aspect{}, false
}

// Stopwords returns the stopword set.
func (l *Lexicon) Stopwords() WordSet { return l.stopwords }

// ExternalLexicon is the YAML/JSON layout of a lexicon file.
type ExternalLexicon struct {
	BuiltinStopwords []string          `yaml:"builtin_stopwords,omitempty" json:"builtin_stopwords,omitempty"`
	Stopwords        []string          `yaml:"stopwords,omitempty" json:"stopwords,omitempty"`
	Positive         []string          `yaml:"positive,omitempty" json:"positive,omitempty"`
	Negative         []string          `yaml:"negative,omitempty" json:"negative,omitempty"`
	Canonical        map[string]string `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Aspects          []AspectEntry     `yaml:"aspects,omitempty" json:"aspects,omitempty"`
}

// AspectEntry is one aspect in a lexicon file.
type AspectEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers" json:"triggers"`
	Positive []string `yaml:"positive" json:"positive"`
	Negative []string `yaml:"negative" json:"negative"`
}

type aspectDraft struct {
	triggers, positive, negative []string
}

// LexiconBuilder assembles a Lexicon. It is the only way to construct one,
// so every pipeline stage reads the same tables.
type LexiconBuilder struct {
	stopwords   []string
	positive    []string
	negative    []string
	canonical   map[string]string
	aspectOrder []string
	aspects     map[string]*aspectDraft
	err         error
}

// NewLexiconBuilder returns an empty builder.
func NewLexiconBuilder() *LexiconBuilder {
	return &LexiconBuilder{
		canonical: make(map[string]string),
		aspects:   make(map[string]*aspectDraft),
	}
}

// Stopwords adds stopwords.
func (b *LexiconBuilder) Stopwords(words ...string) *LexiconBuilder {
	b.stopwords = append(b.stopwords, words...)
	return b
}

// Positive adds positive polarity words.
func (b *LexiconBuilder) Positive(words ...string) *LexiconBuilder {
	b.positive = append(b.positive, words...)
	return b
}

// Negative adds negative polarity words.
func (b *LexiconBuilder) Negative(words ...string) *LexiconBuilder {
	b.negative = append(b.negative, words...)
	return b
}

// Canonicalize maps the surface variant from to the canonical form to.
func (b *LexiconBuilder) Canonicalize(from, to string) *LexiconBuilder {
	b.canonical[from] = to
	return b
}

// Aspect adds (or extends) an aspect. Aspects keep the order in which they
// were first declared.
func (b *LexiconBuilder) Aspect(name string, triggers, positive, negative []string) *LexiconBuilder {
	d, ok := b.aspects[name]
	if !ok {
		d = &aspectDraft{}
		b.aspects[name] = d
		b.aspectOrder = append(b.aspectOrder, name)
	}
	d.triggers = append(d.triggers, triggers...)
	d.positive = append(d.positive, positive...)
	d.negative = append(d.negative, negative...)
	return b
}

// WithBuiltinStopwords adds the stopword list bundled for lang (ISO 639-1).
func (b *LexiconBuilder) WithBuiltinStopwords(lang string) *LexiconBuilder {
	words, err := BuiltinStopwords(lang)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	return b.Stopwords(words...)
}

// Merge adds the contents of an external lexicon.
func (b *LexiconBuilder) Merge(ext ExternalLexicon) *LexiconBuilder {
	for _, lang := range ext.BuiltinStopwords {
		b.WithBuiltinStopwords(lang)
	}
	b.Stopwords(ext.Stopwords...)
	b.Positive(ext.Positive...)
	b.Negative(ext.Negative...)
	for from, to := range ext.Canonical {
		b.Canonicalize(from, to)
	}
	for _, a := range ext.Aspects {
		b.Aspect(a.Name, a.Triggers, a.Positive, a.Negative)
	}
	return b
}

// LoadExternal reads a YAML or JSON lexicon file and merges it.
func (b *LexiconBuilder) LoadExternal(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}
	var ext ExternalLexicon
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("error parsing lexicon %s: %w", path, err)
	}
	b.Merge(ext)
	return nil
}

// Build validates the accumulated tables and returns the Lexicon.
func (b *LexiconBuilder) Build() (*Lexicon, error) {
	if b.err != nil {
		return nil, b.err
	}
	lex := &Lexicon{
		stopwords: NewWordSet(b.stopwords...),
		positive:  NewWordSet(b.positive...),
		negative:  NewWordSet(b.negative...),
		canonical: make(map[string]string, len(b.canonical)),
		aspects:   make([]Aspect, 0, len(b.aspectOrder)),
	}
	for from, to := range b.canonical {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			return nil, fmt.Errorf("kansou: blank canonicalization entry %q -> %q", from, to)
		}
		lex.canonical[from] = to
	}
	for _, name := range b.aspectOrder {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("kansou: aspect without a name")
		}
		d := b.aspects[name]
		a := Aspect{
			Name:     name,
			Triggers: NewWordSet(d.triggers...),
			Positive: NewWordSet(d.positive...),
			Negative: NewWordSet(d.negative...),
		}
		switch {
		case len(a.Triggers) == 0:
			return nil, fmt.Errorf("%w: %s triggers", ErrEmptyAspect, name)
		case len(a.Positive) == 0:
			return nil, fmt.Errorf("%w: %s positive", ErrEmptyAspect, name)
		case len(a.Negative) == 0:
			return nil, fmt.Errorf("%w: %s negative", ErrEmptyAspect, name)
		}
		lex.aspects = append(lex.aspects, a)
	}
	return lex, nil
}

// LoadLexicon builds a Lexicon from a single YAML or JSON file.
func LoadLexicon(path string) (*Lexicon, error) {
	b := NewLexiconBuilder()
	if err := b.LoadExternal(path); err != nil {
		return nil, err
	}
	return b.Build()
}

// LoadLexiconWithExternal builds the default lexicon and merges the file at
// externalPath into it. An empty path yields the default lexicon.
func LoadLexiconWithExternal(externalPath string) (*Lexicon, error) {
	b := DefaultLexiconBuilder()
	if externalPath != "" {
		if err := b.LoadExternal(externalPath); err != nil {
			return nil, fmt.Errorf("failed to load external lexicon: %w", err)
		}
	}
	return b.Build()
}
