package kansou

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTitle is returned when a document names a title that was not
// configured.
var ErrUnknownTitle = errors.New("kansou: unknown title")

// TitleCorpus holds every retained document of one work title.
type TitleCorpus struct {
	Title     string
	Documents []AnalyzedDocument
}

// SuperDocument joins the terms of every document, in document order, with
// single spaces. A title without documents yields "".
func (tc *TitleCorpus) SuperDocument() string {
	var parts []string
	for _, d := range tc.Documents {
		parts = append(parts, d.Terms()...)
	}
	return strings.Join(parts, " ")
}

// Corpus groups analyzed documents by title. Titles keep the order they
// were configured in.
type Corpus struct {
	titles  []string
	byTitle map[string]*TitleCorpus
}

// NewCorpus returns an empty corpus for titles. Duplicate titles are
// collapsed to their first occurrence.
func NewCorpus(titles ...string) *Corpus {
	c := &Corpus{byTitle: make(map[string]*TitleCorpus, len(titles))}
	for _, t := range titles {
		if _, ok := c.byTitle[t]; ok {
			continue
		}
		c.titles = append(c.titles, t)
		c.byTitle[t] = &TitleCorpus{Title: t}
	}
	return c
}

// Add appends doc to its title's corpus.
func (c *Corpus) Add(doc AnalyzedDocument) error {
	tc, ok := c.byTitle[doc.Title]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTitle, doc.Title)
	}
	tc.Documents = append(tc.Documents, doc)
	return nil
}

// Titles returns the configured titles in order.
func (c *Corpus) Titles() []string {
	return append([]string(nil), c.titles...)
}

// Title returns the corpus of one title.
func (c *Corpus) Title(title string) (*TitleCorpus, error) {
	tc, ok := c.byTitle[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	return tc, nil
}

// TitleCorpora returns every title's corpus in configured order.
func (c *Corpus) TitleCorpora() []*TitleCorpus {
	out := make([]*TitleCorpus, len(c.titles))
	for i, t := range c.titles {
		out[i] = c.byTitle[t]
	}
	return out
}

// SuperDocument returns the space-joined term string of title.
func (c *Corpus) SuperDocument(title string) (string, error) {
	tc, err := c.Title(title)
	if err != nil {
		return "", err
	}
	return tc.SuperDocument(), nil
}

// Len returns the total number of documents.
func (c *Corpus) Len() int {
	n := 0
	for _, tc := range c.byTitle {
		n += len(tc.Documents)
	}
	return n
}

// Aggregate builds a Corpus from analyzed documents. Within a title,
// documents are ordered by ID regardless of the order they arrive in.
func Aggregate(titles []string, docs []AnalyzedDocument) (*Corpus, error) {
	sorted := append([]AnalyzedDocument(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	c := NewCorpus(titles...)
	for _, d := range sorted {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}
