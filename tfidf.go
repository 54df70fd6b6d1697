package kansou

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TfidfOptions controls term extraction and weighting.
type TfidfOptions struct {
	TopN      int    // Terms kept per row.
	MinN      int    // Smallest n-gram size.
	MaxN      int    // Largest n-gram size.
	Delimiter string // Joins the tokens of an n-gram.
	Lowercase bool
	SmoothIDF bool // idf = ln((1+n)/(1+df)) + 1 instead of ln(n/df) + 1.
	Normalize bool // Scale each row to unit L2 norm.
}

// DefaultTfidfOptions returns unigram+bigram weighting with smoothed idf and
// L2-normalized rows.
func DefaultTfidfOptions() TfidfOptions {
	return TfidfOptions{
		TopN:      10,
		MinN:      1,
		MaxN:      2,
		Delimiter: " ",
		Lowercase: true,
		SmoothIDF: true,
		Normalize: true,
	}
}

func (o TfidfOptions) validate() error {
	if o.MinN < 1 || o.MaxN < o.MinN {
		return fmt.Errorf("kansou: invalid n-gram range %d..%d", o.MinN, o.MaxN)
	}
	return nil
}

// Vectorizer learns a vocabulary and idf weights from a set of
// space-separated documents.
type Vectorizer struct {
	opts       TfidfOptions
	vocabulary []string
	index      map[string]int
	idf        []float64
}

// NewVectorizer returns an unfitted Vectorizer.
func NewVectorizer(opts TfidfOptions) *Vectorizer {
	if opts.Delimiter == "" {
		opts.Delimiter = " "
	}
	return &Vectorizer{opts: opts}
}

// Vocabulary returns the fitted terms in lexicographic order. A term's
// position is its column in the weight matrix.
func (v *Vectorizer) Vocabulary() []string { return v.vocabulary }

// IDF returns the fitted inverse document frequencies.
func (v *Vectorizer) IDF() []float64 { return v.idf }

// Terms splits doc on whitespace and returns its n-grams, smallest size
// first.
func (v *Vectorizer) Terms(doc string) []string {
	if v.opts.Lowercase {
		doc = strings.ToLower(doc)
	}
	words := strings.Fields(doc)
	var terms []string
	for n := v.opts.MinN; n <= v.opts.MaxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], v.opts.Delimiter))
		}
	}
	return terms
}

// FitTransform fits the vocabulary to docs and returns the documents ×
// vocabulary weight matrix. It returns nil when no document yields a term.
func (v *Vectorizer) FitTransform(docs []string) (*mat.Dense, error) {
	if err := v.opts.validate(); err != nil {
		return nil, err
	}
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.Terms(doc) {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
		}
	}

	v.vocabulary = make([]string, 0, len(df))
	for term := range df {
		v.vocabulary = append(v.vocabulary, term)
	}
	sort.Strings(v.vocabulary)
	v.index = make(map[string]int, len(v.vocabulary))
	for i, term := range v.vocabulary {
		v.index[term] = i
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocabulary))
	for i, term := range v.vocabulary {
		d := float64(df[term])
		if v.opts.SmoothIDF {
			v.idf[i] = math.Log((1+n)/(1+d)) + 1
		} else {
			v.idf[i] = math.Log(n/d) + 1
		}
	}

	if len(docs) == 0 || len(v.vocabulary) == 0 {
		return nil, nil
	}
	weights := mat.NewDense(len(docs), len(v.vocabulary), nil)
	for i := range docs {
		row := weights.RawRowView(i)
		for term, c := range counts[i] {
			j := v.index[term]
			row[j] = float64(c) * v.idf[j]
		}
		if v.opts.Normalize {
			if norm := floats.Norm(row, 2); norm > 0 {
				floats.Scale(1/norm, row)
			}
		}
	}
	return weights, nil
}

// TfidfResult is a row × term weight matrix with per-row rankings. Rows are
// titles for RankTerms and documents for RankDocumentTerms.
type TfidfResult struct {
	Rows       []string
	Vocabulary []string
	Weights    *mat.Dense // nil when the vocabulary is empty.
	top        map[string][]TermScore
}

// Score returns the weight of term in row, or 0.
func (r *TfidfResult) Score(row, term string) float64 {
	if r.Weights == nil {
		return 0
	}
	i := indexOf(r.Rows, row)
	j := sort.SearchStrings(r.Vocabulary, term)
	if i < 0 || j >= len(r.Vocabulary) || r.Vocabulary[j] != term {
		return 0
	}
	return r.Weights.At(i, j)
}

// TopTerms returns the ranked terms of row.
func (r *TfidfResult) TopTerms(row string) []TermScore { return r.top[row] }

// Ranked returns every ranked term, rows in order.
func (r *TfidfResult) Ranked() []TermScore {
	var out []TermScore
	for _, row := range r.Rows {
		out = append(out, r.top[row]...)
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// rank weights docs and keeps the TopN positive-weight terms per row.
// Equal weights are ordered by term so ranks are a strict total order.
func rank(rows, docs []string, opts TfidfOptions) (*TfidfResult, error) {
	v := NewVectorizer(opts)
	weights, err := v.FitTransform(docs)
	if err != nil {
		return nil, err
	}
	res := &TfidfResult{
		Rows:       rows,
		Vocabulary: v.Vocabulary(),
		Weights:    weights,
		top:        make(map[string][]TermScore, len(rows)),
	}
	if weights == nil {
		return res, nil
	}
	for i, row := range rows {
		var scores []TermScore
		for j, w := range weights.RawRowView(i) {
			if w > 0 {
				scores = append(scores, TermScore{Title: row, Term: res.Vocabulary[j], Score: w})
			}
		}
		sort.SliceStable(scores, func(a, b int) bool {
			if scores[a].Score != scores[b].Score {
				return scores[a].Score > scores[b].Score
			}
			return scores[a].Term < scores[b].Term
		})
		if opts.TopN > 0 && len(scores) > opts.TopN {
			scores = scores[:opts.TopN]
		}
		for k := range scores {
			scores[k].Rank = k + 1
		}
		res.top[row] = scores
	}
	return res, nil
}

// RankTerms weights each title's super-document against the other titles.
func RankTerms(c *Corpus, opts TfidfOptions) (*TfidfResult, error) {
	titles := c.Titles()
	docs := make([]string, len(titles))
	for i, tc := range c.TitleCorpora() {
		docs[i] = tc.SuperDocument()
	}
	return rank(titles, docs, opts)
}

// DocumentKey names a document row in a per-document TfidfResult.
func DocumentKey(doc Document) string {
	return fmt.Sprintf("%s#%d", doc.Title, doc.ID)
}

// RankDocumentTerms weights every document against all others, across
// titles. Rows are keyed by DocumentKey.
func RankDocumentTerms(c *Corpus, opts TfidfOptions) (*TfidfResult, error) {
	var rows, docs []string
	for _, tc := range c.TitleCorpora() {
		for _, d := range tc.Documents {
			rows = append(rows, DocumentKey(d.Document))
			docs = append(docs, strings.Join(d.Terms(), " "))
		}
	}
	return rank(rows, docs, opts)
}
