// Package report persists analysis results as CSV, JSON, MessagePack or
// SQLite tables.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsawler/kansou"
)

// Bundle is the serializable form of a kansou.Report.
type Bundle struct {
	RunID              string               `json:"run_id" msgpack:"run_id"`
	CreatedAt          time.Time            `json:"created_at" msgpack:"created_at"`
	Titles             []string             `json:"titles" msgpack:"titles"`
	Terms              []kansou.TermScore   `json:"terms" msgpack:"terms"`
	DocumentTerms      []kansou.TermScore   `json:"document_terms,omitempty" msgpack:"document_terms,omitempty"`
	Sentiments         []SentimentRow       `json:"sentiments" msgpack:"sentiments"`
	SentimentSummaries []SummaryRow         `json:"sentiment_summaries" msgpack:"sentiment_summaries"`
	Aspects            []kansou.AspectScore `json:"aspects" msgpack:"aspects"`
	Frequencies        []kansou.TermCount   `json:"frequencies" msgpack:"frequencies"`
	Pairs              []kansou.PairCount   `json:"pairs" msgpack:"pairs"`
}

// SentimentRow flattens a kansou.DocumentSentiment.
type SentimentRow struct {
	Title      string `json:"title" msgpack:"title"`
	DocumentID int    `json:"document_id" msgpack:"document_id"`
	Text       string `json:"text" msgpack:"text"`
	Positive   int    `json:"positive" msgpack:"positive"`
	Negative   int    `json:"negative" msgpack:"negative"`
	Label      string `json:"label" msgpack:"label"`
}

// SummaryRow is one title's label distribution.
type SummaryRow struct {
	Title    string `json:"title" msgpack:"title"`
	Positive int    `json:"positive" msgpack:"positive"`
	Negative int    `json:"negative" msgpack:"negative"`
	Neutral  int    `json:"neutral" msgpack:"neutral"`
	Total    int    `json:"total" msgpack:"total"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// NewBundle flattens rep under runID.
func NewBundle(runID string, rep *kansou.Report) *Bundle {
	b := &Bundle{
		RunID:       runID,
		CreatedAt:   time.Now().UTC(),
		Titles:      rep.Titles,
		Frequencies: rep.Frequencies,
		Pairs:       rep.Pairs,
	}
	if rep.Terms != nil {
		b.Terms = rep.Terms.Ranked()
	}
	if rep.DocumentTerms != nil {
		b.DocumentTerms = rep.DocumentTerms.Ranked()
	}
	if rep.Aspects != nil {
		b.Aspects = rep.Aspects.Rows()
	}
	for _, s := range rep.Sentiments {
		b.Sentiments = append(b.Sentiments, SentimentRow{
			Title:      s.Title,
			DocumentID: s.DocumentID,
			Text:       s.Text,
			Positive:   s.Positive,
			Negative:   s.Negative,
			Label:      s.Label.String(),
		})
	}
	for _, s := range rep.SentimentSummaries {
		b.SentimentSummaries = append(b.SentimentSummaries, SummaryRow{
			Title:    s.Title,
			Positive: s.Counts[kansou.Positive],
			Negative: s.Counts[kansou.Negative],
			Neutral:  s.Counts[kansou.Neutral],
			Total:    s.Total,
		})
	}
	return b
}

// Write stores b in dir in each of formats and returns the files created.
func Write(dir string, b *Bundle, formats ...string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output dir: %w", err)
	}
	var files []string
	for _, f := range formats {
		var (
			written []string
			err     error
		)
		switch f {
		case "csv":
			written, err = writeCSV(dir, b)
		case "json":
			written, err = writeEncoded(filepath.Join(dir, "report.json"), func() ([]byte, error) {
				return json.MarshalIndent(b, "", "  ")
			})
		case "msgpack":
			written, err = writeEncoded(filepath.Join(dir, "report.msgpack"), func() ([]byte, error) {
				return msgpack.Marshal(b)
			})
		default:
			err = fmt.Errorf("unknown report format %q", f)
		}
		if err != nil {
			return files, err
		}
		files = append(files, written...)
	}
	return files, nil
}

func writeEncoded(path string, encode func() ([]byte, error)) ([]string, error) {
	data, err := encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", path, err)
	}
	return []string{path}, nil
}

// ReadMsgpack decodes a bundle written in the msgpack format.
func ReadMsgpack(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := msgpack.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return &b, nil
}

type table struct {
	name   string
	header []string
	rows   [][]string
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func tables(b *Bundle) []table {
	terms := table{name: "tfidf", header: []string{"title", "rank", "ngram", "score"}}
	for _, t := range b.Terms {
		terms.rows = append(terms.rows, []string{t.Title, strconv.Itoa(t.Rank), t.Term, ftoa(t.Score)})
	}
	sentiments := table{name: "sentiment", header: []string{"title", "document_id", "text", "positive", "negative", "label"}}
	for _, s := range b.Sentiments {
		sentiments.rows = append(sentiments.rows, []string{
			s.Title, strconv.Itoa(s.DocumentID), s.Text,
			strconv.Itoa(s.Positive), strconv.Itoa(s.Negative), s.Label,
		})
	}
	summaries := table{name: "sentiment_summary", header: []string{"title", "Positive", "Negative", "Neutral", "total"}}
	for _, s := range b.SentimentSummaries {
		summaries.rows = append(summaries.rows, []string{
			s.Title, strconv.Itoa(s.Positive), strconv.Itoa(s.Negative), strconv.Itoa(s.Neutral), strconv.Itoa(s.Total),
		})
	}
	freq := table{name: "frequency", header: []string{"title", "term", "count"}}
	for _, f := range b.Frequencies {
		freq.rows = append(freq.rows, []string{f.Title, f.Term, strconv.Itoa(f.Count)})
	}
	pairs := table{name: "pairs", header: []string{"title", "first", "second", "count"}}
	for _, p := range b.Pairs {
		pairs.rows = append(pairs.rows, []string{p.Title, p.First, p.Second, strconv.Itoa(p.Count)})
	}
	out := []table{terms, sentiments, summaries, aspectMatrix(b), freq, pairs}
	if len(b.DocumentTerms) > 0 {
		docTerms := table{name: "document_tfidf", header: []string{"document", "rank", "ngram", "score"}}
		for _, t := range b.DocumentTerms {
			docTerms.rows = append(docTerms.rows, []string{t.Title, strconv.Itoa(t.Rank), t.Term, ftoa(t.Score)})
		}
		out = append(out, docTerms)
	}
	return out
}

// aspectMatrix lays the aspect scores out as one row per title and one
// column per aspect.
func aspectMatrix(b *Bundle) table {
	t := table{name: "aspects", header: []string{"title"}}
	col := make(map[string]int)
	row := make(map[string]int)
	for _, a := range b.Aspects {
		if _, ok := col[a.Aspect]; !ok {
			col[a.Aspect] = len(t.header)
			t.header = append(t.header, a.Aspect)
		}
	}
	for _, a := range b.Aspects {
		i, ok := row[a.Title]
		if !ok {
			i = len(t.rows)
			row[a.Title] = i
			r := make([]string, len(t.header))
			r[0] = a.Title
			t.rows = append(t.rows, r)
		}
		t.rows[i][col[a.Aspect]] = ftoa(a.NetScore)
	}
	return t
}

func writeCSV(dir string, b *Bundle) ([]string, error) {
	var files []string
	for _, t := range tables(b) {
		path := filepath.Join(dir, t.name+".csv")
		if err := writeTable(path, t); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func writeTable(path string, t table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return err
	}
	if err := w.WriteAll(t.rows); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}
