package kansou

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A PipelineOpt represents a setting that changes how a Pipeline runs.
//
// For example, it might raise the number of analysis workers:
//
//	p := kansou.NewPipeline(analyzer, lex, kansou.WithWorkers(8))
type PipelineOpt func(opts *PipelineOpts)

// PipelineOpts controls a Pipeline:
type PipelineOpts struct {
	Logger        *zap.Logger
	Workers       int             // Concurrent document analyses.
	Tfidf         TfidfOptions    // Title-level term ranking.
	DocumentTfidf bool            // If true, also rank terms per document.
	Sentiment     SentimentConfig // Polarity matching mode.
	FrequencyTopN int             // Terms kept per title; < 1 keeps all.
	PairTopN      int             // Pairs kept per title; < 1 keeps all.
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) PipelineOpt {
	return func(opts *PipelineOpts) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithWorkers bounds the number of documents analyzed at once.
func WithWorkers(n int) PipelineOpt {
	return func(opts *PipelineOpts) {
		if n > 0 {
			opts.Workers = n
		}
	}
}

// WithTfidfOptions sets the term ranking options.
func WithTfidfOptions(o TfidfOptions) PipelineOpt {
	return func(opts *PipelineOpts) {
		opts.Tfidf = o
	}
}

// WithDocumentTfidf can enable per-document term ranking.
func WithDocumentTfidf(include bool) PipelineOpt {
	return func(opts *PipelineOpts) {
		opts.DocumentTfidf = include
	}
}

// WithSentimentConfig sets the sentiment matching mode.
func WithSentimentConfig(c SentimentConfig) PipelineOpt {
	return func(opts *PipelineOpts) {
		opts.Sentiment = c
	}
}

// WithFrequencyTopN sets how many frequent terms and pairs are kept per title.
func WithFrequencyTopN(terms, pairs int) PipelineOpt {
	return func(opts *PipelineOpts) {
		opts.FrequencyTopN = terms
		opts.PairTopN = pairs
	}
}

func defaultPipelineOpts() PipelineOpts {
	return PipelineOpts{
		Logger:        zap.NewNop(),
		Workers:       runtime.GOMAXPROCS(0),
		Tfidf:         DefaultTfidfOptions(),
		Sentiment:     DefaultSentimentConfig(),
		FrequencyTopN: 20,
		PairTopN:      20,
	}
}

// Pipeline analyzes documents once and runs every scorer over the result.
// A Pipeline holds no per-run state; Run may be called concurrently.
type Pipeline struct {
	analyzer  MorphAnalyzer
	lexicon   *Lexicon
	term      *Tokenizer
	lemma     *Tokenizer
	candidate *Tokenizer
	opts      PipelineOpts
}

// NewPipeline creates a Pipeline according to the user-specified options.
func NewPipeline(analyzer MorphAnalyzer, lex *Lexicon, opts ...PipelineOpt) *Pipeline {
	base := defaultPipelineOpts()
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return &Pipeline{
		analyzer:  analyzer,
		lexicon:   lex,
		term:      NewTokenizer(analyzer, lex, UsingProfile(TermProfile)),
		lemma:     NewTokenizer(analyzer, lex, UsingProfile(LemmaProfile)),
		candidate: NewTokenizer(analyzer, lex, UsingProfile(CandidateProfile)),
		opts:      base,
	}
}

// Report is everything one run produces. Titles and rows within each table
// are in a deterministic order.
type Report struct {
	Titles             []string
	Documents          int // Retained documents.
	Discarded          int // Documents of one character or less.
	Failed             int // Retained documents the analyzer rejected.
	Terms              *TfidfResult
	DocumentTerms      *TfidfResult // nil unless per-document ranking is enabled.
	Sentiments         []DocumentSentiment
	SentimentSummaries []SentimentSummary
	Aspects            *AspectMatrix
	Frequencies        []TermCount
	Pairs              []PairCount
}

type analysis struct {
	term, lemma, candidate AnalyzedDocument
}

// Run analyzes documents grouped under titles and scores them. Documents
// naming a title outside titles are a configuration error.
func (p *Pipeline) Run(ctx context.Context, titles []string, documents []Document) (*Report, error) {
	start := time.Now()
	log := p.opts.Logger

	known := NewWordSet(titles...)
	for _, d := range documents {
		if !known.Has(d.Title) {
			return nil, fmt.Errorf("document %d: %w: %q", d.ID, ErrUnknownTitle, d.Title)
		}
	}
	kept, discarded := FilterDocuments(documents)

	results := make([]analysis, len(kept))
	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, doc := range kept {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			morphemes, err := AnalyzeText(p.analyzer, doc.Text)
			if err != nil {
				failed.Add(1)
				log.Debug("analysis failed",
					zap.String("title", doc.Title),
					zap.Int("document_id", doc.ID),
					zap.Error(err))
			}
			results[i] = analysis{
				term:      AnalyzedDocument{Document: doc, Tokens: p.term.Normalize(morphemes)},
				lemma:     AnalyzedDocument{Document: doc, Tokens: p.lemma.Normalize(morphemes)},
				candidate: AnalyzedDocument{Document: doc, Tokens: p.candidate.Normalize(morphemes)},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	termCorpus, lemmaCorpus, candidateCorpus := NewCorpus(titles...), NewCorpus(titles...), NewCorpus(titles...)
	for _, r := range results {
		// Titles were checked above, Add cannot fail.
		_ = termCorpus.Add(r.term)
		_ = lemmaCorpus.Add(r.lemma)
		_ = candidateCorpus.Add(r.candidate)
	}

	rep := &Report{
		Titles:    termCorpus.Titles(),
		Documents: len(kept),
		Discarded: discarded,
		Failed:    int(failed.Load()),
	}

	var sg errgroup.Group
	sg.Go(func() (err error) {
		rep.Terms, err = RankTerms(termCorpus, p.opts.Tfidf)
		return err
	})
	if p.opts.DocumentTfidf {
		sg.Go(func() (err error) {
			rep.DocumentTerms, err = RankDocumentTerms(termCorpus, p.opts.Tfidf)
			return err
		})
	}
	sg.Go(func() error {
		corpus := lemmaCorpus
		if p.opts.Sentiment.AllCandidates {
			// Adverbs (ワクワク) and auxiliaries (ナイ) carry polarity too.
			corpus = candidateCorpus
		}
		rep.Sentiments = NewSentimentClassifier(p.lexicon, p.opts.Sentiment).ClassifyCorpus(corpus)
		rep.SentimentSummaries = Summarize(rep.Titles, rep.Sentiments)
		return nil
	})
	sg.Go(func() error {
		rep.Aspects = NewAspectScorer(p.lexicon).ScoreAspects(candidateCorpus)
		return nil
	})
	sg.Go(func() error {
		rep.Frequencies = TermFrequencies(termCorpus, p.opts.FrequencyTopN)
		rep.Pairs = PairCooccurrence(termCorpus, p.opts.PairTopN)
		return nil
	})
	if err := sg.Wait(); err != nil {
		return nil, err
	}

	for _, tc := range termCorpus.TitleCorpora() {
		log.Info("title analyzed",
			zap.String("title", tc.Title),
			zap.Int("documents", len(tc.Documents)),
			zap.Int("top_terms", len(rep.Terms.TopTerms(tc.Title))))
	}
	log.Info("run complete",
		zap.Int("documents", rep.Documents),
		zap.Int("discarded", rep.Discarded),
		zap.Int("failed", rep.Failed),
		zap.Duration("elapsed", time.Since(start)))
	return rep, nil
}
