package kansou

// SentimentClassifier labels documents by counting polarity lexicon matches.
type SentimentClassifier struct {
	lexicon *Lexicon
	config  SentimentConfig
}

// SentimentConfig configures sentiment classification.
type SentimentConfig struct {
	// AllCandidates matches every token form (lemma, surface, reading)
	// instead of the lemma alone.
	AllCandidates bool
}

// DefaultSentimentConfig returns the all-candidate configuration.
func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{AllCandidates: true}
}

// NewSentimentClassifier creates a classifier over lex.
func NewSentimentClassifier(lex *Lexicon, config SentimentConfig) *SentimentClassifier {
	return &SentimentClassifier{lexicon: lex, config: config}
}

func (sc *SentimentClassifier) candidates(tok Token) []string {
	if sc.config.AllCandidates {
		return tok.Forms()
	}
	return []string{tok.Lemma}
}

// Classify counts the tokens matching the negative and positive sets. Each
// token counts at most once: negative is checked over all of its candidate
// forms before positive. Counts are raw, not normalized by length.
func (sc *SentimentClassifier) Classify(tokens []Token) SentimentResult {
	var res SentimentResult
	for _, tok := range tokens {
		switch sc.polarity(sc.candidates(tok)) {
		case Negative:
			res.Negative++
		case Positive:
			res.Positive++
		}
	}
	res.Label = LabelFor(res.Positive, res.Negative)
	return res
}

func (sc *SentimentClassifier) polarity(forms []string) SentimentClass {
	for _, f := range forms {
		if sc.lexicon.IsNegative(f) && !sc.lexicon.IsStopword(f) {
			return Negative
		}
	}
	for _, f := range forms {
		if sc.lexicon.IsPositive(f) && !sc.lexicon.IsStopword(f) {
			return Positive
		}
	}
	return Neutral
}

// LabelFor maps match counts to a label. Equal counts, 0/0 included, are
// Neutral.
func LabelFor(positive, negative int) SentimentClass {
	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}

// ClassifyCorpus classifies every document, titles in corpus order and
// documents in ID order.
func (sc *SentimentClassifier) ClassifyCorpus(c *Corpus) []DocumentSentiment {
	var out []DocumentSentiment
	for _, tc := range c.TitleCorpora() {
		for _, d := range tc.Documents {
			out = append(out, DocumentSentiment{
				Title:           tc.Title,
				DocumentID:      d.ID,
				Text:            d.Text,
				SentimentResult: sc.Classify(d.Tokens),
			})
		}
	}
	return out
}

// Summarize counts labels per title. Every title in titles is present and
// every class has an entry, even when zero.
func Summarize(titles []string, results []DocumentSentiment) []SentimentSummary {
	byTitle := make(map[string]*SentimentSummary, len(titles))
	out := make([]SentimentSummary, len(titles))
	for i, t := range titles {
		out[i] = SentimentSummary{Title: t, Counts: make(map[SentimentClass]int, len(SentimentClasses))}
		for _, class := range SentimentClasses {
			out[i].Counts[class] = 0
		}
		byTitle[t] = &out[i]
	}
	for _, r := range results {
		if s, ok := byTitle[r.Title]; ok {
			s.Counts[r.Label]++
			s.Total++
		}
	}
	return out
}
