package kansou

// AspectScorer computes aspect-conditioned net polarity per title.
type AspectScorer struct {
	lexicon *Lexicon
}

// NewAspectScorer creates a scorer over the aspects of lex.
func NewAspectScorer(lex *Lexicon) *AspectScorer {
	return &AspectScorer{lexicon: lex}
}

// ScoreDocument reports whether set mentions a trigger of a and, if so, how
// many distinct positive and negative evaluation words it contains.
func ScoreDocument(set TokenSet, a Aspect) (triggered bool, positive, negative int) {
	if !set.Intersects(a.Triggers) {
		return false, 0, 0
	}
	return true, set.CountIn(a.Positive), set.CountIn(a.Negative)
}

// ScoreAspects scores every (title, aspect) pair of c. Pairs without a
// triggered document score 0.
func (s *AspectScorer) ScoreAspects(c *Corpus) *AspectMatrix {
	aspects := s.lexicon.Aspects()
	m := &AspectMatrix{
		Titles: c.Titles(),
		scores: make(map[aspectKey]AspectScore),
	}
	for _, a := range aspects {
		m.Aspects = append(m.Aspects, a.Name)
	}
	for _, tc := range c.TitleCorpora() {
		sets := make([]TokenSet, len(tc.Documents))
		for i, d := range tc.Documents {
			sets[i] = d.TokenSet()
		}
		for _, a := range aspects {
			score := AspectScore{Title: tc.Title, Aspect: a.Name}
			for _, set := range sets {
				triggered, pos, neg := ScoreDocument(set, a)
				if !triggered {
					continue
				}
				score.TriggeredDocuments++
				score.PositiveMatches += pos
				score.NegativeMatches += neg
			}
			if score.TriggeredDocuments > 0 {
				score.NetScore = float64(score.PositiveMatches-score.NegativeMatches) / float64(score.TriggeredDocuments)
			}
			m.scores[aspectKey{tc.Title, a.Name}] = score
		}
	}
	return m
}

type aspectKey struct {
	title, aspect string
}

// AspectMatrix is the title × aspect score table.
type AspectMatrix struct {
	Titles  []string
	Aspects []string
	scores  map[aspectKey]AspectScore
}

// Score returns the score of one cell. Unknown cells are zero-valued.
func (m *AspectMatrix) Score(title, aspect string) AspectScore {
	if s, ok := m.scores[aspectKey{title, aspect}]; ok {
		return s
	}
	return AspectScore{Title: title, Aspect: aspect}
}

// Rows returns every cell, titles in order, then aspects in order.
func (m *AspectMatrix) Rows() []AspectScore {
	out := make([]AspectScore, 0, len(m.Titles)*len(m.Aspects))
	for _, t := range m.Titles {
		for _, a := range m.Aspects {
			out = append(out, m.Score(t, a))
		}
	}
	return out
}
