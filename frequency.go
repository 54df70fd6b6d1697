package kansou

import "sort"

// TermFrequencies counts term occurrences per title and keeps the topN most
// frequent (all when topN < 1). Ties are ordered by term.
func TermFrequencies(c *Corpus, topN int) []TermCount {
	var out []TermCount
	for _, tc := range c.TitleCorpora() {
		counts := make(map[string]int)
		for _, d := range tc.Documents {
			for _, term := range d.Terms() {
				counts[term]++
			}
		}
		rows := make([]TermCount, 0, len(counts))
		for term, n := range counts {
			rows = append(rows, TermCount{Title: tc.Title, Term: term, Count: n})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Count != rows[j].Count {
				return rows[i].Count > rows[j].Count
			}
			return rows[i].Term < rows[j].Term
		})
		if topN > 0 && len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}

type pairKey struct {
	first, second string
}

// PairCooccurrence counts, per title, how often two terms appear in the same
// document. Every pair of token positions in a document counts once, so
// repeated terms add up. Identical terms do not form a pair.
func PairCooccurrence(c *Corpus, topN int) []PairCount {
	var out []PairCount
	for _, tc := range c.TitleCorpora() {
		counts := make(map[pairKey]int)
		for _, d := range tc.Documents {
			terms := d.Terms()
			for i := 0; i < len(terms); i++ {
				for j := i + 1; j < len(terms); j++ {
					a, b := terms[i], terms[j]
					if a == b {
						continue
					}
					if b < a {
						a, b = b, a
					}
					counts[pairKey{a, b}]++
				}
			}
		}
		rows := make([]PairCount, 0, len(counts))
		for k, n := range counts {
			rows = append(rows, PairCount{Title: tc.Title, First: k.first, Second: k.second, Count: n})
		}
		sort.Slice(rows, func(i, j int) bool {
			switch {
			case rows[i].Count != rows[j].Count:
				return rows[i].Count > rows[j].Count
			case rows[i].First != rows[j].First:
				return rows[i].First < rows[j].First
			default:
				return rows[i].Second < rows[j].Second
			}
		})
		if topN > 0 && len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}
