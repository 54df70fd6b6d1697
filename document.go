package kansou

import (
	"strings"
	"unicode/utf8"
)

// A Document represents one raw review or scenario sentence.
type Document struct {
	ID    int    // Insertion order within a run.
	Title string // Work the document belongs to.
	Text  string
}

// NewDocument creates a Document.
//
// For example,
//
//	doc := kansou.NewDocument(0, "Pokémon Scarlet", "ストーリーが良かった")
func NewDocument(id int, title, text string) Document {
	return Document{ID: id, Title: title, Text: text}
}

// Retained reports whether the document carries enough text to analyze.
// Documents of one character or less after trimming are discarded.
func (doc Document) Retained() bool {
	return utf8.RuneCountInString(strings.TrimSpace(doc.Text)) > 1
}

// FilterDocuments returns the retained documents in their original order,
// along with the number that were discarded.
func FilterDocuments(docs []Document) (kept []Document, discarded int) {
	kept = make([]Document, 0, len(docs))
	for _, d := range docs {
		if d.Retained() {
			kept = append(kept, d)
		} else {
			discarded++
		}
	}
	return kept, discarded
}

// An AnalyzedDocument is a retained Document plus the tokens one profile
// produced for it.
type AnalyzedDocument struct {
	Document
	Tokens []Token
}

// Terms returns the profile-selected form of every token in order.
func (doc AnalyzedDocument) Terms() []string {
	terms := make([]string, len(doc.Tokens))
	for i, tok := range doc.Tokens {
		terms[i] = tok.Term
	}
	return terms
}

// TokenSet returns the set of every form of the document's tokens.
func (doc AnalyzedDocument) TokenSet() TokenSet {
	return NewTokenSet(doc.Tokens)
}
