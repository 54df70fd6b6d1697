package kansou

import (
	"errors"
	"strings"
	"sync/atomic"
)

var errFakeAnalyzer = errors.New("fake analyzer failure")

// fakeAnalyzer returns canned morphemes. Texts it does not know are split
// on whitespace into nouns with no base form or reading.
type fakeAnalyzer struct {
	canned map[string][]Morpheme
	fail   map[string]bool
	calls  atomic.Int64
}

func newFakeAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{
		canned: map[string][]Morpheme{
			"とても楽しい作品だ": {
				{Surface: "とても", POS: "副詞", BaseForm: "とても", Reading: "トテモ"},
				{Surface: "楽しい", POS: "形容詞", BaseForm: "楽しい", Reading: "タノシイ"},
				{Surface: "作品", POS: "名詞", BaseForm: "作品", Reading: "サクヒン"},
				{Surface: "だ", POS: "助動詞", BaseForm: "だ", Reading: "ダ"},
			},
			"ストーリーは残念だった": {
				{Surface: "ストーリー", POS: "名詞", BaseForm: "ストーリー", Reading: "ストーリー"},
				{Surface: "は", POS: "助詞", BaseForm: "は", Reading: "ハ"},
				{Surface: "残念", POS: "名詞", BaseForm: "残念", Reading: "ザンネン"},
				{Surface: "だっ", POS: "助動詞", BaseForm: "だ", Reading: "ダッ"},
				{Surface: "た", POS: "助動詞", BaseForm: "た", Reading: "タ"},
			},
			"わくわくしない": {
				{Surface: "わくわく", POS: "副詞", BaseForm: "わくわく", Reading: "ワクワク"},
				{Surface: "し", POS: "動詞", BaseForm: "する", Reading: "シ"},
				{Surface: "ない", POS: "助動詞", BaseForm: "ない", Reading: "ナイ"},
			},
		},
		fail: map[string]bool{"壊れた入力": true},
	}
}

func (f *fakeAnalyzer) Analyze(text string) ([]Morpheme, error) {
	f.calls.Add(1)
	if f.fail[text] {
		return nil, errFakeAnalyzer
	}
	if ms, ok := f.canned[text]; ok {
		return ms, nil
	}
	var ms []Morpheme
	for _, w := range strings.Fields(text) {
		ms = append(ms, Morpheme{Surface: w, POS: "名詞", BaseForm: placeholder, Reading: placeholder})
	}
	return ms, nil
}

// scenarioLexicon is the small lexicon used by most tests.
func scenarioLexicon() *Lexicon {
	lex, err := NewLexiconBuilder().
		Stopwords("は", "の").
		Positive("楽しい", "魅力的").
		Negative("残念", "弱い").
		Canonicalize("キャラ", "キャラクター").
		Aspect("キャラクター", []string{"キャラクター"}, []string{"魅力的"}, []string{"弱い"}).
		Build()
	if err != nil {
		panic(err)
	}
	return lex
}

// analyzed builds an AnalyzedDocument whose tokens are plain nouns.
func analyzed(id int, title string, terms ...string) AnalyzedDocument {
	toks := make([]Token, len(terms))
	for i, term := range terms {
		toks[i] = Token{Surface: term, Lemma: term, POS: "名詞", Term: term}
	}
	return AnalyzedDocument{
		Document: Document{ID: id, Title: title, Text: strings.Join(terms, "")},
		Tokens:   toks,
	}
}
