package kansou

import (
	"encoding/json"
	"testing"
)

func TestClassifyScenario(t *testing.T) {
	lex := scenarioLexicon()
	tok := NewTokenizer(newFakeAnalyzer(), lex, UsingProfile(LemmaProfile))
	sc := NewSentimentClassifier(lex, DefaultSentimentConfig())

	tests := []struct {
		text string
		want SentimentResult
	}{
		{"とても楽しい作品だ", SentimentResult{Positive: 1, Negative: 0, Label: Positive}},
		{"ストーリーは残念だった", SentimentResult{Positive: 0, Negative: 1, Label: Negative}},
		{"あ", SentimentResult{Label: Neutral}},
		{"壊れた入力", SentimentResult{Label: Neutral}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := sc.Classify(tok.Tokenize(tt.text)); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifyCounts(t *testing.T) {
	lex := scenarioLexicon()
	sc := NewSentimentClassifier(lex, DefaultSentimentConfig())
	word := func(s string) Token { return Token{Surface: s, Lemma: s, POS: "名詞", Term: s} }

	tests := []struct {
		desc   string
		tokens []Token
		want   SentimentResult
	}{
		{"no tokens", nil, SentimentResult{Label: Neutral}},
		{"no matches", []Token{word("作品"), word("世界")}, SentimentResult{Label: Neutral}},
		{"tie", []Token{word("楽しい"), word("残念")}, SentimentResult{Positive: 1, Negative: 1, Label: Neutral}},
		{"repeated tokens count", []Token{word("楽しい"), word("楽しい"), word("残念")}, SentimentResult{Positive: 2, Negative: 1, Label: Positive}},
		{"negative wins", []Token{word("弱い"), word("残念"), word("魅力的")}, SentimentResult{Positive: 1, Negative: 2, Label: Negative}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := sc.Classify(tt.tokens)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.Positive == got.Negative && got.Label != Neutral {
				t.Errorf("equal counts must be Neutral, got %v", got.Label)
			}
		})
	}
}

func TestClassifyCandidatePrecedence(t *testing.T) {
	lex, err := NewLexiconBuilder().
		Positive("ヨイ", "良い").
		Negative("ヨクナイ").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	mixed := Token{Surface: "良くない", Lemma: "良い", Reading: "ヨクナイ", POS: "形容詞"}
	reading := Token{Surface: "よい", Lemma: "よい", Reading: "ヨイ", POS: "形容詞"}

	all := NewSentimentClassifier(lex, DefaultSentimentConfig())
	if got := all.Classify([]Token{mixed}); got.Negative != 1 || got.Positive != 0 {
		t.Errorf("negative form must take precedence over positive lemma: %+v", got)
	}
	if got := all.Classify([]Token{reading}); got.Positive != 1 {
		t.Errorf("reading should match in all-candidate mode: %+v", got)
	}

	lemmaOnly := NewSentimentClassifier(lex, SentimentConfig{AllCandidates: false})
	if got := lemmaOnly.Classify([]Token{mixed}); got.Positive != 1 || got.Negative != 0 {
		t.Errorf("lemma-only mode should see only 良い: %+v", got)
	}
	if got := lemmaOnly.Classify([]Token{reading}); got.Positive != 0 {
		t.Errorf("lemma-only mode should ignore readings: %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	c := NewCorpus("A", "B")
	for _, d := range []AnalyzedDocument{
		analyzed(0, "A", "楽しい"),
		analyzed(1, "A", "残念"),
		analyzed(2, "A", "楽しい", "楽しい"),
	} {
		if err := c.Add(d); err != nil {
			t.Fatal(err)
		}
	}
	results := NewSentimentClassifier(scenarioLexicon(), DefaultSentimentConfig()).ClassifyCorpus(c)
	if len(results) != 3 || results[2].DocumentID != 2 {
		t.Fatalf("unexpected results %+v", results)
	}

	summaries := Summarize(c.Titles(), results)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	a, b := summaries[0], summaries[1]
	if a.Title != "A" || a.Counts[Positive] != 2 || a.Counts[Negative] != 1 || a.Counts[Neutral] != 0 || a.Total != 3 {
		t.Errorf("summary A = %+v", a)
	}
	if b.Title != "B" || b.Total != 0 || len(b.Counts) != len(SentimentClasses) {
		t.Errorf("summary B = %+v", b)
	}
}

func TestSentimentClassJSON(t *testing.T) {
	data, err := json.Marshal(SentimentResult{Positive: 1, Label: Positive})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"Positive":1,"Negative":0,"Label":"Positive"}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
	var c SentimentClass
	if err := json.Unmarshal([]byte(`"Negative"`), &c); err != nil || c != Negative {
		t.Errorf("Unmarshal = %v, %v", c, err)
	}
	if err := json.Unmarshal([]byte(`"Angry"`), &c); err == nil {
		t.Error("expected error for unknown label")
	}
}
