package kansou

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func pipelineDocuments() []Document {
	return []Document{
		NewDocument(0, "A", "とても楽しい作品だ"),
		NewDocument(1, "A", "キャラ 魅力的 冒険"),
		NewDocument(2, "B", "ストーリーは残念だった"),
		NewDocument(3, "B", "壊れた入力"),
		NewDocument(4, "A", "x"),
		NewDocument(5, "B", "キャラ 弱い 冒険"),
	}
}

func TestPipelineRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewPipeline(newFakeAnalyzer(), scenarioLexicon(),
		WithLogger(zap.New(core)),
		WithWorkers(3),
		WithDocumentTfidf(true))

	rep, err := p.Run(context.Background(), []string{"B", "A", "C"}, pipelineDocuments())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(rep.Titles, want) {
		t.Errorf("Titles = %v, want %v", rep.Titles, want)
	}
	if rep.Documents != 5 || rep.Discarded != 1 || rep.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 5/1/1", rep.Documents, rep.Discarded, rep.Failed)
	}
	if n := logs.FilterMessage("analysis failed").Len(); n != 1 {
		t.Errorf("expected 1 failure log, got %d", n)
	}

	var labels []string
	for _, s := range rep.Sentiments {
		labels = append(labels, s.Title+":"+s.Label.String())
	}
	want := []string{"B:Negative", "B:Neutral", "B:Negative", "A:Positive", "A:Positive"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("sentiment labels = %v, want %v", labels, want)
	}

	a := rep.Aspects.Score("A", "キャラクター")
	if a.TriggeredDocuments != 1 || a.NetScore != 1 {
		t.Errorf("aspect A = %+v", a)
	}
	b := rep.Aspects.Score("B", "キャラクター")
	if b.TriggeredDocuments != 1 || b.NetScore != -1 {
		t.Errorf("aspect B = %+v", b)
	}
	if c := rep.Aspects.Score("C", "キャラクター"); c.TriggeredDocuments != 0 || c.NetScore != 0 {
		t.Errorf("aspect C = %+v", c)
	}

	if len(rep.Terms.TopTerms("C")) != 0 {
		t.Errorf("empty title has ranked terms: %v", rep.Terms.TopTerms("C"))
	}
	if rep.DocumentTerms == nil || len(rep.DocumentTerms.Rows) != 5 {
		t.Errorf("per-document ranking rows = %+v", rep.DocumentTerms)
	}
	if len(rep.SentimentSummaries) != 3 {
		t.Errorf("expected 3 summaries, got %d", len(rep.SentimentSummaries))
	}
}

func TestPipelineDeterministic(t *testing.T) {
	docs := pipelineDocuments()
	var first *Report
	for _, workers := range []int{1, 2, 8} {
		p := NewPipeline(newFakeAnalyzer(), scenarioLexicon(), WithWorkers(workers))
		rep, err := p.Run(context.Background(), []string{"A", "B"}, docs)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = rep
			continue
		}
		if !reflect.DeepEqual(first.Terms.Ranked(), rep.Terms.Ranked()) {
			t.Errorf("workers=%d: term ranking differs", workers)
		}
		if !reflect.DeepEqual(first.Sentiments, rep.Sentiments) {
			t.Errorf("workers=%d: sentiments differ", workers)
		}
		if !reflect.DeepEqual(first.Aspects.Rows(), rep.Aspects.Rows()) {
			t.Errorf("workers=%d: aspect rows differ", workers)
		}
		if !reflect.DeepEqual(first.Pairs, rep.Pairs) {
			t.Errorf("workers=%d: pairs differ", workers)
		}
	}
}

func TestPipelineErrors(t *testing.T) {
	p := NewPipeline(newFakeAnalyzer(), scenarioLexicon())

	_, err := p.Run(context.Background(), []string{"A"}, pipelineDocuments())
	if !errors.Is(err, ErrUnknownTitle) {
		t.Errorf("unknown title error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, []string{"A", "B"}, pipelineDocuments()); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled run error = %v", err)
	}
}

func TestPipelineSentimentProfiles(t *testing.T) {
	lex, err := NewLexiconBuilder().
		Stopwords("する").
		Positive("ワクワク").
		Negative("ナイ").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	docs := []Document{NewDocument(0, "A", "わくわくしない")}

	tests := []struct {
		name   string
		config SentimentConfig
		want   SentimentResult
	}{
		{"all candidates see adverbs and auxiliaries", SentimentConfig{AllCandidates: true}, SentimentResult{Positive: 1, Negative: 1, Label: Neutral}},
		{"lemma only keeps the strict POS set", SentimentConfig{AllCandidates: false}, SentimentResult{Label: Neutral}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := NewPipeline(newFakeAnalyzer(), lex, WithSentimentConfig(tt.config)).
				Run(context.Background(), []string{"A"}, docs)
			if err != nil {
				t.Fatal(err)
			}
			if got := rep.Sentiments[0].SentimentResult; got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPipelineDefaultLexiconKagome(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the IPA dictionary")
	}
	analyzer, err := NewKagomeAnalyzer()
	if err != nil {
		t.Fatalf("NewKagomeAnalyzer: %v", err)
	}
	docs := []Document{
		NewDocument(0, "A", "わくわくした"),
		NewDocument(1, "A", "しっかりした物語"),
		NewDocument(2, "A", "あっさり終わった"),
		NewDocument(3, "A", "面白くない"),
		NewDocument(4, "A", "楽しかった"),
	}
	rep, err := NewPipeline(analyzer, DefaultLexicon()).Run(context.Background(), []string{"A"}, docs)
	if err != nil {
		t.Fatal(err)
	}

	want := []SentimentResult{
		{Positive: 1, Label: Positive},
		{Positive: 1, Label: Positive},
		{Negative: 1, Label: Negative},
		{Positive: 1, Negative: 1, Label: Neutral},
		{Positive: 1, Label: Positive},
	}
	for i, s := range rep.Sentiments {
		t.Logf("%s: %+v", s.Text, s.SentimentResult)
		if s.SentimentResult != want[i] {
			t.Errorf("%s: got %+v, want %+v", s.Text, s.SentimentResult, want[i])
		}
	}
}
