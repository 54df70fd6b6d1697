package kansou

import (
	"math"
	"reflect"
	"testing"
)

func superDocCorpus(t *testing.T, docs map[string]string, titles ...string) *Corpus {
	t.Helper()
	c := NewCorpus(titles...)
	for i, title := range titles {
		v := NewVectorizer(TfidfOptions{MinN: 1, MaxN: 1})
		if err := c.Add(analyzed(i, title, v.Terms(docs[title])...)); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestRankTermsScenario(t *testing.T) {
	c := superDocCorpus(t, map[string]string{
		"T1": "A A B",
		"T2": "B B C",
		"T3": "C C A",
	}, "T1", "T2", "T3")

	opts := DefaultTfidfOptions()
	opts.TopN = 1
	opts.Lowercase = false

	want := map[string]string{"T1": "A", "T2": "B", "T3": "C"}
	var first []TermScore
	for run := 0; run < 5; run++ {
		res, err := RankTerms(c, opts)
		if err != nil {
			t.Fatal(err)
		}
		for title, term := range want {
			top := res.TopTerms(title)
			if len(top) != 1 || top[0].Term != term || top[0].Rank != 1 {
				t.Errorf("run %d: top term of %s = %+v, want %s", run, title, top, term)
			}
		}
		if run == 0 {
			first = res.Ranked()
		} else if !reflect.DeepEqual(first, res.Ranked()) {
			t.Errorf("run %d differs from first run", run)
		}
	}
}

func TestVectorizerWeights(t *testing.T) {
	v := NewVectorizer(TfidfOptions{MinN: 1, MaxN: 1, SmoothIDF: true})
	w, err := v.FitTransform([]string{"a a b", "b c"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(v.Vocabulary(), want) {
		t.Fatalf("vocabulary = %v", v.Vocabulary())
	}
	idfA := math.Log(3.0/2.0) + 1
	idfB := 1.0
	if got := v.IDF()[0]; math.Abs(got-idfA) > 1e-12 {
		t.Errorf("idf(a) = %v, want %v", got, idfA)
	}
	if got := v.IDF()[1]; math.Abs(got-idfB) > 1e-12 {
		t.Errorf("idf(b) = %v, want %v", got, idfB)
	}
	if got := w.At(0, 0); math.Abs(got-2*idfA) > 1e-12 {
		t.Errorf("w(0,a) = %v, want %v", got, 2*idfA)
	}
	if got := w.At(1, 0); got != 0 {
		t.Errorf("w(1,a) = %v, want 0", got)
	}
}

func TestVectorizerNormalizedRows(t *testing.T) {
	v := NewVectorizer(DefaultTfidfOptions())
	w, err := v.FitTransform([]string{"冒険 世界 冒険", "キャラクター 魅力", ""})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		var sum float64
		for _, x := range w.RawRowView(i) {
			sum += x * x
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d squared norm = %v, want 1", i, sum)
		}
	}
	for j, x := range w.RawRowView(2) {
		if x != 0 {
			t.Errorf("empty row has weight %v at %q", x, v.Vocabulary()[j])
		}
	}
	t.Logf("vocabulary: %v", v.Vocabulary())
	if got := len(v.Vocabulary()); got != 7 {
		t.Errorf("expected 4 unigrams and 3 bigrams, got %d", got)
	}
}

func TestRankTermsTieBreak(t *testing.T) {
	c := NewCorpus("X", "Y")
	if err := c.Add(analyzed(0, "X", "zeta", "alpha", "mu")); err != nil {
		t.Fatal(err)
	}
	opts := DefaultTfidfOptions()
	opts.MaxN = 1
	res, err := RankTerms(c, opts)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for i, ts := range res.TopTerms("X") {
		got = append(got, ts.Term)
		if ts.Rank != i+1 {
			t.Errorf("rank of %s = %d, want %d", ts.Term, ts.Rank, i+1)
		}
	}
	if want := []string{"alpha", "mu", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tied terms ordered %v, want %v", got, want)
	}
	if len(res.TopTerms("Y")) != 0 {
		t.Errorf("empty title should have no ranked terms, got %v", res.TopTerms("Y"))
	}
	if s := res.Score("X", "alpha"); s <= 0 {
		t.Errorf("Score(X, alpha) = %v", s)
	}
	if s := res.Score("X", "missing"); s != 0 {
		t.Errorf("Score(X, missing) = %v", s)
	}
}

func TestRankTermsEmptyCorpus(t *testing.T) {
	res, err := RankTerms(NewCorpus("A", "B"), DefaultTfidfOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Weights != nil || len(res.Ranked()) != 0 {
		t.Errorf("expected no weights for an empty corpus, got %+v", res)
	}
	if s := res.Score("A", "x"); s != 0 {
		t.Errorf("Score = %v", s)
	}
}

func TestRankTermsInvalidRange(t *testing.T) {
	opts := DefaultTfidfOptions()
	opts.MinN, opts.MaxN = 2, 1
	if _, err := RankTerms(NewCorpus("A"), opts); err == nil {
		t.Error("expected error for inverted n-gram range")
	}
}

func TestRankDocumentTerms(t *testing.T) {
	c := NewCorpus("A", "B")
	for _, d := range []AnalyzedDocument{
		analyzed(0, "A", "冒険", "世界"),
		analyzed(1, "A", "冒険", "仲間"),
		analyzed(2, "B", "世界", "音楽"),
	} {
		if err := c.Add(d); err != nil {
			t.Fatal(err)
		}
	}
	opts := DefaultTfidfOptions()
	opts.MaxN = 1
	opts.TopN = 1
	res, err := RankDocumentTerms(c, opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A#0", "A#1", "B#2"}; !reflect.DeepEqual(res.Rows, want) {
		t.Fatalf("rows = %v", res.Rows)
	}
	if top := res.TopTerms("A#1"); len(top) != 1 || top[0].Term != "仲間" {
		t.Errorf("top term of A#1 = %+v", top)
	}
	if top := res.TopTerms("B#2"); len(top) != 1 || top[0].Term != "音楽" {
		t.Errorf("top term of B#2 = %+v", top)
	}
}
