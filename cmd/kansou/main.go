package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/kansou"
	"github.com/tsawler/kansou/config"
	"github.com/tsawler/kansou/ingest"
	"github.com/tsawler/kansou/report"
)

func main() {
	configPath := flag.String("config", "analysis.yaml", "path to the YAML run configuration")
	envFile := flag.String("env", "", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	lex, err := kansou.LoadLexiconWithExternal(cfg.Lexicon)
	if err != nil {
		return err
	}

	sources := make([]ingest.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = ingest.Source{Title: s.Title, Path: s.Path, Column: s.Column}
	}
	docs, err := ingest.Load(sources)
	if err != nil {
		return err
	}
	logger.Info("documents loaded", zap.Int("count", len(docs)), zap.Strings("titles", cfg.Titles()))

	analyzer, err := kansou.NewKagomeAnalyzer()
	if err != nil {
		return err
	}

	tfidf := kansou.DefaultTfidfOptions()
	tfidf.TopN = cfg.Tfidf.TopN
	tfidf.MinN = cfg.Tfidf.NgramMin
	tfidf.MaxN = cfg.Tfidf.NgramMax
	tfidf.Lowercase = cfg.Tfidf.Lowercase

	p := kansou.NewPipeline(analyzer, lex,
		kansou.WithLogger(logger),
		kansou.WithWorkers(cfg.Workers),
		kansou.WithTfidfOptions(tfidf),
		kansou.WithDocumentTfidf(cfg.Tfidf.PerDocument),
		kansou.WithSentimentConfig(kansou.SentimentConfig{AllCandidates: cfg.Sentiment.AllCandidates}),
		kansou.WithFrequencyTopN(cfg.Frequency.TopN, cfg.Frequency.PairTopN))
	rep, err := p.Run(ctx, cfg.Titles(), docs)
	if err != nil {
		return err
	}

	bundle := report.NewBundle(report.NewRunID(), rep)
	files, err := report.Write(cfg.Output.Dir, bundle, cfg.Output.Formats...)
	if err != nil {
		return err
	}
	for _, f := range files {
		logger.Info("report written", zap.String("path", f))
	}

	if cfg.Output.SQLite != "" {
		sink, err := report.OpenSQLite(ctx, cfg.Output.SQLite)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.Save(ctx, bundle); err != nil {
			return err
		}
		logger.Info("run stored", zap.String("run_id", bundle.RunID), zap.String("sqlite", cfg.Output.SQLite))
	}
	return nil
}
