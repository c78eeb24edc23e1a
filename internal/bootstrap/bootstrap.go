package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/lrhub/internal/config"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/core/usecase"
	"github.com/kirillkom/lrhub/internal/infrastructure/acquisition"
	"github.com/kirillkom/lrhub/internal/infrastructure/chunking"
	"github.com/kirillkom/lrhub/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/lrhub/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/lrhub/internal/infrastructure/extractor/spreadsheet"
	"github.com/kirillkom/lrhub/internal/infrastructure/queue/nats"
	"github.com/kirillkom/lrhub/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/lrhub/internal/infrastructure/resilience"
	"github.com/kirillkom/lrhub/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/lrhub/internal/infrastructure/vectorspace"
)

// Engine is the text pipeline shared by every binary. It needs neither the
// database nor the message broker.
type Engine struct {
	Config config.Config

	Source     ports.TextSource
	Scorer     *usecase.RelevanceScorer
	Summarizer *usecase.Summarizer
	Matcher    *usecase.CorpusMatcher
	Executor   *resilience.Executor
}

func NewEngine(cfg config.Config) (*Engine, error) {
	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig().WithBreaker(
		cfg.BreakerMinRequests,
		cfg.BreakerFailureRatio,
		time.Duration(cfg.BreakerOpenSeconds)*time.Second,
	))
	fetcher := acquisition.NewFetcher(storage, acquisition.Extractors{
		PDF:         pdf.NewExtractor(),
		Spreadsheet: spreadsheet.NewExtractor(),
		PlainText:   plaintext.NewExtractor(),
	}, acquisition.Options{
		Timeout:            time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		MaxBytes:           cfg.FetchMaxBytes,
		ResilienceExecutor: executor,
	})

	segmenter := chunking.NewSegmenter()
	vectorizer := vectorspace.NewVectorizer()

	return &Engine{
		Config:     cfg,
		Source:     fetcher,
		Scorer:     usecase.NewRelevanceScorer(segmenter, vectorizer),
		Summarizer: usecase.NewSummarizer(segmenter, vectorizer),
		Matcher:    usecase.NewCorpusMatcher(vectorizer),
		Executor:   executor,
	}, nil
}

// OpenCatalog connects to Postgres and makes sure the schema exists.
func OpenCatalog(ctx context.Context, cfg config.Config) (*postgres.CatalogRepository, func(), error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return postgres.NewCatalogRepository(db), func() { _ = db.Close() }, nil
}

type App struct {
	Config config.Config
	Engine *Engine

	Queue *nats.Queue

	AnalyzeUC   ports.DocumentAnalyzer
	SummarizeUC ports.DocumentSummarizer
	RecommendUC ports.Recommender
	DownloadUC  ports.DownloadTracker
	RecordUC    ports.ActivityRecorder

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	catalog, closeDB, err := OpenCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: engine.Executor,
	})
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	return &App{
		Config: cfg,
		Engine: engine,
		Queue:  queue,

		AnalyzeUC:   usecase.NewAnalyzeUseCase(catalog, engine.Source, engine.Scorer, cfg.ScoreMaxWords),
		SummarizeUC: usecase.NewSummarizeDocumentUseCase(catalog, engine.Source, engine.Summarizer, cfg.SummarySentences, cfg.SummaryMaxWords),
		RecommendUC: usecase.NewRecommendUseCase(catalog, engine.Matcher, cfg.RecommendTopN),
		DownloadUC:  usecase.NewDownloadUseCase(catalog, catalog, queue),
		RecordUC:    usecase.NewRecordActivityUseCase(catalog),

		closeFn: func() {
			queue.Close()
			closeDB()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
