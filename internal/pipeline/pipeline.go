// Package pipeline orchestrates the poll-parse-insert cycle for every
// registered station. Each station runs on its own fixed-interval timer with
// no cross-station coordination; one tick runs to completion before the next
// can fire for that station, which is what keeps the stale-value cache
// threading per row sound.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"hydro-telemetry/internal/cache"
	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/observability"
	"hydro-telemetry/internal/parser"
	"hydro-telemetry/internal/station"
)

// Lister finds the newest CSV in a station's drop directory.
type Lister interface {
	LatestCSV(dir string) (string, error)
}

// Sink persists decoded observation batches. Writes are best effort: the
// pipeline logs and counts failures but never retries or blocks the poller,
// so delivery is at most once.
type Sink interface {
	InsertAWSBatch(ctx context.Context, recs []domain.AWSRecord) error
	InsertEWSBatch(ctx context.Context, recs []domain.EWSRecord) error
}

// runner carries one station's poll state. lastFile is the ingestion cursor:
// a tick is skipped outright when the newest filename has not changed, so
// re-reads of an already-processed file produce no writes.
type runner struct {
	cfg      station.Config
	lastFile string
}

// Pipeline polls every registered station and feeds decoded rows to the sink.
type Pipeline struct {
	runners      []*runner
	lister       Lister
	sink         Sink
	store        cache.Store
	logger       *slog.Logger
	metrics      *observability.Metrics
	clock        clockwork.Clock
	interval     time.Duration
	writeTimeout time.Duration
	readFile     func(string) ([]byte, error)
	ready        atomic.Bool
}

// Options adjusts pipeline construction.
type Options struct {
	// Clock drives the per-station tickers; tests inject a fake.
	Clock clockwork.Clock
	// ReadFile overrides file reading, for tests.
	ReadFile func(string) ([]byte, error)
}

// New creates a Pipeline over the given station registry.
func New(stations []station.Config, lister Lister, sink Sink, store cache.Store,
	logger *slog.Logger, metrics *observability.Metrics,
	interval, writeTimeout time.Duration, opts Options) *Pipeline {

	runners := make([]*runner, len(stations))
	for i, cfg := range stations {
		runners[i] = &runner{cfg: cfg}
	}
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Pipeline{
		runners:      runners,
		lister:       lister,
		sink:         sink,
		store:        store,
		logger:       logger,
		metrics:      metrics,
		clock:        clk,
		interval:     interval,
		writeTimeout: writeTimeout,
		readFile:     readFile,
	}
}

// CheckReadiness returns nil once at least one poll tick has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no poll tick has completed yet")
	}
	return nil
}

// Run polls every station on its own timer until the context is cancelled.
// Each station ticks immediately on startup and then at the configured
// interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"stations", len(p.runners), "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	var wg sync.WaitGroup
	for _, r := range p.runners {
		wg.Add(1)
		go func(r *runner) {
			defer wg.Done()
			p.pollLoop(ctx, r)
		}(r)
	}
	wg.Wait()
	p.logger.Info("pipeline stopped", "reason", ctx.Err())
	return nil
}

// RunOnce executes a single tick for every station, sequentially.
func (p *Pipeline) RunOnce(ctx context.Context) {
	for _, r := range p.runners {
		p.tick(ctx, r)
	}
}

func (p *Pipeline) pollLoop(ctx context.Context, r *runner) {
	p.tick(ctx, r)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.tick(ctx, r)
		}
	}
}

// tick runs one poll-parse-insert pass for a station. Every failure mode
// skips the rest of the pass and waits for the next tick; nothing here may
// stop the poller.
func (p *Pipeline) tick(ctx context.Context, r *runner) {
	start := time.Now()
	log := p.logger.With("station", r.cfg.Key())
	defer func() {
		p.metrics.PollsTotal.WithLabelValues(r.cfg.Key()).Inc()
		p.metrics.PollDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}()

	latest, err := p.lister.LatestCSV(r.cfg.Folder)
	if err != nil {
		log.Warn("directory scan failed", "error", err)
		p.metrics.WatchErrors.WithLabelValues(r.cfg.Key()).Inc()
		return
	}
	if latest == "" || latest == r.lastFile {
		return
	}
	r.lastFile = latest

	path := filepath.Join(r.cfg.Folder, latest)
	content, err := p.readFile(path)
	if err != nil {
		log.Warn("file read failed", "file", path, "error", err)
		p.metrics.WatchErrors.WithLabelValues(r.cfg.Key()).Inc()
		return
	}
	log.Info("processing file", "file", latest)
	p.metrics.FilesProcessed.WithLabelValues(r.cfg.Key()).Inc()

	switch r.cfg.Family {
	case station.FamilyAWS:
		p.ingestAWS(ctx, log, r.cfg, string(content))
	case station.FamilyEWSTriplet:
		p.insertEWS(ctx, log, r.cfg, parser.ParseEWSTripletFile(r.cfg, p.store, string(content)))
	case station.FamilyEWSColumn:
		p.insertEWS(ctx, log, r.cfg, parser.ParseEWSColumnFile(r.cfg, p.store, string(content)))
	}
}

func (p *Pipeline) ingestAWS(ctx context.Context, log *slog.Logger, cfg station.Config, content string) {
	rec, err := parser.ParseAWSFile(cfg, content)
	if err != nil {
		log.Warn("file rejected", "error", err)
		p.metrics.ParseErrors.WithLabelValues(cfg.Key()).Inc()
		return
	}
	if rec == nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	if err := p.sink.InsertAWSBatch(writeCtx, []domain.AWSRecord{*rec}); err != nil {
		log.Error("insert failed, cycle dropped", "error", err)
		p.metrics.InsertErrors.WithLabelValues(cfg.Key()).Inc()
		return
	}
	p.metrics.RowsInserted.WithLabelValues(cfg.Key()).Add(1)
}

func (p *Pipeline) insertEWS(ctx context.Context, log *slog.Logger, cfg station.Config, recs []domain.EWSRecord) {
	if len(recs) == 0 {
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	if err := p.sink.InsertEWSBatch(writeCtx, recs); err != nil {
		log.Error("insert failed, cycle dropped", "error", err, "rows", len(recs))
		p.metrics.InsertErrors.WithLabelValues(cfg.Key()).Inc()
		return
	}
	p.metrics.RowsInserted.WithLabelValues(cfg.Key()).Add(float64(len(recs)))
}
