package scraper

import (
	"context"
	"time"

	"huskykennel-scraper/config"
	"huskykennel-scraper/extractor"
	"huskykennel-scraper/fetcher"
	"huskykennel-scraper/models"
	"huskykennel-scraper/normalizer"
	"huskykennel-scraper/sources"
	"huskykennel-scraper/storage"
	"huskykennel-scraper/utils"
)

// Orchestrator runs the fetch → extract → normalize pipeline over the source
// registry and hands the combined batch to the persistence gateway. A source
// failure is recorded and never aborts the run.
type Orchestrator struct {
	registry  *sources.Registry
	store     storage.ListingStore
	exporter  storage.BatchExporter
	logger    *utils.Logger
	extractor *extractor.Extractor
	norm      *normalizer.Normalizer

	// newFetcher resolves the fetcher for a source's strategy; swapped out
	// in tests.
	newFetcher func(src sources.SourceConfig) fetcher.Fetcher

	concurrency   int
	delayMs       int
	flushOnCancel bool
}

// New wires an Orchestrator from configuration. The exporter may be nil.
func New(cfg *config.Config, reg *sources.Registry, store storage.ListingStore,
	exporter storage.BatchExporter, logger *utils.Logger) *Orchestrator {

	static := fetcher.NewStatic(cfg.StaticTimeout, cfg.StaticUserAgent)
	headless := fetcher.NewHeadless(cfg.HeadlessTimeout, cfg.SettleDelay,
		cfg.BrowserUserAgent, cfg.ChromeBin)

	return &Orchestrator{
		registry:  reg,
		store:     store,
		exporter:  exporter,
		logger:    logger,
		extractor: extractor.New(logger),
		norm:      normalizer.New(),
		newFetcher: func(src sources.SourceConfig) fetcher.Fetcher {
			if src.Strategy == sources.FetchHeadless {
				return headless
			}
			return static
		},
		concurrency:   cfg.MaxConcurrency,
		delayMs:       cfg.SourceDelayMs,
		flushOnCancel: cfg.FlushOnCancel,
	}
}

// RunAll scrapes every registered source and persists the combined batch with
// a single write at the end. Cancellation stops new sources from starting;
// what the finished sources produced is discarded unless flush-on-cancel is
// enabled.
func (o *Orchestrator) RunAll(ctx context.Context) *models.RunResult {
	start := time.Now()
	srcs := o.registry.All()

	o.logger.Info("Starting run over %d sources (concurrency=%d)", len(srcs), o.concurrency)

	pool := utils.NewWorkerPool(o.concurrency, o.delayMs)
	results := make([]models.SourceResult, len(srcs))
	batches := make([][]models.Listing, len(srcs))

	cancelled := false
	submitted := len(srcs)
	for i, src := range srcs {
		if ctx.Err() != nil {
			o.logger.Warn("Run cancelled, skipping remaining %d sources", len(srcs)-i)
			cancelled = true
			submitted = i
			break
		}

		i, src := i, src
		pool.Submit(func() {
			batches[i], results[i] = o.runSource(ctx, src)
		})
	}
	pool.Wait()

	results = results[:submitted]
	batches = batches[:submitted]

	result := &models.RunResult{PerSource: results, Cancelled: cancelled}
	for _, res := range results {
		if res.Success {
			result.TotalListingsFound += res.RecordCount
		}
	}

	batch := o.dedup(batches)

	switch {
	case cancelled && !o.flushOnCancel:
		o.logger.Warn("Discarding %d listings from cancelled run", len(batch))
	case len(batch) > 0:
		writeCtx := ctx
		if cancelled {
			// The run context is already dead; the flush still deserves to
			// finish.
			writeCtx = context.WithoutCancel(ctx)
		}
		result.WriteErr = o.persist(writeCtx, batch)
	}

	result.DurationMs = time.Since(start).Milliseconds()
	o.logger.Info("Run finished in %dms: %d listings from %d sources",
		result.DurationMs, result.TotalListingsFound, len(results))
	return result
}

// RunOne scrapes a single source by name and persists its batch immediately.
// An unknown name is the caller's error and comes back as one.
func (o *Orchestrator) RunOne(ctx context.Context, name string) (*models.SourceRunResult, error) {
	src, err := o.registry.Get(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	listings, res := o.runSource(ctx, src)

	out := &models.SourceRunResult{SourceResult: res}
	if res.Success && len(listings) > 0 {
		out.WriteErr = o.persist(ctx, o.dedup([][]models.Listing{listings}))
	}
	out.DurationMs = time.Since(start).Milliseconds()
	return out, nil
}

// runSource executes the pipeline for one source. All failures are folded
// into the SourceResult; only success yields listings.
func (o *Orchestrator) runSource(ctx context.Context, src sources.SourceConfig) ([]models.Listing, models.SourceResult) {
	o.logger.Info("Scraping %s (%s)", src.Name, src.Endpoint)

	raw, err := o.newFetcher(src).Fetch(ctx, src)
	if err != nil {
		o.logger.Error("%s: %v", src.Name, err)
		return nil, models.SourceResult{Source: src.Name, Err: err}
	}

	cands, err := o.extractor.Extract(raw, src)
	if err != nil {
		o.logger.Error("%s: %v", src.Name, err)
		return nil, models.SourceResult{Source: src.Name, Err: err}
	}

	listings := o.norm.NormalizeAll(cands, src)
	return listings, models.SourceResult{
		Source:      src.Name,
		Success:     true,
		RecordCount: len(listings),
	}
}

// dedup flattens per-source batches into one, dropping within-run duplicates.
// The key includes the title because floorplans of one community site share a
// single page URL.
func (o *Orchestrator) dedup(batches [][]models.Listing) []models.Listing {
	seen := utils.NewKeySet()
	var batch []models.Listing
	for _, listings := range batches {
		for _, l := range listings {
			if seen.Add(l.Source + "|" + l.SourceURL + "|" + l.Title) {
				batch = append(batch, l)
			}
		}
	}
	return batch
}

// persist drops listings already stored by earlier runs, writes the rest in
// one batch, and mirrors the batch to the exporter when one is configured.
// An Exists check failure keeps the listing; a duplicate insert is cheaper
// than a silent drop.
func (o *Orchestrator) persist(ctx context.Context, batch []models.Listing) error {
	fresh := batch[:0:0]
	for _, l := range batch {
		known, err := o.store.Exists(ctx, l)
		if err != nil {
			o.logger.Warn("Duplicate check failed for %s: %v", l.SourceURL, err)
			known = false
		}
		if !known {
			fresh = append(fresh, l)
		}
	}

	if skipped := len(batch) - len(fresh); skipped > 0 {
		o.logger.Info("Skipping %d previously stored listings", skipped)
	}

	if o.exporter != nil && len(fresh) > 0 {
		if err := o.exporter.Export(fresh); err != nil {
			o.logger.Warn("CSV export failed: %v", err)
		}
	}

	if len(fresh) == 0 {
		return nil
	}

	_, err := o.store.InsertBatch(ctx, fresh)
	return err
}
