package storage

import (
	"context"

	"huskykennel-scraper/models"
)

// ListingStore is the persistence gateway for scraped listings. The pipeline
// only ever appends: listings are inserted in batches at the end of a run and
// never updated in place.
type ListingStore interface {
	// InsertBatch writes listings and returns how many rows were inserted.
	InsertBatch(ctx context.Context, listings []models.Listing) (int, error)
	// Exists reports whether an equivalent listing (same source, source URL
	// and title) has been stored before.
	Exists(ctx context.Context, l models.Listing) (bool, error)
	Close() error
}

// BatchExporter receives a copy of each run's final batch. Export failures
// are reported but never fail the run.
type BatchExporter interface {
	Export(listings []models.Listing) error
}
