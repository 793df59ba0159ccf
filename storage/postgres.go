package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"huskykennel-scraper/models"
	"huskykennel-scraper/utils"
)

const insertChunkSize = 50

// PostgresStore persists listings in a PostgreSQL table.
type PostgresStore struct {
	db      *sql.DB
	logger  *utils.Logger
	builder sq.StatementBuilderType
}

// NewPostgresStore connects to PostgreSQL, retrying the initial ping, and
// ensures the schema exists.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		db.Close()
		return nil, err
	}

	store := &PostgresStore{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL database")
	return store, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS housing_listings (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		rent INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL,
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms INTEGER NOT NULL DEFAULT 0,
		address TEXT,
		neighborhood TEXT,
		pet_friendly BOOLEAN NOT NULL DEFAULT FALSE,
		furnished BOOLEAN NOT NULL DEFAULT FALSE,
		utilities_included BOOLEAN NOT NULL DEFAULT FALSE,
		parking_available BOOLEAN NOT NULL DEFAULT FALSE,
		images TEXT[],
		contact_name TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		source TEXT NOT NULL,
		source_url TEXT NOT NULL,
		scraped_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_housing_listings_source ON housing_listings (source);
	CREATE INDEX IF NOT EXISTS idx_housing_listings_scraped_at ON housing_listings (scraped_at);
	CREATE INDEX IF NOT EXISTS idx_housing_listings_source_url ON housing_listings (source, source_url);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertBatch writes listings in chunks. Inserts are plain appends; dedup is
// the caller's concern (the orchestrator dedups within a run, Exists lets it
// check across runs).
func (s *PostgresStore) InsertBatch(ctx context.Context, listings []models.Listing) (int, error) {
	if len(listings) == 0 {
		return 0, nil
	}

	inserted := 0
	for start := 0; start < len(listings); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(listings) {
			end = len(listings)
		}

		n, err := s.insertChunk(ctx, listings[start:end])
		inserted += n
		if err != nil {
			return inserted, fmt.Errorf("insert batch (rows %d-%d): %w", start, end-1, err)
		}
	}

	s.logger.Info("Inserted %d listings", inserted)
	return inserted, nil
}

func (s *PostgresStore) insertChunk(ctx context.Context, listings []models.Listing) (int, error) {
	q := s.builder.Insert("housing_listings").Columns(
		"title", "description", "rent", "type", "bedrooms", "bathrooms",
		"address", "neighborhood",
		"pet_friendly", "furnished", "utilities_included", "parking_available",
		"images", "contact_name", "contact_email", "contact_phone",
		"source", "source_url", "scraped_at",
	)

	for _, l := range listings {
		q = q.Values(
			l.Title, l.Description, l.Rent, string(l.Type), l.Bedrooms, l.Bathrooms,
			l.Address, l.Neighborhood,
			l.PetFriendly, l.Furnished, l.UtilitiesIncluded, l.ParkingAvailable,
			pq.Array(l.Images), l.Contact.Name, l.Contact.Email, l.Contact.Phone,
			l.Source, l.SourceURL, l.ScrapedAt,
		)
	}

	res, err := q.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return len(listings), nil
	}
	return int(rows), nil
}

// Exists reports whether a listing with the same source, source URL and title
// was stored before. Title is part of the key because several floorplans of
// one community site share a single page URL.
func (s *PostgresStore) Exists(ctx context.Context, l models.Listing) (bool, error) {
	var id int
	err := s.builder.Select("id").
		From("housing_listings").
		Where(sq.Eq{"source": l.Source, "source_url": l.SourceURL, "title": l.Title}).
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check existing listing: %w", err)
	}
	return true, nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
