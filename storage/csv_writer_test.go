package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"huskykennel-scraper/models"
)

func TestCSVWriterExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "listings.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	listings := []models.Listing{
		{
			Title:        "Studio A",
			Rent:         1200,
			Type:         models.TypeStudio,
			Neighborhood: "U District",
			Address:      "Example Apartments, Seattle",
			Contact:      models.ContactInfo{Name: "Property Management"},
			Source:       "example-apts",
			SourceURL:    "https://example-apts.com/floorplans",
			ScrapedAt:    time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			Title:     "Sublet near campus",
			Rent:      900,
			Type:      models.TypeApartment,
			Bedrooms:  2,
			Bathrooms: 1,
			Source:    "reddit-udistrict",
			SourceURL: "https://reddit.com/r/udistrict/comments/abc",
			ScrapedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		},
	}

	if err := w.Export(listings); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "source" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Studio A" || rows[1][2] != "1200" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][0] != "reddit-udistrict" || rows[2][10] != "2025-03-14T09:00:00Z" {
		t.Errorf("second row = %v", rows[2])
	}
}
