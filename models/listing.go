package models

import "time"

// HousingType classifies a listing; it is always one of the four variants below.
type HousingType string

const (
	TypeApartment HousingType = "apartment"
	TypeHouse     HousingType = "house"
	TypeStudio    HousingType = "studio"
	TypeShared    HousingType = "shared"
)

// ContactInfo holds whatever contact details could be pulled out of a listing.
// Every field is optional.
type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

// CandidateRecord is an unvalidated, source-shaped extraction. It is what the
// extractors produce before normalization into the canonical Listing.
// Bedrooms/Bathrooms are pointers so "not mentioned" (free text) can be told
// apart from "explicitly zero" (a structured page with no bed column).
type CandidateRecord struct {
	Title        string
	Description  string
	Rent         int
	Type         HousingType // empty when the extractor made no call
	Bedrooms     *int
	Bathrooms    *int
	Address      string
	Neighborhood string

	PetFriendly       bool
	Furnished         bool
	UtilitiesIncluded bool
	ParkingAvailable  bool

	Images   []string
	Contact  ContactInfo
	DeepLink string // per-item link back to the original post/page, when known
}

// Listing is the canonical housing record handed to the persistence gateway.
type Listing struct {
	Title        string
	Description  string
	Rent         int // monthly USD; 0 means unparseable, needs review
	Type         HousingType
	Bedrooms     int
	Bathrooms    int
	Address      string
	Neighborhood string

	PetFriendly       bool
	Furnished         bool
	UtilitiesIncluded bool
	ParkingAvailable  bool

	Images    []string
	Contact   ContactInfo
	Source    string // registry key of the producing source
	SourceURL string
	ScrapedAt time.Time
}

// SourceResult is the per-source entry of a run summary. A source that ran but
// found nothing has Success=true and RecordCount=0; a failed source carries
// the error that stopped it. The two are never conflated.
type SourceResult struct {
	Source      string
	Success     bool
	RecordCount int
	Err         error
}

// RunResult summarizes one full orchestration pass over all registered
// sources. WriteErr is set when the final batch insert failed; the extraction
// counts remain valid either way.
type RunResult struct {
	PerSource          []SourceResult
	TotalListingsFound int
	DurationMs         int64
	WriteErr           error
	Cancelled          bool
}

// SourceRunResult is the outcome of a targeted single-source run.
type SourceRunResult struct {
	SourceResult
	WriteErr   error
	DurationMs int64
}
