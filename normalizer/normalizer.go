package normalizer

import (
	"time"

	"huskykennel-scraper/models"
	"huskykennel-scraper/sources"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
	truncationMark    = "..."
)

// Normalizer turns source-shaped candidate records into canonical listings.
// It is pure: the same candidate and source always produce the same listing,
// except for the scrape timestamp.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer using the wall clock.
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize applies caps, defaults and provenance to one candidate.
func (n *Normalizer) Normalize(c models.CandidateRecord, src sources.SourceConfig) models.Listing {
	rent := c.Rent
	if rent < 0 {
		rent = 0
	}

	housingType := c.Type
	if housingType == "" {
		// A structured page that lists no bedroom count is a studio-style
		// unit; anything else defaults to an apartment.
		if c.Bedrooms != nil && *c.Bedrooms == 0 {
			housingType = models.TypeStudio
		} else {
			housingType = models.TypeApartment
		}
	}

	neighborhood := c.Neighborhood
	if neighborhood == "" {
		neighborhood = "U District"
	}

	sourceURL := c.DeepLink
	if sourceURL == "" {
		sourceURL = src.Endpoint
	}

	return models.Listing{
		Title:        truncate(c.Title, maxTitleLen),
		Description:  truncate(c.Description, maxDescriptionLen),
		Rent:         rent,
		Type:         housingType,
		Bedrooms:     intOrZero(c.Bedrooms),
		Bathrooms:    intOrZero(c.Bathrooms),
		Address:      c.Address,
		Neighborhood: neighborhood,

		PetFriendly:       c.PetFriendly,
		Furnished:         c.Furnished,
		UtilitiesIncluded: c.UtilitiesIncluded,
		ParkingAvailable:  c.ParkingAvailable,

		Images:    c.Images,
		Contact:   c.Contact,
		Source:    src.Name,
		SourceURL: sourceURL,
		ScrapedAt: n.now(),
	}
}

// NormalizeAll maps Normalize over a batch, preserving order.
func (n *Normalizer) NormalizeAll(cands []models.CandidateRecord, src sources.SourceConfig) []models.Listing {
	out := make([]models.Listing, 0, len(cands))
	for _, c := range cands {
		out = append(out, n.Normalize(c, src))
	}
	return out
}

// truncate caps s at max runes; a truncated string ends in the mark and is
// exactly max runes long.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-len(truncationMark)]) + truncationMark
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
