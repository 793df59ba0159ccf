package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"huskykennel-scraper/fetcher"
	"huskykennel-scraper/models"
	"huskykennel-scraper/sources"
)

// extractDOM walks the rendered page with the source's CSS selector rules.
// One container element becomes one candidate; a container missing a title or
// a price is decoration, not a unit, and is skipped.
func (e *Extractor) extractDOM(raw *fetcher.RawContent, src sources.SourceConfig) ([]models.CandidateRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page for %s: %w", src.Name, err)
	}

	rules := src.Rules.Selectors
	pet, furnished, utilities, parking := amenityFlags(src.Amenities)
	var records []models.CandidateRecord

	doc.Find(rules.Container).Each(func(_ int, container *goquery.Selection) {
		title := strings.TrimSpace(container.Find(rules.Title).First().Text())
		priceText := strings.TrimSpace(container.Find(rules.Price).First().Text())
		if title == "" || priceText == "" {
			return
		}

		bedrooms := selectionCount(container, rules.Bedrooms)
		bathrooms := selectionCount(container, rules.Bathrooms)

		var images []string
		if rules.Image != "" {
			container.Find(rules.Image).Each(func(_ int, img *goquery.Selection) {
				if u, ok := img.Attr("src"); ok && u != "" {
					images = append(images, u)
				}
			})
		}

		records = append(records, models.CandidateRecord{
			Title:       title,
			Description: src.DisplayName + " - " + title,
			Rent:        digitsOnly(priceText),
			Bedrooms:    &bedrooms,
			Bathrooms:   &bathrooms,
			Address:     src.Address,

			PetFriendly:       pet,
			Furnished:         furnished,
			UtilitiesIncluded: utilities,
			ParkingAvailable:  parking,

			Images:   images,
			Contact:  models.ContactInfo{Name: "Property Management"},
			DeepLink: raw.FetchedURL,
		})
	})

	if e.logger != nil {
		e.logger.Info("%s: %d floorplans extracted", src.Name, len(records))
	}
	return records, nil
}

// amenityFlags derives the four amenity booleans from a site's fixed amenity
// phrases, the same substring checks the free-text path applies to post text.
func amenityFlags(amenities []string) (pet, furnished, utilities, parking bool) {
	for _, a := range amenities {
		a = strings.ToLower(a)
		pet = pet || strings.Contains(a, "pet")
		furnished = furnished || strings.Contains(a, "furnished")
		utilities = utilities || strings.Contains(a, "utilities")
		parking = parking || strings.Contains(a, "parking")
	}
	return pet, furnished, utilities, parking
}

// selectionCount reads the first element under sel and parses its digits.
// An empty selector or no match reads as zero, which downstream treats as a
// studio-style unit rather than missing data.
func selectionCount(container *goquery.Selection, selector string) int {
	if selector == "" {
		return 0
	}
	return digitsOnly(strings.TrimSpace(container.Find(selector).First().Text()))
}
