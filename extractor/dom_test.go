package extractor

import (
	"testing"

	"huskykennel-scraper/fetcher"
	"huskykennel-scraper/sources"
)

func rawContent(html string) *fetcher.RawContent {
	return &fetcher.RawContent{
		Body:       []byte(html),
		StatusCode: 200,
		FetchedURL: "https://www.example-apts.com/floorplans",
	}
}

func domSource() sources.SourceConfig {
	return sources.SourceConfig{
		Name:        "example-apts",
		DisplayName: "Example Apartments",
		Endpoint:    "https://www.example-apts.com/floorplans",
		Strategy:    sources.FetchHeadless,
		Address:     "Example Apartments, Seattle",
		Rules: sources.ExtractionRules{
			Selectors: &sources.SelectorRules{
				Container: ".floor-plan, .plan",
				Title:     ".plan-name, .name",
				Price:     ".price, .rent",
				Bedrooms:  ".beds",
				Bathrooms: ".baths",
				Image:     "img",
			},
		},
	}
}

func TestExtractDOMFloorplans(t *testing.T) {
	html := `<html><body>
		<div class="floor-plan">
			<div class="plan-name">Studio A</div>
			<div class="price">$1,200/mo</div>
		</div>
		<div class="floor-plan">
			<div class="plan-name">2x2 Premier</div>
			<div class="price">From $2,500</div>
			<div class="beds">2 Bed</div>
			<div class="baths">2 Bath</div>
			<img src="https://cdn.example/2x2.jpg">
		</div>
		<div class="floor-plan">
			<div class="plan-name">Coming Soon</div>
		</div>
		<div class="plan">
			<div class="name">Loft B</div>
			<div class="rent">$1,850</div>
		</div>
	</body></html>`

	e := New(nil)
	src := domSource()

	records, err := e.extractDOM(rawContent(html), src)
	if err != nil {
		t.Fatalf("extractDOM: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (price-less container skipped)", len(records))
	}

	studio := records[0]
	if studio.Title != "Studio A" {
		t.Errorf("Title = %q", studio.Title)
	}
	if studio.Rent != 1200 {
		t.Errorf("Rent = %d, want 1200", studio.Rent)
	}
	if studio.Bedrooms == nil || *studio.Bedrooms != 0 {
		t.Errorf("Bedrooms = %v, want explicit 0", studio.Bedrooms)
	}
	if studio.Type != "" {
		t.Errorf("Type = %q, want unset (normalization decides)", studio.Type)
	}
	if studio.Description != "Example Apartments - Studio A" {
		t.Errorf("Description = %q", studio.Description)
	}
	if studio.Contact.Name != "Property Management" {
		t.Errorf("Contact.Name = %q", studio.Contact.Name)
	}
	if studio.Address != "Example Apartments, Seattle" {
		t.Errorf("Address = %q", studio.Address)
	}
	if studio.DeepLink != "https://www.example-apts.com/floorplans" {
		t.Errorf("DeepLink = %q", studio.DeepLink)
	}

	premier := records[1]
	if premier.Rent != 2500 {
		t.Errorf("Rent = %d, want 2500", premier.Rent)
	}
	if premier.Bedrooms == nil || *premier.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v, want 2", premier.Bedrooms)
	}
	if premier.Bathrooms == nil || *premier.Bathrooms != 2 {
		t.Errorf("Bathrooms = %v, want 2", premier.Bathrooms)
	}
	if len(premier.Images) != 1 || premier.Images[0] != "https://cdn.example/2x2.jpg" {
		t.Errorf("Images = %v", premier.Images)
	}

	loft := records[2]
	if loft.Title != "Loft B" || loft.Rent != 1850 {
		t.Errorf("alternate selectors: got %q / %d", loft.Title, loft.Rent)
	}
}

func TestExtractDOMFixedAmenities(t *testing.T) {
	html := `<html><body>
		<div class="floor-plan">
			<div class="plan-name">1x1 Deluxe</div>
			<div class="price">$1,600</div>
		</div>
	</body></html>`

	e := New(nil)
	src := domSource()
	src.Amenities = []string{"Student housing", "Furnished options", "Parking garage"}

	records, err := e.extractDOM(rawContent(html), src)
	if err != nil {
		t.Fatalf("extractDOM: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if !rec.Furnished {
		t.Error("Furnished should derive from the site's fixed amenities")
	}
	if !rec.ParkingAvailable {
		t.Error("ParkingAvailable should derive from the site's fixed amenities")
	}
	if rec.PetFriendly || rec.UtilitiesIncluded {
		t.Errorf("unmentioned amenities should stay false, got pet=%v utilities=%v",
			rec.PetFriendly, rec.UtilitiesIncluded)
	}
}

func TestAmenityFlags(t *testing.T) {
	tests := []struct {
		name      string
		amenities []string
		pet, furn bool
	}{
		{"empty", nil, false, false},
		{"furnished options", []string{"Furnished options"}, false, true},
		{"pet policy", []string{"Pet friendly building"}, true, false},
		{"case insensitive", []string{"FURNISHED units"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet, furn, _, _ := amenityFlags(tt.amenities)
			if pet != tt.pet || furn != tt.furn {
				t.Errorf("amenityFlags(%v) = pet %v, furnished %v; want %v, %v",
					tt.amenities, pet, furn, tt.pet, tt.furn)
			}
		})
	}
}

func TestExtractDispatch(t *testing.T) {
	e := New(nil)

	src := domSource()
	records, err := e.Extract(rawContent("<html><body></body></html>"), src)
	if err != nil {
		t.Fatalf("Extract (selectors): %v", err)
	}
	if len(records) != 0 {
		t.Errorf("empty page yielded %d records", len(records))
	}

	src.Rules = sources.ExtractionRules{}
	if _, err := e.Extract(rawContent(""), src); err == nil {
		t.Error("expected error for source without extraction rules")
	}
}
