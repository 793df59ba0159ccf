package sources

// The built-in fleet: the two U District subreddits, the big UW housing
// Facebook groups, and the apartment-community websites around campus.
// Community sites publish floorplans client-side, so they all go through the
// headless strategy.

func redditSource(name, subreddit, display string) SourceConfig {
	return SourceConfig{
		Name:        name,
		DisplayName: display,
		Endpoint:    "https://www.reddit.com/r/" + subreddit + "/new.json?limit=25",
		Strategy:    FetchStatic,
		Rules: ExtractionRules{
			Text: &TextRules{Format: FormatRedditJSON, MaxPosts: 25},
		},
	}
}

func facebookSource(name, group, display string) SourceConfig {
	return SourceConfig{
		Name:        name,
		DisplayName: display,
		Endpoint:    "https://www.facebook.com/groups/" + group,
		Strategy:    FetchHeadless,
		Rules: ExtractionRules{
			Text: &TextRules{
				Format:        FormatHTMLPosts,
				PostSelector:  `[data-testid="post_message"]`,
				MaxPosts:      20,
				DefaultAuthor: "Facebook User",
			},
		},
	}
}

func communitySource(name, display, endpoint, address string, sel SelectorRules, amenities ...string) SourceConfig {
	return SourceConfig{
		Name:        name,
		DisplayName: display,
		Endpoint:    endpoint,
		Strategy:    FetchHeadless,
		Rules:       ExtractionRules{Selectors: &sel},
		Address:     address,
		Amenities:   amenities,
	}
}

// floorplanSelectors covers the common floorplan-grid markup most of the
// community sites share; the few odd ones override individual selectors.
func floorplanSelectors() SelectorRules {
	return SelectorRules{
		Container: ".floor-plan, .plan, .floorplan, .unit",
		Title:     ".plan-name, .name, .title, .unit-name",
		Price:     ".price, .rent, .monthly-rent, .starting-price",
		Bedrooms:  ".beds, .bedrooms, .bed-count",
		Bathrooms: ".baths, .bathrooms, .bath-count",
		Image:     "img",
	}
}

// Builtin returns the default source fleet in scrape order.
func Builtin() []SourceConfig {
	trailside := SelectorRules{
		Container: ".floor-plan-item, .floorplan-item, .plan-item",
		Title:     ".floor-plan-title, .plan-title, .name",
		Price:     ".rent-amount, .price, .rent",
		Bedrooms:  ".bedroom-count, .beds, .bedrooms",
		Bathrooms: ".bathroom-count, .baths, .bathrooms",
		Image:     "img",
	}

	strata := floorplanSelectors()
	strata.Container = ".floor-plan, .plan, .floorplan"
	strata.Title = ".plan-name, .name, .title"
	strata.Price = ".price, .rent, .monthly-rent"

	standard := floorplanSelectors()
	standard.Container = ".floor-plan, .plan, .floorplan, .unit, .apartment"
	standard.Title = ".plan-name, .name, .title, .unit-name, .apartment-name"

	tripalink := SelectorRules{
		Container: ".property-card, .listing-card, .apartment-card",
		Title:     ".property-name, .listing-name, .apartment-name",
		Price:     ".rent, .price, .monthly-rent",
		Bedrooms:  ".bedrooms, .beds, .bed-count",
		Bathrooms: ".bathrooms, .baths, .bath-count",
		Image:     "img",
	}

	return []SourceConfig{
		redditSource("reddit-udistrict", "udistrict", "Reddit r/udistrict"),
		redditSource("reddit-uw", "uw", "Reddit r/uw"),

		facebookSource("facebook-uw-housing", "UWHousingSubletsRoommates",
			"UW Housing, Sublets & Roommates"),
		facebookSource("facebook-uw-housing-official", "UniversityOfWashingtonHousing",
			"University of Washington Housing"),
		facebookSource("facebook-udistrict-housing", "SeattleUDistrictHousing",
			"Seattle U District Housing"),

		communitySource("trailside", "Trailside U District",
			"https://www.trailsideudistrict.com/floorplans",
			"Trailside U District, Seattle", trailside,
			"Modern amenities", "Close to UW campus", "U District location"),
		communitySource("strata", "Strata Apartments",
			"https://www.strataapts.com/floorplans",
			"Strata Apartments, Seattle", strata,
			"Luxury amenities", "UW campus proximity", "U District location"),
		communitySource("the-m", "The M Seattle",
			"https://www.themseattle.com/floorplans",
			"The M Seattle, Seattle", floorplanSelectors(),
			"Modern living", "UW campus access", "U District location"),
		communitySource("theory-udistrict", "Theory UDistrict",
			"https://www.theoryudistrict.com/floorplans",
			"Theory UDistrict, Seattle", floorplanSelectors(),
			"Student housing", "UW campus proximity", "U District location"),
		communitySource("the-standard", "The Standard Seattle",
			"https://thestandardseattle.landmark-properties.com/",
			"The Standard Seattle, Seattle", standard,
			"Landmark Properties", "UW campus access", "U District location"),
		communitySource("muriels-landing", "Muriel's Landing",
			"https://www.murielslanding.com/floorplans",
			"Muriel's Landing, Seattle", floorplanSelectors(),
			"Student housing", "UW campus proximity", "U District location"),
		communitySource("here-seattle", "HERE Seattle",
			"https://www.hereseattle.com/floorplans",
			"HERE Seattle, Seattle", floorplanSelectors(),
			"Modern living", "UW campus access", "U District location"),
		communitySource("bridge11", "Bridge11 Apartments",
			"https://www.bridge11apartments.com/floorplans",
			"Bridge11 Apartments, Seattle", floorplanSelectors(),
			"Student housing", "UW campus proximity", "U District location"),
		communitySource("tripalink", "Tripalink",
			"https://www.tripalink.com/seattle-uw",
			"Tripalink Property, Seattle", tripalink,
			"Student housing", "Furnished options", "UW campus proximity"),
	}
}
