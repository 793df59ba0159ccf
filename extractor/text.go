package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"huskykennel-scraper/fetcher"
	"huskykennel-scraper/models"
	"huskykennel-scraper/sources"
)

// housingKeywords gates free-text posts: anything that mentions none of these
// is not a housing post and is dropped before parsing.
var housingKeywords = []string{
	"sublease", "sublet", "apartment", "studio", "1b1b", "2b2b", "3b3b",
	"room", "bedroom", "lease", "rent", "available", "looking for",
	"housing", "accommodation", "move-in", "move in", "furnished",
	"unfurnished", "utilities", "parking", "pet friendly", "no pets",
}

// Rent patterns are tried in order; the first match with a positive amount
// wins, so "$1,200" beats a later "1200 per month" restatement.
var rentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d{1,4}(?:,\d{3})?)`),
	regexp.MustCompile(`(?i)(\d{1,4}(?:,\d{3})?)\s*(?:dollars?|bucks?|per\s*month)`),
	regexp.MustCompile(`(?i)rent[:\s]*\$?(\d{1,4}(?:,\d{3})?)`),
	regexp.MustCompile(`(?i)price[:\s]*\$?(\d{1,4}(?:,\d{3})?)`),
}

var (
	bedroomPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:bed|bedroom|br|bdr)`)
	bathroomPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:bath|bathroom|ba)`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// neighborhoods around campus, checked in order against the post text.
var neighborhoods = []string{
	"u district", "udistrict", "university district", "campus", "northgate",
	"roosevelt", "greenlake", "wallingford", "fremont", "ballard",
}

func isHousingRelated(post Post) bool {
	text := strings.ToLower(post.Title + " " + post.Body)
	for _, kw := range housingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// extractFromText parses one housing-related post into a candidate record.
// Returns false when the post carries too little to be a listing.
func (e *Extractor) extractFromText(post Post, src sources.SourceConfig) (models.CandidateRecord, bool) {
	title := strings.TrimSpace(post.Title)
	if len(title) < 5 {
		return models.CandidateRecord{}, false
	}

	text := strings.ToLower(title + " " + post.Body)

	rent := 0
	for _, pattern := range rentPatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		if n := digitsOnly(match); n > 0 {
			rent = n
			break
		}
	}

	var bedrooms, bathrooms *int
	if m := bedroomPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			bedrooms = &n
		}
	}
	if m := bathroomPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			bathrooms = &n
		}
	}

	housingType := models.TypeApartment
	switch {
	case strings.Contains(text, "studio"):
		housingType = models.TypeStudio
	case strings.Contains(text, "house") || strings.Contains(text, "townhouse"):
		housingType = models.TypeHouse
	case strings.Contains(text, "room") &&
		(strings.Contains(text, "share") || strings.Contains(text, "shared")):
		housingType = models.TypeShared
	}

	neighborhood := ""
	for _, n := range neighborhoods {
		if strings.Contains(text, n) {
			neighborhood = n
			break
		}
	}

	author := post.Author
	if author == "" {
		author = src.Rules.Text.DefaultAuthor
	}

	return models.CandidateRecord{
		Title:        title,
		Description:  post.Body,
		Rent:         rent,
		Type:         housingType,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Address:      "U District Area",
		Neighborhood: neighborhood,

		PetFriendly: strings.Contains(text, "pet") ||
			strings.Contains(text, "dog") || strings.Contains(text, "cat"),
		Furnished:         strings.Contains(text, "furnished"),
		UtilitiesIncluded: strings.Contains(text, "utilities"),
		ParkingAvailable:  strings.Contains(text, "parking"),

		Images: post.Images,
		Contact: models.ContactInfo{
			Name:  author,
			Email: emailPattern.FindString(text),
			Phone: phonePattern.FindString(text),
		},
		DeepLink: post.URL,
	}, true
}

// collectPosts turns the raw body into posts per the source's text format.
func (e *Extractor) collectPosts(raw *fetcher.RawContent, src sources.SourceConfig) ([]Post, error) {
	switch src.Rules.Text.Format {
	case sources.FormatRedditJSON:
		return decodeRedditFeed(raw.Body, src.Rules.Text.MaxPosts)
	case sources.FormatHTMLPosts:
		return collectHTMLPosts(raw, src.Rules.Text)
	default:
		return nil, fmt.Errorf("source %s: unknown text format %q", src.Name, src.Rules.Text.Format)
	}
}

// decodeRedditFeed parses Reddit's /new.json listing shape.
func decodeRedditFeed(body []byte, maxPosts int) ([]Post, error) {
	var feed struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					Selftext  string `json:"selftext"`
					Author    string `json:"author"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode reddit feed: %w", err)
	}

	children := feed.Data.Children
	if maxPosts > 0 && len(children) > maxPosts {
		children = children[:maxPosts]
	}

	posts := make([]Post, 0, len(children))
	for _, child := range children {
		posts = append(posts, Post{
			Title:  child.Data.Title,
			Body:   child.Data.Selftext,
			Author: child.Data.Author,
			URL:    "https://reddit.com" + child.Data.Permalink,
		})
	}
	return posts, nil
}

// collectHTMLPosts pulls post blocks out of a rendered page. The first 100
// characters of a post double as its title since group posts have none.
func collectHTMLPosts(raw *fetcher.RawContent, rules *sources.TextRules) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
	if err != nil {
		return nil, fmt.Errorf("parse posts page: %w", err)
	}

	var posts []Post
	doc.Find(rules.PostSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if rules.MaxPosts > 0 && len(posts) >= rules.MaxPosts {
			return false
		}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}

		title := text
		if r := []rune(title); len(r) > 100 {
			title = string(r[:100])
		}

		var images []string
		sel.Find("img").Each(func(_ int, img *goquery.Selection) {
			if src, ok := img.Attr("src"); ok && src != "" {
				images = append(images, src)
			}
		})

		posts = append(posts, Post{
			Title:  title,
			Body:   text,
			Author: rules.DefaultAuthor,
			Images: images,
		})
		return true
	})

	return posts, nil
}

// digitsOnly strips everything but digits and parses the remainder; a string
// with no digits yields 0.
func digitsOnly(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
