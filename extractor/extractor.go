package extractor

import (
	"fmt"

	"huskykennel-scraper/fetcher"
	"huskykennel-scraper/models"
	"huskykennel-scraper/sources"
	"huskykennel-scraper/utils"
)

// Post is one forum/group-style entry pulled out of a text-mode source before
// free-text parsing.
type Post struct {
	Title  string
	Body   string
	Author string
	URL    string // per-post link, empty when the source has none
	Images []string
}

// Extractor turns raw fetched content into candidate records according to a
// source's extraction rules. One instance serves every source in a run.
type Extractor struct {
	logger *utils.Logger

	// parsePost is the free-text parsing step, held as a field so it can be
	// observed in tests. Assigned once in New.
	parsePost func(post Post, src sources.SourceConfig) (models.CandidateRecord, bool)
}

// New creates an Extractor.
func New(logger *utils.Logger) *Extractor {
	e := &Extractor{logger: logger}
	e.parsePost = e.extractFromText
	return e
}

// Extract dispatches on the source's rule shape: CSS selector rules walk the
// DOM, text rules decode posts and run the free-text parser over each one
// that looks housing-related.
func (e *Extractor) Extract(raw *fetcher.RawContent, src sources.SourceConfig) ([]models.CandidateRecord, error) {
	switch {
	case src.Rules.Selectors != nil:
		return e.extractDOM(raw, src)
	case src.Rules.Text != nil:
		posts, err := e.collectPosts(raw, src)
		if err != nil {
			return nil, err
		}
		return e.extractPosts(posts, src), nil
	default:
		return nil, fmt.Errorf("source %s has no extraction rules", src.Name)
	}
}

func (e *Extractor) extractPosts(posts []Post, src sources.SourceConfig) []models.CandidateRecord {
	records := make([]models.CandidateRecord, 0, len(posts))
	relevant := 0
	for _, post := range posts {
		if !isHousingRelated(post) {
			continue
		}
		relevant++
		if rec, ok := e.parsePost(post, src); ok {
			records = append(records, rec)
		}
	}
	if e.logger != nil {
		e.logger.Info("%s: %d posts, %d housing-related, %d extracted",
			src.Name, len(posts), relevant, len(records))
	}
	return records
}
