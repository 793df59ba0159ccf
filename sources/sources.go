package sources

// FetchStrategy selects how a source's content is retrieved.
type FetchStrategy string

const (
	// FetchStatic is a plain HTTP GET; enough for JSON feeds and
	// server-rendered pages.
	FetchStatic FetchStrategy = "static"
	// FetchHeadless drives a real browser; required for pages that only
	// render their listings client-side.
	FetchHeadless FetchStrategy = "headless"
)

// SelectorRules describes structured DOM extraction. Each field is a CSS
// selector; alternatives are expressed as comma groups and the first match in
// document order wins.
type SelectorRules struct {
	Container string `yaml:"container"`
	Title     string `yaml:"title"`
	Price     string `yaml:"price"`
	Bedrooms  string `yaml:"bedrooms,omitempty"`
	Bathrooms string `yaml:"bathrooms,omitempty"`
	Image     string `yaml:"image,omitempty"`
}

// Text formats understood by the free-text extractor.
const (
	FormatRedditJSON = "redditjson" // Reddit /new.json listing feed
	FormatHTMLPosts  = "htmlposts"  // rendered page, posts under PostSelector
)

// TextRules describes free-text extraction over forum/group-style posts.
type TextRules struct {
	Format        string `yaml:"format"`
	PostSelector  string `yaml:"postSelector,omitempty"` // required for htmlposts
	MaxPosts      int    `yaml:"maxPosts,omitempty"`
	DefaultAuthor string `yaml:"defaultAuthor,omitempty"`
}

// ExtractionRules is a tagged variant: exactly one of Selectors or Text is
// set, and that shape decides the extraction mode for the source.
type ExtractionRules struct {
	Selectors *SelectorRules `yaml:"selectors,omitempty"`
	Text      *TextRules     `yaml:"text,omitempty"`
}

// SourceConfig fully describes one external origin of housing data. Entries
// are immutable for the duration of a run; adding a source is a configuration
// change, never an orchestrator change.
type SourceConfig struct {
	Name        string          `yaml:"name"` // unique, stable key
	DisplayName string          `yaml:"displayName,omitempty"`
	Endpoint    string          `yaml:"endpoint"`
	Strategy    FetchStrategy   `yaml:"strategy"`
	Rules       ExtractionRules `yaml:"rules"`
	Address     string          `yaml:"address,omitempty"` // fixed address line for community sites
	// Amenities are fixed per-site amenity phrases for community sites,
	// whose pages list amenities once for the building rather than per unit.
	Amenities []string `yaml:"amenities,omitempty"`
}
