package sources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinFleetIsValid(t *testing.T) {
	fleet := Builtin()
	if len(fleet) == 0 {
		t.Fatal("built-in fleet is empty")
	}

	seen := make(map[string]bool)
	for _, src := range fleet {
		if seen[src.Name] {
			t.Errorf("duplicate source name %q", src.Name)
		}
		seen[src.Name] = true

		if err := validate(src); err != nil {
			t.Errorf("source %q invalid: %v", src.Name, err)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(Builtin())

	src, err := r.Get("reddit-udistrict")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if src.Strategy != FetchStatic {
		t.Errorf("reddit source strategy = %q, want static", src.Strategy)
	}

	_, err = r.Get("craigslist")
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Get unknown: err = %v, want ErrSourceNotFound", err)
	}
}

func TestRegistryOrderAndReplacement(t *testing.T) {
	a := SourceConfig{Name: "a", Endpoint: "https://a.example", Strategy: FetchStatic,
		Rules: ExtractionRules{Text: &TextRules{Format: FormatRedditJSON}}}
	b := SourceConfig{Name: "b", Endpoint: "https://b.example", Strategy: FetchStatic,
		Rules: ExtractionRules{Text: &TextRules{Format: FormatRedditJSON}}}
	a2 := a
	a2.Endpoint = "https://a2.example"

	r := NewRegistry([]SourceConfig{a, b, a2})

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	all := r.All()
	if all[0].Name != "a" || all[1].Name != "b" {
		t.Errorf("order = %q, %q; want a, b", all[0].Name, all[1].Name)
	}
	if all[0].Endpoint != "https://a2.example" {
		t.Errorf("duplicate should replace in place, got %q", all[0].Endpoint)
	}
}

func TestLoadFile(t *testing.T) {
	yaml := `
sources:
  - name: reddit-test
    endpoint: https://www.reddit.com/r/test/new.json?limit=25
    strategy: static
    rules:
      text:
        format: redditjson
        maxPosts: 25
  - name: test-apts
    displayName: Test Apartments
    endpoint: https://test-apts.example/floorplans
    strategy: headless
    address: Test Apartments, Seattle
    rules:
      selectors:
        container: ".floor-plan"
        title: ".plan-name"
        price: ".price"
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	configs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("got %d sources, want 2", len(configs))
	}
	if configs[0].Rules.Text == nil || configs[0].Rules.Text.MaxPosts != 25 {
		t.Errorf("text rules not decoded: %+v", configs[0].Rules)
	}
	if configs[1].Rules.Selectors == nil || configs[1].Rules.Selectors.Container != ".floor-plan" {
		t.Errorf("selector rules not decoded: %+v", configs[1].Rules)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing endpoint", `
sources:
  - name: broken
    strategy: static
    rules:
      text:
        format: redditjson
`},
		{"unknown strategy", `
sources:
  - name: broken
    endpoint: https://x.example
    strategy: carrier-pigeon
    rules:
      text:
        format: redditjson
`},
		{"both rule shapes", `
sources:
  - name: broken
    endpoint: https://x.example
    strategy: static
    rules:
      text:
        format: redditjson
      selectors:
        container: ".x"
        title: ".t"
        price: ".p"
`},
		{"htmlposts without selector", `
sources:
  - name: broken
    endpoint: https://x.example
    strategy: headless
    rules:
      text:
        format: htmlposts
`},
		{"empty file", `sources: []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
