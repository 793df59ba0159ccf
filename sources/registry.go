package sources

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSourceNotFound is returned by Registry.Get for unknown source names.
var ErrSourceNotFound = errors.New("source not registered")

// Registry is the ordered, read-only set of sources a run iterates over.
type Registry struct {
	ordered []SourceConfig
	byName  map[string]SourceConfig
}

// NewRegistry builds a registry from the given configs, preserving order.
// Later entries with a duplicate name replace earlier ones.
func NewRegistry(configs []SourceConfig) *Registry {
	r := &Registry{byName: make(map[string]SourceConfig, len(configs))}
	for _, cfg := range configs {
		if _, dup := r.byName[cfg.Name]; !dup {
			r.ordered = append(r.ordered, cfg)
		} else {
			for i := range r.ordered {
				if r.ordered[i].Name == cfg.Name {
					r.ordered[i] = cfg
					break
				}
			}
		}
		r.byName[cfg.Name] = cfg
	}
	return r
}

// All returns every source in registration order.
func (r *Registry) All() []SourceConfig {
	out := make([]SourceConfig, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get resolves a source by its unique name.
func (r *Registry) Get(name string) (SourceConfig, error) {
	if cfg, ok := r.byName[name]; ok {
		return cfg, nil
	}
	return SourceConfig{}, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
}

// Len reports the number of registered sources.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// LoadFile reads source configs from a YAML file. The file replaces the
// built-in fleet entirely, so operators can run a trimmed or extended set.
func LoadFile(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sources: read %s: %w", path, err)
	}

	var file struct {
		Sources []SourceConfig `yaml:"sources"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("sources: parse %s: %w", path, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources: %s defines no sources", path)
	}

	for i, src := range file.Sources {
		if err := validate(src); err != nil {
			return nil, fmt.Errorf("sources: %s entry %d: %w", path, i, err)
		}
	}

	return file.Sources, nil
}

func validate(src SourceConfig) error {
	if src.Name == "" {
		return errors.New("missing name")
	}
	if src.Endpoint == "" {
		return errors.New("missing endpoint")
	}
	switch src.Strategy {
	case FetchStatic, FetchHeadless:
	default:
		return fmt.Errorf("unknown strategy %q", src.Strategy)
	}
	hasSelectors := src.Rules.Selectors != nil
	hasText := src.Rules.Text != nil
	if hasSelectors == hasText {
		return errors.New("exactly one of rules.selectors or rules.text must be set")
	}
	if hasText && src.Rules.Text.Format == FormatHTMLPosts && src.Rules.Text.PostSelector == "" {
		return errors.New("htmlposts rules require a postSelector")
	}
	return nil
}
