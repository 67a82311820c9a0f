package site

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sites.toml
var sitesTOML []byte

// Selectors are the CSS selectors the finder drives on a search page.
type Selectors struct {
	ConsentAccept   string `toml:"consent_accept"`
	SearchInput     string `toml:"search_input"`
	Results         string `toml:"results"`
	Teaser          string `toml:"teaser"`
	TeaserLink      string `toml:"teaser_link"`
	SortByPublished string `toml:"sort_by_published"`
	LoadMore        string `toml:"load_more"`
}

// Profile describes one news site: where to start, where to search and
// how its markup is shaped.
type Profile struct {
	Name        string    `toml:"-"`
	Description string    `toml:"description"`
	BaseURL     string    `toml:"base_url"`
	HomeURL     string    `toml:"home_url"`
	SearchURL   string    `toml:"search_url"`
	Selectors   Selectors `toml:"selectors"`
	// Custom is set when a user file defined or changed the profile.
	Custom bool `toml:"-"`
}

// Validate reports the first required field that is missing. The sort and
// consent selectors are optional; an empty one simply never matches.
func (p *Profile) Validate() error {
	required := []struct {
		name, value string
	}{
		{"base_url", p.BaseURL},
		{"search_url", p.SearchURL},
		{"selectors.search_input", p.Selectors.SearchInput},
		{"selectors.results", p.Selectors.Results},
		{"selectors.teaser", p.Selectors.Teaser},
		{"selectors.teaser_link", p.Selectors.TeaserLink},
		{"selectors.load_more", p.Selectors.LoadMore},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("site %q: %s is required", p.Name, r.name)
		}
	}
	return nil
}

type profilesFile struct {
	Sites map[string]Profile `toml:"sites"`
}

// Registry holds the known site profiles keyed by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry loads the embedded profiles and merges the sites.toml found in
// each of dirs, in order. Later directories win.
func NewRegistry(dirs ...string) (*Registry, error) {
	r, err := parseRegistry(sitesTOML)
	if err != nil {
		return nil, fmt.Errorf("parsing sites.toml: %w", err)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := r.mergeFile(filepath.Join(dir, "sites.toml")); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parseRegistry(data []byte) (*Registry, error) {
	var file profilesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	r := &Registry{profiles: make(map[string]Profile, len(file.Sites))}
	for name, p := range file.Sites {
		p.Name = name
		r.profiles[name] = p
	}
	return r, nil
}

// mergeFile overlays profiles from path field by field, so an override only
// needs the keys it changes. A missing file is not an error, a malformed one
// is.
func (r *Registry) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	user, err := parseRegistry(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, p := range user.profiles {
		if base, ok := r.profiles[name]; ok {
			p = overlay(base, p)
		}
		p.Custom = true
		r.profiles[name] = p
	}
	return nil
}

// overlay copies every non-empty field of top onto base.
func overlay(base, top Profile) Profile {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Description, top.Description)
	set(&base.BaseURL, top.BaseURL)
	set(&base.HomeURL, top.HomeURL)
	set(&base.SearchURL, top.SearchURL)

	sel, t := &base.Selectors, top.Selectors
	set(&sel.ConsentAccept, t.ConsentAccept)
	set(&sel.SearchInput, t.SearchInput)
	set(&sel.Results, t.Results)
	set(&sel.Teaser, t.Teaser)
	set(&sel.TeaserLink, t.TeaserLink)
	set(&sel.SortByPublished, t.SortByPublished)
	set(&sel.LoadMore, t.LoadMore)
	return base
}

// Get returns the named profile after validating it.
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown site profile %q", name)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Names lists the profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
