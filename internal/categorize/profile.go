// Package categorize assigns one category label to every catalog product by
// loose keyword matching, driven by an ordered profile of rules.
package categorize

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownProfile = errors.New("unknown category profile")
	ErrInvalidProfile = errors.New("invalid category profile")
)

// Rule assigns Label when any keyword is a substring of the lower-cased
// product text. No stemming, no word boundaries.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Profile is one versioned categorization table. Rules are evaluated in
// order and the first match wins; Default applies when nothing matches.
type Profile struct {
	Name         string                       `yaml:"name"`
	Description  string                       `yaml:"description"`
	Default      string                       `yaml:"default"`
	Rules        []Rule                       `yaml:"rules"`
	Translations map[string]map[string]string `yaml:"translations"` // lang -> label -> text
}

// Validate checks the profile and lower-cases its keywords in place.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Default) == "" {
		return fmt.Errorf("%w: %s: default label required", ErrInvalidProfile, p.Name)
	}
	seen := map[string]bool{p.Default: true}
	rules := make([]Rule, len(p.Rules))
	copy(rules, p.Rules)
	p.Rules = rules
	for i := range p.Rules {
		r := &p.Rules[i]
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("%w: %s: rule %d has no label", ErrInvalidProfile, p.Name, i)
		}
		if seen[r.Label] {
			return fmt.Errorf("%w: %s: label %q used twice", ErrInvalidProfile, p.Name, r.Label)
		}
		seen[r.Label] = true

		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = foldText(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return fmt.Errorf("%w: %s: rule %q has no keywords", ErrInvalidProfile, p.Name, r.Label)
		}
		r.Keywords = kws
	}
	return nil
}

// Labels returns the closed label set in precedence order, default last.
func (p *Profile) Labels() []string {
	out := make([]string, 0, len(p.Rules)+1)
	for _, r := range p.Rules {
		out = append(out, r.Label)
	}
	return append(out, p.Default)
}

// Registry holds the selectable profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range builtinProfiles() {
		if err := r.Add(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Add validates p and registers it, replacing a profile of the same name.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[p.Name] = p
	return nil
}

func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownProfile, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names lists registered profiles alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
