package categorize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"modhome/pkg/models"
)

// Categorizer applies one Profile. It holds no state beyond the profile.
type Categorizer struct {
	profile Profile
}

// New validates p and returns a Categorizer for it.
func New(p Profile) (*Categorizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Categorizer{profile: p}, nil
}

func (c *Categorizer) Profile() Profile { return c.profile }

func (c *Categorizer) Labels() []string { return c.profile.Labels() }

// Categorize returns exactly one label from the profile for any product,
// including one with empty fields.
func (c *Categorizer) Categorize(p models.Product) string {
	return c.Match(p.Name, p.Description, p.Image)
}

// Match categorizes free text fields.
func (c *Categorizer) Match(name, description, image string) string {
	text := foldText(name + "\n" + description + "\n" + image)
	for _, r := range c.profile.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Label
			}
		}
	}
	return c.profile.Default
}

// Localize returns the label text for lang, or the label itself.
func (c *Categorizer) Localize(label, lang string) string {
	if t, ok := c.profile.Translations[lang][label]; ok && t != "" {
		return t
	}
	return label
}

// foldText lower-cases s in composed form so "e" + U+0301 matches "é".
func foldText(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
