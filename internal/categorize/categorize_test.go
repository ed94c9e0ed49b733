package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modhome/pkg/models"
)

func mustCategorizer(t *testing.T, name string) *Categorizer {
	t.Helper()
	p, err := NewRegistry().Get(name)
	require.NoError(t, err)
	c, err := New(p)
	require.NoError(t, err)
	return c
}

func TestCategorize_ContainerV1(t *testing.T) {
	c := mustCategorizer(t, "container-v1")

	tests := []struct {
		name string
		p    models.Product
		want string
	}{
		{"folding by name", models.Product{Name: "Folding Container House A"}, "Folding"},
		{"folding wins over capsule", models.Product{Name: "Foldable Capsule Pod"}, "Folding"},
		{"french folding term", models.Product{Name: "Maison pliable 20 pieds"}, "Folding"},
		{"capsule", models.Product{Name: "Capsule Pod X"}, "Capsule"},
		{"capsule from image url", models.Product{Name: "Model X1", Image: "https://cdn.example.com/space-capsule-1.jpg"}, "Capsule"},
		{"smart by description", models.Product{Name: "Model Z", Description: "Works with Alexa and Zigbee"}, "Smart Living Space"},
		{"substring inside a word", models.Product{Name: "Tripod Base"}, "Capsule"},
		{"default", models.Product{Name: "Steel Frame Home", Description: "Insulated panels"}, "Container"},
		{"empty record", models.Product{}, "Container"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.p))
		})
	}
}

func TestCategorize_PrecedenceDiffersByProfile(t *testing.T) {
	p := models.Product{Name: "Foldable Capsule Pod"}
	assert.Equal(t, "Folding", mustCategorizer(t, "container-v1").Categorize(p))
	assert.Equal(t, "Capsule", mustCategorizer(t, "villa-v3").Categorize(p))

	plain := models.Product{Name: "Steel Frame Home"}
	assert.Equal(t, "Modulaire", mustCategorizer(t, "modulaire-v2").Categorize(plain))
	assert.Equal(t, "New", mustCategorizer(t, "villa-v3").Categorize(plain))
	assert.Equal(t, "Container", mustCategorizer(t, "villa-v3").Categorize(models.Product{Name: "40ft shipping home"}))
}

func TestCategorize_AlwaysReturnsKnownLabel(t *testing.T) {
	reg := NewRegistry()
	inputs := []models.Product{
		{},
		{Name: " "},
		{Name: "LED Villa", Description: "fold", Image: "pod.png"},
		{Name: "ÉTÉ"},
	}
	for _, name := range reg.Names() {
		p, err := reg.Get(name)
		require.NoError(t, err)
		c, err := New(p)
		require.NoError(t, err)
		labels := c.Labels()
		for _, in := range inputs {
			got := c.Categorize(in)
			assert.NotEmpty(t, got)
			assert.Contains(t, labels, got)
		}
	}
}

func TestLocalize(t *testing.T) {
	c := mustCategorizer(t, "container-v1")
	assert.Equal(t, "Pliable", c.Localize("Folding", "fr"))
	assert.Equal(t, "Folding", c.Localize("Folding", "en"))
	assert.Equal(t, "Unknown", c.Localize("Unknown", "fr"))
}

func TestRegistry_UnknownProfile(t *testing.T) {
	_, err := NewRegistry().Get("nope")
	require.ErrorIs(t, err, ErrUnknownProfile)
	assert.Contains(t, err.Error(), "container-v1")
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
	}{
		{"no name", Profile{Default: "X"}},
		{"no default", Profile{Name: "p"}},
		{"rule without label", Profile{Name: "p", Default: "X", Rules: []Rule{{Keywords: []string{"a"}}}}},
		{"rule without keywords", Profile{Name: "p", Default: "X", Rules: []Rule{{Label: "A", Keywords: []string{" "}}}}},
		{"duplicate label", Profile{Name: "p", Default: "X", Rules: []Rule{{Label: "X", Keywords: []string{"a"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.p.Validate(), ErrInvalidProfile)
		})
	}
}

func TestRegistry_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  - name: showroom
    default: Other
    rules:
      - label: Tiny
        keywords: [TINY, " Micro "]
    translations:
      fr:
        Tiny: Petite
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg := NewRegistry()
	require.NoError(t, reg.LoadFile(path))
	assert.Contains(t, reg.Names(), "showroom")

	p, err := reg.Get("showroom")
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny", "micro"}, p.Rules[0].Keywords)

	c, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", c.Categorize(models.Product{Name: "Micro cabin"}))
	assert.Equal(t, "Petite", c.Localize("Tiny", "fr"))
}

func TestRegistry_LoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - name: broken\n"), 0o644))
	assert.ErrorIs(t, NewRegistry().LoadFile(path), ErrInvalidProfile)

	assert.Error(t, NewRegistry().LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestCategorize_DecomposedAccents(t *testing.T) {
	c := mustCategorizer(t, "container-v1")
	assert.Equal(t, "Folding", c.Categorize(models.Product{Name: "Maison re\u0301tractable"}))
}

func TestOpen(t *testing.T) {
	c, err := Open("villa-v3", "")
	require.NoError(t, err)
	assert.Equal(t, "New", c.Categorize(models.Product{Name: "Prefab"}))

	_, err = Open("", "")
	require.ErrorIs(t, err, ErrUnknownProfile)

	_, err = Open("villa-v3", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
