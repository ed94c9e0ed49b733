package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"container", "container", 0},
		{"maison pliable", "maison pliante", 2},
		{"été", "ete", 2},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestScore_Properties(t *testing.T) {
	samples := []string{
		"",
		"a",
		"Folding Container House",
		"Folding Container House A",
		"Capsule Pod X",
		"Space Capsule Cabin",
		"Maison modulaire préfabriquée",
		"Maison modulaire prefabriquee",
		"20ft Expandable Container Home",
	}

	for _, a := range samples {
		if a != "" {
			assert.Equal(t, 1.0, Score(a, a), "identity for %q", a)
		}
		for _, b := range samples {
			s := Score(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
			assert.Equal(t, s, Score(b, a), "symmetry for %q / %q", a, b)
			assert.LessOrEqual(t, s, UpperBound(RuneLen(a), RuneLen(b)))
		}
	}
}

func TestScore_EmptyStrings(t *testing.T) {
	require.Equal(t, 1.0, Score("", ""))
	require.Equal(t, 0.0, Score("", "abc"))
}

func TestScore_Value(t *testing.T) {
	// one substitution over 20 runes
	got := Score("Luxury Capsule Hotel", "Luxury Capsule Hotal")
	assert.InDelta(t, 0.95, got, 1e-9)
}
