package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripVendorPrefixes(t *testing.T) {
	prefixes := []string{"Hot Sale", "factory direct", "Wholesale"}
	tests := []struct {
		in, want string
	}{
		{"Hot Sale Folding Container House", "Folding Container House"},
		{"HOT SALE - Factory Direct: Capsule Pod", "Capsule Pod"},
		{"  Wholesale | Villa 2 Storey ", "Villa 2 Storey"},
		{"Wholesaler Container", "Wholesaler Container"},
		{"Capsule Hotel Hot Sale", "Capsule Hotel Hot Sale"},
		{"Hot Sale", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripVendorPrefixes(tt.in, prefixes)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripVendorPrefixes(got, prefixes), "stripping twice changes nothing")
		})
	}
}

func TestNormalizeFeatures(t *testing.T) {
	in := []string{" Waterproof ", "", "waterproof", "Fireproof", "Insulated", "Quick install", "Steel frame", "Solar ready", "Extra"}

	got := NormalizeFeatures(in, 5)
	assert.Equal(t, []string{"Waterproof", "Fireproof", "Insulated", "Quick install", "Steel frame"}, got)

	assert.Len(t, NormalizeFeatures(in, 0), DefaultFeatureCap)
	assert.Equal(t, []string{}, NormalizeFeatures(nil, 3))
	assert.Equal(t, got, NormalizeFeatures(got, 5))
}

func TestPriceDigits(t *testing.T) {
	assert.Equal(t, int64(650), PriceDigits("$650"))
	assert.Equal(t, int64(1250), PriceDigits("$1,250"))
	assert.Equal(t, int64(65000), PriceDigits("$650.00"))
	assert.Equal(t, int64(0), PriceDigits("contact us"))
	assert.Equal(t, int64(0), PriceDigits(""))
}
