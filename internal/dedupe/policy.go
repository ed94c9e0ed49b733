package dedupe

import (
	"modhome/internal/catalog"
	"modhome/pkg/models"
)

// DefaultPriceCeiling is the upper sanity bound for PreferHigherPrice.
const DefaultPriceCeiling = 10000

// Policy picks the representative of a near-duplicate group.
// group is never empty and is in input order; group[0] is the earliest member.
type Policy interface {
	Name() string
	Pick(group []models.Product) int
}

// KeepFirst keeps the earliest member of every group.
type KeepFirst struct{}

func (KeepFirst) Name() string { return "first" }

func (KeepFirst) Pick(group []models.Product) int { return 0 }

// PreferHigherPrice walks the group in order and switches to a member whose
// digit-only price is higher than the current pick and strictly below
// Ceiling. Listings priced at or above the ceiling are treated as bogus and
// never win.
//
// The rule reproduces the historical catalog cleanup. It has no documented
// business rationale and should be confirmed by the product owner.
type PreferHigherPrice struct {
	Ceiling int64
}

func (PreferHigherPrice) Name() string { return "price" }

func (p PreferHigherPrice) Pick(group []models.Product) int {
	ceiling := p.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultPriceCeiling
	}
	best := 0
	bestPrice := catalog.PriceDigits(group[0].Price)
	for i := 1; i < len(group); i++ {
		price := catalog.PriceDigits(group[i].Price)
		if price > bestPrice && price < ceiling {
			best, bestPrice = i, price
		}
	}
	return best
}

// PolicyByName maps a configuration value to a Policy.
func PolicyByName(name string, ceiling int64) (Policy, bool) {
	switch name {
	case "", "price":
		return PreferHigherPrice{Ceiling: ceiling}, true
	case "first":
		return KeepFirst{}, true
	default:
		return nil, false
	}
}
