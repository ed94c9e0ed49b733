// Package dedupe collapses duplicate catalog listings: first by identical
// image URL, then by near-identical product name.
package dedupe

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"modhome/internal/similarity"
	"modhome/pkg/models"
)

// DefaultThreshold is the name similarity above which two listings are
// treated as the same product.
const DefaultThreshold = 0.85

var ErrInvalidThreshold = errors.New("threshold must be in (0, 1]")

type Deduper struct {
	Threshold float64
	Policy    Policy
	Logger    *zap.Logger
}

// Result is the outcome of one Run.
type Result struct {
	Products        []models.Product
	ExactDuplicates int // dropped for sharing an image
	NearDuplicates  int // absorbed into a near-duplicate group
	Passes          int // name passes run, including the final one that merged nothing
}

func New(threshold float64, policy Policy, logger *zap.Logger) (*Deduper, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	if policy == nil {
		policy = PreferHigherPrice{Ceiling: DefaultPriceCeiling}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduper{Threshold: threshold, Policy: policy, Logger: logger}, nil
}

// Run applies both passes. The input slice is not modified.
func (d *Deduper) Run(products []models.Product) Result {
	unique := ByImage(products)
	res := Result{ExactDuplicates: len(products) - len(unique)}

	current := unique
	for {
		res.Passes++
		next, absorbed := d.namePass(current)
		res.NearDuplicates += absorbed
		current = next
		// repeat until stable so survivors are pairwise below the threshold
		if absorbed == 0 {
			break
		}
	}
	res.Products = current

	d.Logger.Info("dedupe completed",
		zap.Int("input", len(products)),
		zap.Int("exact_duplicates", res.ExactDuplicates),
		zap.Int("near_duplicates", res.NearDuplicates),
		zap.Int("output", len(res.Products)),
		zap.Int("passes", res.Passes),
		zap.String("policy", d.Policy.Name()),
	)
	return res
}

// ByImage keeps the first product seen for every distinct image string.
func ByImage(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Image]; ok {
			continue
		}
		seen[p.Image] = struct{}{}
		out = append(out, p)
	}
	return out
}

// namePass groups every unvisited product with all later unvisited products
// whose name scores above the threshold against it, and keeps one
// representative per group at the position of the group's earliest member.
func (d *Deduper) namePass(products []models.Product) ([]models.Product, int) {
	lengths := make([]int, len(products))
	for i, p := range products {
		lengths[i] = similarity.RuneLen(p.Name)
	}

	visited := make([]bool, len(products))
	out := make([]models.Product, 0, len(products))
	absorbed := 0

	for i := range products {
		if visited[i] {
			continue
		}
		visited[i] = true
		group := []models.Product{products[i]}

		for j := i + 1; j < len(products); j++ {
			if visited[j] {
				continue
			}
			// Score never exceeds the length ratio; skip hopeless pairs.
			if similarity.UpperBound(lengths[i], lengths[j]) <= d.Threshold {
				continue
			}
			if similarity.Score(products[i].Name, products[j].Name) > d.Threshold {
				visited[j] = true
				group = append(group, products[j])
			}
		}

		pick := 0
		if len(group) > 1 {
			pick = d.Policy.Pick(group)
			absorbed += len(group) - 1
			d.Logger.Debug("near-duplicate group",
				zap.String("first", group[0].Name),
				zap.String("kept", group[pick].Name),
				zap.Int("size", len(group)),
			)
		}
		out = append(out, group[pick])
	}
	return out, absorbed
}
