// Package pipeline drives one catalog cleanup run: load the scraped catalog,
// drop unusable records, dedupe, renumber, categorize and publish.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"modhome/internal/catalog"
	"modhome/internal/categorize"
	"modhome/internal/dedupe"
	"modhome/internal/publish"
	"modhome/pkg/models"
)

var (
	ErrNoProfile = errors.New("no category profile selected")
	ErrNoOutputs = errors.New("no output paths")
)

type Options struct {
	InputPath      string
	OutputPaths    []string
	Threshold      float64
	Policy         dedupe.Policy
	Categorizer    *categorize.Categorizer
	FeatureCap     int
	VendorPrefixes []string
	Logger         *zap.Logger
}

func (o *Options) validate() error {
	if len(o.OutputPaths) == 0 {
		return ErrNoOutputs
	}
	if o.Categorizer == nil {
		return ErrNoProfile
	}
	if o.Threshold <= 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: got %v", dedupe.ErrInvalidThreshold, o.Threshold)
	}
	if o.FeatureCap <= 0 {
		o.FeatureCap = catalog.DefaultFeatureCap
	}
	if o.VendorPrefixes == nil {
		o.VendorPrefixes = catalog.DefaultVendorPrefixes
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}

// Run executes the whole pipeline. Nothing is written unless every input
// step succeeds, and the output paths are published together.
func Run(opts Options) (Summary, error) {
	if err := opts.validate(); err != nil {
		return Summary{}, err
	}
	log := opts.Logger.With(zap.String("profile", opts.Categorizer.Profile().Name))

	raw, err := catalog.ReadRaw(opts.InputPath)
	if err != nil {
		return Summary{}, err
	}

	products, skipped := Clean(raw, opts.FeatureCap, opts.VendorPrefixes, log)

	d, err := dedupe.New(opts.Threshold, opts.Policy, log)
	if err != nil {
		return Summary{}, err
	}
	res := d.Run(products)

	sum := Summary{
		Profile:         opts.Categorizer.Profile().Name,
		Input:           len(raw),
		Skipped:         skipped,
		ExactDuplicates: res.ExactDuplicates,
		NearDuplicates:  res.NearDuplicates,
		Output:          len(res.Products),
	}

	out := res.Products
	for i := range out {
		out[i].ID = i + 1
		label := opts.Categorizer.Categorize(out[i])
		if label != out[i].Category {
			sum.Changed++
		}
		out[i].Category = label
	}
	sum.Categories = countCategories(out, opts.Categorizer.Labels())

	data, err := catalog.Encode(out)
	if err != nil {
		return Summary{}, err
	}
	if err := publish.Files(data, opts.OutputPaths...); err != nil {
		return Summary{}, err
	}

	log.Info("catalog published",
		zap.Int("input", sum.Input),
		zap.Int("skipped", sum.Skipped),
		zap.Int("output", sum.Output),
		zap.Int("changed", sum.Changed),
		zap.Strings("targets", opts.OutputPaths),
	)
	return sum, nil
}

// Clean turns raw records into products. Records without a name, price or
// image are skipped with a warning naming their input index; description
// defaults to "" and features to an empty list. The input category is kept
// so the caller can tell which records were recategorized.
func Clean(raw []models.RawProduct, featureCap int, prefixes []string, log *zap.Logger) ([]models.Product, int) {
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]models.Product, 0, len(raw))
	skipped := 0
	for i, r := range raw {
		name := catalog.StripVendorPrefixes(models.Value(r.Name), prefixes)
		if missing := missingFields(name, r); len(missing) > 0 {
			skipped++
			log.Warn("skipping record",
				zap.Int("index", i),
				zap.Strings("missing", missing),
			)
			continue
		}
		out = append(out, models.Product{
			Name:        name,
			Description: strings.TrimSpace(models.Value(r.Description)),
			Price:       strings.TrimSpace(*r.Price),
			Image:       *r.Image,
			Category:    models.Value(r.Category),
			Features:    catalog.NormalizeFeatures(r.Features, featureCap),
		})
	}
	return out, skipped
}

// missingFields checks name after vendor prefixes are stripped, so a name
// made only of prefixes and separators counts as missing.
func missingFields(name string, r models.RawProduct) []string {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if blank(r.Price) {
		missing = append(missing, "price")
	}
	if blank(r.Image) {
		missing = append(missing, "image")
	}
	return missing
}

func blank(p *string) bool { return p == nil || strings.TrimSpace(*p) == "" }
