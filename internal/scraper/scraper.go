// Package scraper collects raw marketplace listings. It does no cleanup:
// deduplication and categorization belong to the pipeline.
package scraper

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"modhome/pkg/models"
)

var ErrAllSourcesFailed = errors.New("every source failed")

// Source is implemented by each listing origin (HTML pages, JSON mirror).
// Each source maps its own format into RawProduct.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.RawProduct, error)
}

// Aggregator calls its sources in order and concatenates their listings.
type Aggregator struct {
	Sources []Source
	Logger  *zap.Logger
}

func NewAggregator(logger *zap.Logger, sources ...Source) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{Sources: sources, Logger: logger.Named("scraper")}
}

// FetchAll returns every listing from every source that succeeded. A broken
// source is logged and skipped; the call fails only when all of them fail.
func (a *Aggregator) FetchAll(ctx context.Context) ([]models.RawProduct, error) {
	var (
		all  []models.RawProduct
		errs []error
	)
	for _, src := range a.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.Logger.Info("fetching", zap.String("source", src.Name()))
		items, err := src.FetchAll(ctx)
		if err != nil {
			a.Logger.Warn("source failed", zap.String("source", src.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		a.Logger.Info("fetched", zap.String("source", src.Name()), zap.Int("items", len(items)))
		all = append(all, items...)
	}
	if len(a.Sources) > 0 && len(errs) == len(a.Sources) {
		return nil, fmt.Errorf("%w: %w", ErrAllSourcesFailed, errors.Join(errs...))
	}
	if all == nil {
		all = []models.RawProduct{}
	}
	return all, nil
}
