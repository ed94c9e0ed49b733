package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"modhome/internal/catalog"
	"modhome/internal/publish"
	"modhome/internal/scraper"
)

func (a *app) scrapeCmd() *cobra.Command {
	var (
		pages   []string
		mirror  string
		out     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect raw listings from marketplace pages and/or a JSON mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sources []scraper.Source
			if len(pages) > 0 {
				sources = append(sources, scraper.NewHTMLSource(pages...))
			}
			if mirror != "" {
				sources = append(sources, scraper.NewMirrorSource(mirror))
			}
			if len(sources) == 0 {
				return errors.New("nothing to scrape: pass --page or --mirror")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			items, err := scraper.NewAggregator(a.logger, sources...).FetchAll(ctx)
			if err != nil {
				return err
			}
			data, err := catalog.Encode(items)
			if err != nil {
				return err
			}
			if err := publish.Files(data, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scraped %d listings to %s\n", len(items), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&pages, "page", a.cfg.ScrapePages, "Listing page URL (repeatable)")
	f.StringVar(&mirror, "mirror", a.cfg.MirrorURL, "Base URL of a raw catalog mirror")
	f.StringVarP(&out, "out", "o", a.cfg.InputPath, "Where to write the raw catalog")
	f.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall scrape timeout")
	return cmd
}
