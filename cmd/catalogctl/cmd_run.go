package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modhome/internal/catalog"
	"modhome/internal/catalogdb"
	"modhome/internal/categorize"
	"modhome/internal/dedupe"
	"modhome/internal/pipeline"
	"modhome/pkg/database"
)

func (a *app) runCmd() *cobra.Command {
	var (
		input        string
		outputs      []string
		threshold    float64
		policyName   string
		ceiling      int64
		featureCap   int
		profile      string
		profilesFile string
		sqlitePath   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Dedupe, categorize and publish the raw catalog",
		Long: `Reads the scraped catalog, drops records without a name, price or image,
removes exact-image and near-name duplicates, renumbers ids, assigns one
category per product using the selected profile and writes the result to every
output path together.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile == "" {
				reg, err := categorize.LoadRegistry(profilesFile)
				if err != nil {
					return err
				}
				return fmt.Errorf("%w: pass --profile or set MODHOME_CATEGORY_PROFILE (available: %s)",
					pipeline.ErrNoProfile, strings.Join(reg.Names(), ", "))
			}
			categorizer, err := categorize.Open(profile, profilesFile)
			if err != nil {
				return err
			}
			policy, ok := dedupe.PolicyByName(policyName, ceiling)
			if !ok {
				return fmt.Errorf("unknown dedupe policy %q (want price or first)", policyName)
			}

			sum, err := pipeline.Run(pipeline.Options{
				InputPath:      input,
				OutputPaths:    outputs,
				Threshold:      threshold,
				Policy:         policy,
				Categorizer:    categorizer,
				FeatureCap:     featureCap,
				VendorPrefixes: a.cfg.VendorPrefixes,
				Logger:         a.logger,
			})
			if err != nil {
				return err
			}
			if err := sum.WriteReport(cmd.OutOrStdout()); err != nil {
				return err
			}

			if sqlitePath == "" {
				return nil
			}
			products, err := catalog.ReadProducts(outputs[0])
			if err != nil {
				return err
			}
			db, err := database.Open(database.Config{Path: sqlitePath})
			if err != nil {
				return err
			}
			defer db.Close()
			if err := catalogdb.NewRepo(db).Save(cmd.Context(), products); err != nil {
				return fmt.Errorf("save sqlite mirror: %w", err)
			}
			a.logger.Info("sqlite mirror saved", zap.String("path", sqlitePath), zap.Int("products", len(products)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", a.cfg.InputPath, "Raw catalog JSON")
	f.StringSliceVarP(&outputs, "output", "o", a.cfg.OutputPaths, "Output path (repeatable); all are published together")
	f.Float64Var(&threshold, "threshold", a.cfg.Threshold, "Name similarity above which listings are near-duplicates")
	f.StringVar(&policyName, "policy", a.cfg.DedupePolicy, "Near-duplicate representative: price or first")
	f.Int64Var(&ceiling, "price-ceiling", a.cfg.PriceCeiling, "Prices at or above this never win the price policy")
	f.IntVar(&featureCap, "feature-cap", a.cfg.FeatureCap, "Maximum features kept per product")
	f.StringVarP(&profile, "profile", "p", a.cfg.Profile, "Category profile (required)")
	f.StringVar(&profilesFile, "profiles-file", a.cfg.ProfilesFile, "YAML file with extra category profiles")
	f.StringVar(&sqlitePath, "sqlite", "", "Also save the published catalog to this SQLite file")
	return cmd
}
