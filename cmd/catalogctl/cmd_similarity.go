package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modhome/internal/similarity"
)

func (a *app) similarityCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "similarity <name> <name>",
		Short: "Show the edit distance and similarity score of two product names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score := similarity.Score(args[0], args[1])
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "distance:       %d\n", similarity.Distance(args[0], args[1]))
			fmt.Fprintf(w, "score:          %.4f\n", score)
			fmt.Fprintf(w, "near-duplicate: %t (threshold %.2f)\n", score > threshold, threshold)
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", a.cfg.Threshold, "Near-duplicate threshold")
	return cmd
}
