package pipeline

import (
	"fmt"
	"io"

	"modhome/pkg/models"
)

// Summary describes one pipeline run.
type Summary struct {
	Profile         string
	Input           int
	Skipped         int
	ExactDuplicates int
	NearDuplicates  int
	Output          int
	Changed         int // survivors whose category differs from the input value
	Categories      []models.CategoryCount
}

// countCategories returns one entry per label, in precedence order.
func countCategories(products []models.Product, labels []string) []models.CategoryCount {
	counts := make(map[string]int, len(labels))
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]models.CategoryCount, 0, len(labels))
	for _, l := range labels {
		c := models.CategoryCount{Label: l, Count: counts[l]}
		if len(products) > 0 {
			c.Percent = float64(c.Count) * 100 / float64(len(products))
		}
		out = append(out, c)
	}
	return out
}

// WriteReport prints the console summary.
func (s Summary) WriteReport(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Profile:            %s", s.Profile),
		fmt.Sprintf("Input records:      %d", s.Input),
		fmt.Sprintf("Skipped (invalid):  %d", s.Skipped),
		fmt.Sprintf("Exact duplicates:   %d", s.ExactDuplicates),
		fmt.Sprintf("Near duplicates:    %d", s.NearDuplicates),
		fmt.Sprintf("Output records:     %d", s.Output),
		fmt.Sprintf("Category changed:   %d", s.Changed),
		"",
		"Categories:",
	}
	for _, c := range s.Categories {
		lines = append(lines, fmt.Sprintf("  %-20s %5d  %5.1f%%", c.Label, c.Count, c.Percent))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
