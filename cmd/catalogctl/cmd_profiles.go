package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"modhome/internal/categorize"
)

func (a *app) profilesCmd() *cobra.Command {
	var profilesFile string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available category profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := categorize.LoadRegistry(profilesFile)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range reg.Names() {
				p, err := reg.Get(name)
				if err != nil {
					return err
				}
				labels := p.Labels()
				order := strings.Join(labels[:len(labels)-1], " > ")
				if order != "" {
					order += " > "
				}
				fmt.Fprintf(w, "%s\n  %s\n  %s%s (default)\n", p.Name, p.Description, order, p.Default)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profilesFile, "profiles-file", a.cfg.ProfilesFile, "YAML file with extra category profiles")
	return cmd
}
