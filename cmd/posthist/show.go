package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the input table as parsed, nulls and strings included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			table, err := a.loadTable(cfg)
			if err != nil {
				return err
			}
			table.Print(cmd.OutOrStdout())
			return nil
		},
	}
}
