package main

import (
	"fmt"

	"github.com/spf13/cobra"

	datasetuc "github.com/kailas-cloud/nearby/internal/usecase/dataset"
)

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print stored record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repos, err := c.repositories(cmd.Context())
			if err != nil {
				return err
			}
			st, err := datasetuc.New(repos.PostalCodes, repos.Locations).Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			printStats(c.out, st, false)
			return nil
		},
	}
}
