package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	ingestuc "github.com/kailas-cloud/nearby/internal/usecase/ingest"
)

var errNotConfirmed = errors.New("refusing to clear without --yes")

func (c *cli) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "clear zipcodes|locations|all",
		Short:     "Delete every stored record of a kind",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{kindZipCodes, kindLocations, kindAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}

			repos, err := c.repositories(cmd.Context())
			if err != nil {
				return err
			}
			zips, locations := c.pipelines(repos)

			var clearers []ingestuc.Clearer
			switch args[0] {
			case kindZipCodes:
				clearers = append(clearers, zips)
			case kindLocations:
				clearers = append(clearers, locations)
			case kindAll:
				clearers = append(clearers, locations, zips)
			}

			n, err := ingestuc.ClearAll(cmd.Context(), clearers...)
			if err != nil {
				return fmt.Errorf("clear %s: %w", args[0], err)
			}
			fmt.Fprintf(c.out, "Deleted %d %s record(s)\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}
