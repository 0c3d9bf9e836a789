package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/loader"
	datasetuc "github.com/kailas-cloud/nearby/internal/usecase/dataset"
)

func (c *cli) validateCommand() *cobra.Command {
	var file, kind string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate stored data, or a file before ingestion",
		Long:  `Without --file, checks the store for orphan locations, unused postal codes and duplicate locations. With --file, checks the file without touching the store.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				rep, err := validateFile(file, kind)
				if err != nil {
					return err
				}
				printReport(c.out, rep)
				return nil
			}

			repos, err := c.repositories(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := datasetuc.New(repos.PostalCodes, repos.Locations).ValidateStored(cmd.Context())
			if err != nil {
				return fmt.Errorf("validate stored data: %w", err)
			}
			printReport(c.out, rep)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Validate this file instead of the store")
	cmd.Flags().StringVarP(&kind, "type", "t", kindLocations, "File content: zipcodes or locations")
	return cmd
}

func validateFile(path, kind string) (report.Report, error) {
	switch kind {
	case kindZipCodes:
		records, parsed, err := loader.LoadPostalCodes(path)
		if err != nil {
			return report.Report{}, err
		}
		parsed.Merge(datasetuc.ValidatePostalCodes(records))
		return parsed, nil
	case kindLocations:
		records, parsed, err := loader.LoadLocations(path)
		if err != nil {
			return report.Report{}, err
		}
		parsed.Merge(datasetuc.ValidateLocations(records))
		return parsed, nil
	default:
		return report.Report{}, fmt.Errorf("--type must be %s or %s, got %q", kindZipCodes, kindLocations, kind)
	}
}
