package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nearby/internal/app"
	"github.com/kailas-cloud/nearby/internal/domain/ingest"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/loader"
	"github.com/kailas-cloud/nearby/internal/metrics"
	datasetuc "github.com/kailas-cloud/nearby/internal/usecase/dataset"
	ingestuc "github.com/kailas-cloud/nearby/internal/usecase/ingest"
)

type importFlags struct {
	file        string
	batchSize   int
	force       bool
	pushgateway string
}

func (c *cli) importCommand() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:       "import zipcodes|locations",
		Short:     "Validate and ingest a dataset file",
		Long:      `Reads a JSON array (or a GeoNames TSV dump for zipcodes), validates it and inserts records whose natural key is not stored yet. A file with validation errors is only ingested with --force.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{kindZipCodes, kindLocations},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				outcome ingest.Outcome
				ran     bool
				err     error
			)
			switch args[0] {
			case kindZipCodes:
				outcome, ran, err = c.importZipCodes(ctx, flags)
			case kindLocations:
				outcome, ran, err = c.importLocations(ctx, flags)
			}
			if err != nil || !ran {
				return err
			}

			printOutcome(c.out, args[0], outcome)
			if flags.pushgateway != "" {
				if err := metrics.PushIngestMetrics(ctx, flags.pushgateway, "nearbyctl_import"); err != nil {
					fmt.Fprintf(c.out, "warning: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Path to the input file")
	cmd.Flags().IntVarP(&flags.batchSize, "batch-size", "b", 0, "Records per chunk (default from config)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Ingest even when validation reports errors")
	cmd.Flags().StringVar(&flags.pushgateway, "pushgateway", "", "Prometheus Pushgateway URL for ingestion metrics")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) pipelines(repos app.Repositories) (
	*ingestuc.Pipeline[postalcode.PostalCode], *ingestuc.Pipeline[poi.PointOfInterest],
) {
	zips := ingestuc.NewPipeline[postalcode.PostalCode](kindZipCodes, repos.PostalCodes, c.logger).
		WithMaxBatchSize(c.cfg.Ingest.MaxBatchSize).
		WithRecorder(metrics.IngestRecorder{})
	locations := ingestuc.NewPipeline[poi.PointOfInterest](kindLocations, repos.Locations, c.logger).
		WithMaxBatchSize(c.cfg.Ingest.MaxBatchSize).
		WithRecorder(metrics.IngestRecorder{})
	return zips, locations
}

func (c *cli) batchSize(flag int) int {
	if flag > 0 {
		return flag
	}
	return c.cfg.Ingest.BatchSize
}

// precheck prints the combined parse and validation report and decides whether to ingest.
func (c *cli) precheck(parsed, validated report.Report, force bool) bool {
	parsed.Merge(validated)
	printReport(c.out, parsed)
	if parsed.Valid() {
		return true
	}
	if force {
		fmt.Fprintln(c.out, "Continuing despite validation errors (--force)")
		return true
	}
	fmt.Fprintln(c.out, "Nothing imported. Fix the errors above or rerun with --force.")
	return false
}

func (c *cli) importZipCodes(ctx context.Context, flags importFlags) (ingest.Outcome, bool, error) {
	records, parsed, err := loader.LoadPostalCodes(flags.file)
	if err != nil {
		return ingest.Outcome{}, false, err
	}
	if !c.precheck(parsed, datasetuc.ValidatePostalCodes(records), flags.force) {
		return ingest.Outcome{}, false, nil
	}

	repos, err := c.repositories(ctx)
	if err != nil {
		return ingest.Outcome{}, false, err
	}
	zips, _ := c.pipelines(repos)
	return zips.Ingest(ctx, records, c.batchSize(flags.batchSize)), true, nil
}

func (c *cli) importLocations(ctx context.Context, flags importFlags) (ingest.Outcome, bool, error) {
	records, parsed, err := loader.LoadLocations(flags.file)
	if err != nil {
		return ingest.Outcome{}, false, err
	}
	if !c.precheck(parsed, datasetuc.ValidateLocations(records), flags.force) {
		return ingest.Outcome{}, false, nil
	}

	repos, err := c.repositories(ctx)
	if err != nil {
		return ingest.Outcome{}, false, err
	}
	_, locations := c.pipelines(repos)
	return locations.Ingest(ctx, records, c.batchSize(flags.batchSize)), true, nil
}
