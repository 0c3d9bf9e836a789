// Command nearbyctl imports, validates, inspects and clears the nearby dataset.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/app"
	"github.com/kailas-cloud/nearby/internal/config"
	"github.com/kailas-cloud/nearby/internal/db"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	"github.com/kailas-cloud/nearby/internal/version"
)

// Record kinds accepted as command arguments.
const (
	kindZipCodes  = "zipcodes"
	kindLocations = "locations"
	kindAll       = "all"
)

// cli carries what every command needs. Config, logger and store are resolved
// lazily so commands that never touch the store also work without one.
type cli struct {
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger
	store  db.Store

	openStore func(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error)
}

func newCLI(out io.Writer) *cli {
	return &cli{out: out, openStore: app.OpenStore}
}

func (c *cli) setup() error {
	if c.cfg != nil {
		return nil
	}
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.New(env, "cli", cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	c.cfg, c.logger = &cfg, logger
	return nil
}

func (c *cli) repositories(ctx context.Context) (app.Repositories, error) {
	if c.store == nil {
		store, err := c.openStore(ctx, c.cfg.Database, c.logger)
		if err != nil {
			return app.Repositories{}, fmt.Errorf("open store: %w", err)
		}
		c.store = store
	}
	return app.NewRepositories(c.store, c.cfg.Storage.KeyPrefix), nil
}

func (c *cli) close() {
	if c.store != nil {
		c.store.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "nearbyctl",
		Short:         "Manage the nearby location dataset",
		Long:          `Import postal codes and locations, validate them before or after ingestion, and inspect or clear the store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.setup()
		},
	}
	root.SetOut(c.out)
	root.AddCommand(
		c.importCommand(),
		c.validateCommand(),
		c.clearCommand(),
		c.statsCommand(),
		c.versionCommand(),
	)
	return root
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(c.out, "nearbyctl %s\n", version.String())
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	c := newCLI(os.Stdout)
	err := c.rootCommand().ExecuteContext(ctx)
	c.close()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
