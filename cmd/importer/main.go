package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/dropdown"
	"orderdesk/internal/importer"
	"orderdesk/internal/infrastructure/logger"
	redisclient "orderdesk/internal/infrastructure/redis"
	"orderdesk/internal/store"
)

var (
	configPath string
	backendArg string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "importer",
		Short:        "Load retailer and product lists from .xlsx or .xls files",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")
	root.PersistentFlags().StringVar(&backendArg, "backend", "", "store backend, overrides STORE_BACKEND")

	root.AddCommand(&cobra.Command{
		Use:   "retailers FILE",
		Short: "Replace the retailer list (columns: name, address, address2, mobile)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], cmd.OutOrStdout(), (*importer.Importer).ImportRetailers, "retailers")
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "products FILE",
		Short: "Replace the product list (column: name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], cmd.OutOrStdout(), (*importer.Importer).ImportProducts, "products")
		},
	})

	return root
}

type importFunc func(i *importer.Importer, ctx context.Context, r io.Reader, filename string) (int, error)

func run(ctx context.Context, path string, out io.Writer, do importFunc, kind string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if backendArg != "" {
		os.Setenv("STORE_BACKEND", backendArg)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer zapLogger.Sync()

	backend, err := store.Open(ctx, cfg, zapLogger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := do(importer.New(backend.Reference, zapLogger), ctx, f, filepath.Base(path))
	if err != nil {
		return err
	}

	if cfg.Redis.Enabled() {
		if client, err := redisclient.NewClient(cfg.Redis); err != nil {
			zapLogger.Warn("could not clear dropdown cache", zap.Error(err))
		} else {
			if err := dropdown.Invalidate(ctx, client); err != nil {
				zapLogger.Warn("could not clear dropdown cache", zap.Error(err))
			}
			client.Close()
		}
	}

	fmt.Fprintf(out, "imported %d %s into %s store\n", n, kind, backend.Name)
	return nil
}
