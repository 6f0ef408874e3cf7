package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/importfile"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
)

const serviceName = "petadmin"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petadmin",
		Short:         "Administrative tasks for the pet adoption API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newImportCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := api.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.PostgresDSN == "" {
				return errors.New("POSTGRES_DSN must be set to run migrations")
			}
			db, err := platformpostgres.Connect(cmd.Context(), cfg.PostgresDSN)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := migrations.Run(db); err != nil {
				return err
			}
			version, dirty, err := migrations.Version(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var (
		batchID    string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "import FILE.toml",
		Short: "Create the listings described in a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := importfile.Load(args[0])
			if err != nil {
				return err
			}
			if batchID != "" {
				input.BatchID = batchID
			}
			cfg, err := api.LoadConfig()
			if err != nil {
				return err
			}
			logger, closeLog := platformobservability.NewLogger(cfg.Observability(serviceName))
			defer closeLog.Close()
			instruments := &platformobservability.Instruments{Logger: logger}

			ctx := cmd.Context()
			pets, cleanup, err := api.BuildPets(ctx, cfg, instruments)
			if err != nil {
				return err
			}
			defer cleanup()
			importer, closeImporter := api.BuildImporter(cfg, instruments, pets.Service)
			defer closeImporter()

			result, err := importer.Import(ctx, input)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "batch %s: %d imported, %d failed\n", result.BatchID, len(result.Imported), len(result.Failed))
			for _, failure := range result.Failed {
				fmt.Fprintf(out, "  listing %d: %s\n", failure.Index, failure.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch id (overrides the file; generated when both are empty)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return cmd
}
