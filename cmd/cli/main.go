package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/config"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/logger"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

// profileRecord is the migration format. Unlike the API representation it
// carries the password hash.
type profileRecord struct {
	domain.UserProfile
	PasswordHash string `json:"passwordHash,omitempty"`
}

var (
	databaseURL string
	importFile  string
)

var rootCmd = &cobra.Command{
	Use:   "linkinbio",
	Short: "Maintenance tasks for the link-in-bio database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// stdout carries the export document
		logger.InitializeTo(os.Stderr, config.Load().LogLevel, "local")
	},
	SilenceUsage: true,
}

// exportCmd dumps every profile as JSON to stdout
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all profiles as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()
		return runExport(cmd.Context(), repo, cmd.OutOrStdout())
	},
}

// importCmd loads profiles from a file written by export
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import profiles from a JSON export",
	Long: `Import profiles from a file produced by 'export'.

Profiles whose username or email already exists are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open %s: %w", importFile, err)
		}
		defer file.Close()

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		count, err := runImport(cmd.Context(), repo, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles\n", count)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "database URL (defaults to DATABASE_URL)")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func openRepository() (*sqlite.SQLiteRepository, error) {
	dbURL := databaseURL
	if dbURL == "" {
		dbURL = config.Load().DatabaseURL
	}
	repo, err := sqlite.NewSQLiteRepository(dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	return repo, nil
}

func runExport(ctx context.Context, repo ports.ProfileRepository, w io.Writer) error {
	profiles, err := repo.Dump(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	records := make([]profileRecord, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, profileRecord{UserProfile: p, PasswordHash: p.PasswordHash})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func runImport(ctx context.Context, repo ports.ProfileRepository, r io.Reader) (int, error) {
	var records []profileRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode failed: %w", err)
	}

	count := 0
	for _, rec := range records {
		p := rec.UserProfile
		p.PasswordHash = rec.PasswordHash

		existing, err := repo.GetByUsername(ctx, p.Username)
		if err != nil {
			return count, err
		}
		if existing != nil {
			log.Warn().Str("username", p.Username).Msg("Skipping existing profile")
			continue
		}

		if err := repo.Create(ctx, &p); err != nil {
			log.Error().Err(err).Str("username", p.Username).Msg("Failed to import profile")
			continue
		}
		count++
	}
	return count, nil
}
