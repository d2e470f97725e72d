package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dosada05/cup-roster/config"
	"github.com/Dosada05/cup-roster/db"
	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/repositories"
	"github.com/Dosada05/cup-roster/services"
	"github.com/Dosada05/cup-roster/storage"
)

// sheetFlags — параметры разбора, общие для import и inspect.
type sheetFlags struct {
	file      string
	headerRow int
	startRow  int
	position  string
}

func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Path to the .xlsx roster (required)")
	cmd.Flags().IntVar(&f.headerRow, "header-row", importer.DefaultHeaderRow, "Row holding the column headers")
	cmd.Flags().IntVar(&f.startRow, "start-row", importer.DefaultStartRow, "First row with player data")
	cmd.Flags().StringVar(&f.position, "position", string(models.PositionMidfielder), "Position assigned to every imported player")
	_ = cmd.MarkFlagRequired("file")
}

// apply переносит явно заданные флаги поверх base.
func (f *sheetFlags) apply(cmd *cobra.Command, base importer.Options) importer.Options {
	if cmd.Flags().Changed("header-row") {
		base.HeaderRow = f.headerRow
	}
	if cmd.Flags().Changed("start-row") {
		base.StartRow = f.startRow
	}
	if cmd.Flags().Changed("position") || base.DefaultPosition == "" {
		base.DefaultPosition = models.Position(strings.ToUpper(strings.TrimSpace(f.position)))
	}
	return base
}

func (f *sheetFlags) read() (string, []byte, error) {
	data, err := os.ReadFile(f.file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", f.file, err)
	}
	return filepath.Base(f.file), data, nil
}

func newImportCmd() *cobra.Command {
	var (
		flags  sheetFlags
		teamID int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import players from an Excel roster into a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			base, err := cfg.ImportOptions()
			if err != nil {
				return err
			}
			opts := flags.apply(cmd, base)

			name, data, err := flags.read()
			if err != nil {
				return err
			}

			dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			var uploader storage.FileUploader
			if cfg.R2.Configured() {
				if uploader, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2); err != nil {
					return err
				}
			}

			svc := services.NewPlayerImportService(
				repositories.NewPostgresTeamRepository(dbConn),
				repositories.NewPostgresPlayerRepository(dbConn),
				uploader,
				nil,
				slog.Default(),
			)
			report, err := svc.ImportPlayers(ctx, services.ImportPlayersInput{
				TeamID:   teamID,
				FileName: name,
				Data:     data,
				Options:  opts,
			})
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&teamID, "team", 0, "Target team ID (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func printReport(w io.Writer, report *models.ImportReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if report.Empty() {
		_, err := fmt.Fprintln(w, "No se encontraron jugadores en el archivo Excel.")
		return err
	}
	for _, line := range report.Summary() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
