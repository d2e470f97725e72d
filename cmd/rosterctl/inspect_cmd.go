package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/services"
)

func newInspectCmd() *cobra.Command {
	var (
		flags  sheetFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show what an import would create, without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := flags.read()
			if err != nil {
				return err
			}
			preview, err := services.PreviewImport(name, data, flags.apply(cmd, importer.DefaultOptions()))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(preview)
			}
			return printPreview(cmd.OutOrStdout(), preview)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the preview as JSON")
	return cmd
}

func printPreview(w io.Writer, p *services.ImportPreview) error {
	fields := make([]string, 0, len(p.Headers))
	for f, col := range p.Headers {
		fields = append(fields, fmt.Sprintf("%s=%d", f, col))
	}
	sort.Strings(fields)
	fmt.Fprintf(w, "headers: %v\n", fields)
	fmt.Fprintf(w, "players: %d, empty rows: %d, unusable rows: %v\n\n", len(p.Players), p.EmptyRows, p.UnusableRows)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tNUM\tDNI\tAPELLIDO\tNOMBRE\tNACIMIENTO\tPOS")
	for _, d := range p.Players {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.SourceRow, d.JerseyNumber, d.DNI, d.LastName, d.FirstName, d.BirthDate.Format(time.DateOnly), d.Position)
	}
	return tw.Flush()
}
