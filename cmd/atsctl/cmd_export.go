package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"young-ats/internal/domain"
	"young-ats/internal/usecase"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
		filter domain.ExportFilter
		stage  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board to an xlsx or csv file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Stage = domain.Stage(stage)
			filter.Status = domain.Status(status)

			data, filename, err := current.ucs.Export.ExportBoard(cmd.Context(), format, filter)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			rows, err := usecase.ExportRowCount(data, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d candidates to %s\n", rows, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", domain.ExportFormatXLSX, "xlsx or csv")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: generated name)")
	cmd.Flags().StringVar(&filter.Search, "q", "", "only candidates whose name or e-mail matches")
	cmd.Flags().StringVar(&stage, "stage", "", "only this pipeline stage")
	cmd.Flags().StringVar(&status, "status", "", "only this status")
	return cmd
}
