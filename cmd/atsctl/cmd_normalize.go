package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"young-ats/internal/domain"
	"young-ats/pkg/normalize"
)

func newNormalizeCitiesCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "normalize-cities",
		Short: "Re-normalize stored city names",
		Long: "Applies the intake city normalization to every stored candidate. " +
			"Changes are saved as field edits by the System user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := normalizeCities(cmd.Context(), current.ucs.Candidate, dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			verb := "Updated"
			if dryRun {
				verb = "Would update"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d candidate(s)\n", verb, n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print changes without saving")
	return cmd
}

func normalizeCities(ctx context.Context, uc domain.CandidateUsecase, dryRun bool, out io.Writer) (int, error) {
	candidates, err := uc.ListCandidates(ctx, "")
	if err != nil {
		return 0, err
	}

	system := domain.User{Email: domain.SystemUser, Name: domain.SystemUser}
	changed := 0
	for _, c := range candidates {
		city := normalize.NormalizeCity(c.City)
		if city == c.City {
			continue
		}
		fmt.Fprintf(out, "%s: %q -> %q\n", c.LegacyID, c.City, city)
		changed++
		if dryRun {
			continue
		}
		_, err := uc.ApplyFieldEdits(ctx, c.LegacyID, domain.FieldEditRequest{
			Edits:             domain.CandidateEdits{City: &city},
			ExpectedUpdatedAt: c.UpdatedAt,
		}, system)
		if err != nil {
			return changed, fmt.Errorf("update %s: %w", c.LegacyID, err)
		}
	}
	return changed, nil
}
