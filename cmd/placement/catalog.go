package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rejectedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

type validateReport struct {
	File     string        `json:"file"`
	Accepted int           `json:"accepted"`
	Rejected []rejectedRow `json:"rejected"`
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect job catalog files",
	}
	cmd.AddCommand(newCatalogValidateCmd())
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	var file string
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a catalog and report accepted and rejected rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := loadCatalog(file)
			if err != nil {
				return err
			}

			report := validateReport{File: file, Accepted: len(res.Jobs), Rejected: make([]rejectedRow, 0, len(res.Rejected))}
			for _, rej := range res.Rejected {
				report.Rejected = append(report.Rejected, rejectedRow{Line: rej.Line, Reason: rej.Reason(), Raw: rej.Raw})
			}
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if report.Accepted == 0 {
				return fmt.Errorf("catalog %s has no usable postings", file)
			}
			if strict && len(report.Rejected) > 0 {
				return fmt.Errorf("catalog %s has %d rejected rows", file, len(report.Rejected))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the catalog CSV (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any row is rejected")
	markRequired(cmd, "file")
	return cmd
}
