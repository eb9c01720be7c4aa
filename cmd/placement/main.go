// Package main implements the placement CLI: offline catalog checks, matching
// and batch prediction over local files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"placement-backend/internal/catalog"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "placement",
		Short:        "Job matching and placement prediction over a local catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newCatalogCmd(), newMatchCmd(), newPredictCmd(), newBatchCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (catalog.LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.LoadResult{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return catalog.Read(f)
}

// loadNonEmptyCatalog rejects catalogs without a single usable posting.
func loadNonEmptyCatalog(path string) ([]catalog.JobPosting, error) {
	res, err := loadCatalog(path)
	if err != nil {
		return nil, err
	}
	if len(res.Jobs) == 0 {
		return nil, fmt.Errorf("catalog %s has no usable postings (%d rejected rows)", path, len(res.Rejected))
	}
	return res.Jobs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
