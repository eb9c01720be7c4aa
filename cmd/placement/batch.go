package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"placement-backend/internal/catalog"
	"placement-backend/internal/matching"
	"placement-backend/internal/profiles"
)

const maxBatchLine = 1 << 20

type batchResult struct {
	Line       int                  `json:"line"`
	Name       string               `json:"name,omitempty"`
	Matches    []matching.JobMatch  `json:"matches,omitempty"`
	Prediction *matching.Prediction `json:"prediction,omitempty"`
	Error      string               `json:"error,omitempty"`
}

type batchInput struct {
	line int
	raw  []byte
}

func newBatchCmd() *cobra.Command {
	var catalogPath, inPath, outPath string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Assess every profile in a JSON lines file",
		Long:  "Reads one candidate profile per line and writes one result per line in input order. Invalid lines produce an error result and do not stop the run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			jobs, err := loadNonEmptyCatalog(catalogPath)
			if err != nil {
				return err
			}

			in, err := os.Open(inPath)
			if err != nil {
				return fmt.Errorf("open input %s: %w", inPath, err)
			}
			defer in.Close()

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			results, err := runBatch(cmd.Context(), jobs, in, concurrency)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(out)
			enc := json.NewEncoder(w)
			for _, r := range results {
				if err := enc.Encode(r); err != nil {
					return fmt.Errorf("write result: %w", err)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to the catalog CSV (required)")
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Path to a JSON lines file of profiles (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path, stdout when empty")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", 4, "Number of profiles assessed in parallel")
	markRequired(cmd, "catalog", "in")
	return cmd
}

func runBatch(ctx context.Context, jobs []catalog.JobPosting, r io.Reader, concurrency int) ([]batchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var inputs []batchInput
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBatchLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		inputs = append(inputs, batchInput{line: line, raw: append([]byte(nil), raw...)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// Each goroutine owns one slot, so results need no locking.
	results := make([]batchResult, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = assessLine(jobs, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func assessLine(jobs []catalog.JobPosting, in batchInput) batchResult {
	res := batchResult{Line: in.line}

	var profile profiles.CandidateProfile
	if err := json.Unmarshal(in.raw, &profile); err != nil {
		res.Error = fmt.Sprintf("decode profile: %v", err)
		return res
	}
	res.Name = profile.Name
	if err := profile.Validate(); err != nil {
		res.Error = fmt.Sprintf("invalid profile: %v", err)
		return res
	}

	a := matching.Assess(profile.Skills, jobs)
	res.Matches = a.Matches
	res.Prediction = &a.Prediction
	return res
}
