package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"placement-backend/internal/matching"
	"placement-backend/internal/profiles"
)

type matchOutput struct {
	Mode    string              `json:"mode"`
	Skills  []string            `json:"skills"`
	Matches []matching.JobMatch `json:"matches"`
}

type predictOutput struct {
	Profile    profiles.CandidateProfile `json:"profile"`
	Matches    []matching.JobMatch       `json:"matches"`
	Prediction matching.Prediction       `json:"prediction"`
}

func newMatchCmd() *cobra.Command {
	var catalogPath string
	var skills []string
	var loose bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank catalog postings against a skill list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := loadNonEmptyCatalog(catalogPath)
			if err != nil {
				return err
			}

			out := matchOutput{Mode: "strict", Skills: skills}
			if loose {
				out.Mode = "loose"
				out.Matches = matching.Explore(skills, jobs)
			} else {
				out.Matches = matching.Assess(skills, jobs).Matches
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to the catalog CSV (required)")
	cmd.Flags().StringSliceVarP(&skills, "skills", "s", nil, "Comma separated candidate skills")
	cmd.Flags().BoolVar(&loose, "loose", false, "Include every posting sharing at least one skill")
	markRequired(cmd, "catalog")
	return cmd
}

func newPredictCmd() *cobra.Command {
	var catalogPath, profilePath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Assess a candidate profile file against the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := loadNonEmptyCatalog(catalogPath)
			if err != nil {
				return err
			}
			profile, err := profiles.LoadFile(profilePath)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			a := matching.Assess(profile.Skills, jobs)
			return writeJSON(cmd.OutOrStdout(), predictOutput{Profile: profile, Matches: a.Matches, Prediction: a.Prediction})
		},
	}
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to the catalog CSV (required)")
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to a YAML or JSON profile (required)")
	markRequired(cmd, "catalog", "profile")
	return cmd
}
