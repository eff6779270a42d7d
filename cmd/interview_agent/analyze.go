package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/pipeline"
	"github.com/jonathan/interview-coach/internal/types"
)

// analysis is the JSON shape printed by the analyze command
type analysis struct {
	Candidate types.CandidateProfile `json:"candidate"`
	Job       types.JobRequirement   `json:"job"`
	SkillGaps []string               `json:"skill_gaps"`
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		opts   interviewOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract candidate and job profiles and list skill gaps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.llmClient(cmd.Context())
			if err != nil {
				return err
			}
			if client != nil {
				defer func() { _ = client.Close() }()
			}

			profiles, err := pipeline.Analyze(cmd.Context(), pipeline.Options{
				ResumeSource:  opts.resume,
				JobSource:     opts.job,
				CandidateName: opts.name,
				JobTitle:      opts.title,
				Client:        client,
				Fetcher:       c.fetcher(),
				Logger:        c.logger,
			})
			if err != nil {
				return err
			}

			if asJSON {
				gaps := profiles.JobRequirement.SkillGaps
				if gaps == nil {
					gaps = []string{}
				}
				return writeJSON(cmd.OutOrStdout(), analysis{
					Candidate: profiles.Candidate,
					Job:       profiles.JobRequirement,
					SkillGaps: gaps,
				})
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			printer.PrintCandidate(&profiles.Candidate)
			printer.PrintJob(&profiles.JobRequirement)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path or URL of the résumé (required)")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path or URL of the job description (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Candidate name when the résumé does not yield one")
	cmd.Flags().StringVar(&opts.title, "title", "", "Job title when the description does not yield one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print profiles as JSON")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
