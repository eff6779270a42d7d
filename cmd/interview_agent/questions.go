package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/pipeline"
)

func newQuestionsCmd(c *cli) *cobra.Command {
	var opts interviewOptions

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Generate interview questions as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.llmClient(cmd.Context())
			if err != nil {
				return err
			}
			if client != nil {
				defer func() { _ = client.Close() }()
			}

			sessCfg := c.cfg.Session()
			if opts.count > 0 {
				sessCfg.MaxQuestions = opts.count
			}
			seed := c.cfg.Interview.Seed
			if opts.seed != 0 {
				seed = opts.seed
			}

			prepared, err := pipeline.Prepare(cmd.Context(), pipeline.Options{
				ResumeSource:  opts.resume,
				JobSource:     opts.job,
				CandidateName: opts.name,
				JobTitle:      opts.title,
				Config:        sessCfg,
				Seed:          seed,
				Client:        client,
				Rephrase:      c.cfg.Interview.Rephrase && !opts.noReword,
				Fetcher:       c.fetcher(),
				Logger:        c.logger,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), prepared.Questions)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path or URL of the résumé (required)")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path or URL of the job description (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Candidate name when the résumé does not yield one")
	cmd.Flags().StringVar(&opts.title, "title", "", "Job title when the description does not yield one")
	cmd.Flags().IntVarP(&opts.count, "questions", "n", 0, "Number of questions (overrides config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for question selection (overrides config)")
	cmd.Flags().BoolVar(&opts.noReword, "no-rephrase", false, "Keep template question text")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
