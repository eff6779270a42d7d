package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/pipeline"
)

func newReplayCmd(c *cli) *cobra.Command {
	var (
		asJSON      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "replay FILE...",
		Short: "Score recorded interview transcripts",
		Long:  "Validate recorded transcript JSON files against the transcript schema, replay each through its own session and print the final reports.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcripts := make([]*pipeline.Transcript, 0, len(args))
			for _, path := range args {
				t, err := pipeline.LoadTranscript(path)
				if err != nil {
					return err
				}
				transcripts = append(transcripts, t)
			}

			results, err := pipeline.Replay(cmd.Context(), transcripts, c.cfg.Session(), concurrency, c.logger)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			failed := 0
			for _, res := range results {
				if res.Error != "" {
					failed++
					c.logger.Error("replay failed", zap.String("source", res.Source), zap.String("error", res.Error))
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", res.Source)
				printer.PrintReport(res.Snapshot, res.Score)
				printer.PrintSummary(res.Summary)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d transcripts failed to replay", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", pipeline.DefaultReplayConcurrency, "Transcripts replayed at once")
	return cmd
}
