package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/fetch"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "interview_agent"

// cli carries state shared by every subcommand once the root pre-run has loaded it
type cli struct {
	cfgFile string
	logJSON bool
	debug   bool

	cfg    *config.Config
	logger *zap.Logger

	// newAsker builds the answer source for interactive sessions
	newAsker func(cmd *cobra.Command) asker
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&cli{newAsker: newPromptAsker})
}

func buildRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "Mock interview coach",
		Long:          "interview_agent runs adaptive mock interviews generated from a résumé and a job description, scores every answer and produces a final readiness report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is interview-coach.yaml in the current directory)")
	root.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "json format for logging")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "verbose/debug output")

	root.AddCommand(
		newInterviewCmd(c),
		newReplayCmd(c),
		newQuestionsCmd(c),
		newAnalyzeCmd(c),
		newEvaluateCmd(c),
	)
	return root
}

// init loads configuration and builds the logger; flags override the config file
func (c *cli) init() error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	if c.logJSON {
		cfg.Log.JSON = true
	}
	if c.debug {
		cfg.Log.Debug = true
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	c.cfg = cfg
	c.logger = log
	return nil
}

// llmClient returns a guarded Gemini client, or nil when no API key is configured
func (c *cli) llmClient(ctx context.Context) (llm.Client, error) {
	if c.cfg.LLM.APIKey == "" {
		c.logger.Debug("no API key configured, using keyword analysis and template questions")
		return nil, nil
	}
	inner, err := llm.NewClient(ctx, c.cfg.ModelConfig(), c.cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.NewGuardedClient(inner, c.cfg.Guard(), c.logger), nil
}

func (c *cli) fetcher() *fetch.Fetcher {
	return fetch.NewFetcher(append(c.cfg.FetchOptions(), fetch.WithLogger(c.logger))...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
