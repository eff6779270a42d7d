package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/logger"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/pipeline"
	"github.com/jonathan/interview-coach/internal/types"
)

const (
	promptNext = "Next question"
	promptEnd  = "End interview"
)

// errQuit is returned by an asker when the user aborts the prompt
var errQuit = errors.New("interview aborted")

// asker collects answers from the candidate
type asker interface {
	Answer(q types.InterviewQuestion) (string, error)
	Continue() (bool, error)
}

// promptAsker reads answers from the terminal with promptui
type promptAsker struct {
	cmd *cobra.Command
}

func newPromptAsker(cmd *cobra.Command) asker {
	return &promptAsker{cmd: cmd}
}

func (p *promptAsker) Answer(_ types.InterviewQuestion) (string, error) {
	prompt := promptui.Prompt{
		Label:  "Your answer",
		Stdin:  readCloser{p.cmd.InOrStdin()},
		Stdout: writeCloser{p.cmd.OutOrStdout()},
	}
	answer, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errQuit
	}
	return answer, err
}

func (p *promptAsker) Continue() (bool, error) {
	sel := promptui.Select{
		Label:  "Proceed?",
		Items:  []string{promptNext, promptEnd},
		Stdin:  readCloser{p.cmd.InOrStdin()},
		Stdout: writeCloser{p.cmd.OutOrStdout()},
	}
	_, choice, err := sel.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return choice == promptNext, nil
}

type interviewOptions struct {
	resume   string
	job      string
	name     string
	title    string
	count    int
	seed     uint64
	noReword bool
}

func newInterviewCmd(c *cli) *cobra.Command {
	var opts interviewOptions

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run an interactive mock interview",
		Long:  "Run an interactive mock interview generated from a résumé and a job description. Each answer is scored immediately; the interview ends early when recent scores fall below the termination threshold.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runInterview(cmd, opts)
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

func (c *cli) runInterview(cmd *cobra.Command, opts interviewOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	client, err := c.llmClient(ctx)
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

	prepared, err := pipeline.Prepare(ctx, pipeline.Options{
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
		OnProgress: func(e pipeline.ProgressEvent) {
			c.logger.Debug(e.Message, zap.String("step", e.Step), zap.String("category", e.Category))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to prepare interview: %w", err)
	}

	printer.PrintCandidate(&prepared.Candidate)
	printer.PrintJob(&prepared.JobRequirement)

	sess := prepared.Session
	ask := c.newAsker(cmd)
	for {
		q, ok := sess.CurrentQuestion()
		if !ok {
			break
		}
		position, total := sess.Position()
		printer.PrintQuestion(q, position, total)

		start := time.Now()
		answer, err := ask.Answer(q)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		elapsed := int(time.Since(start).Round(time.Second) / time.Second)

		result, err := sess.SubmitAnswer(strings.TrimSpace(answer), elapsed)
		if err != nil {
			return err
		}
		c.logger.Debug("answer submitted",
			zap.String("question_id", q.ID),
			zap.String("answer", logger.TruncateForLog(answer, 80)),
			zap.Int("time_taken", elapsed),
		)
		printer.PrintEvaluation(result.Evaluation)

		if result.Terminated {
			_, _ = fmt.Fprintln(out, "The interview has been ended early based on your recent scores.")
			break
		}
		if !result.Continues {
			break
		}
		proceed, err := ask.Continue()
		if err != nil {
			return fmt.Errorf("failed to read selection: %w", err)
		}
		if !proceed {
			break
		}
	}

	score := sess.Conclude()
	printer.PrintReport(sess.Snapshot(), score)
	printer.PrintSummary(sess.Summary())
	return nil
}
