package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/evaluation"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/questions"
	"github.com/jonathan/interview-coach/internal/types"
)

func newEvaluateCmd(c *cli) *cobra.Command {
	var (
		text       string
		area       string
		difficulty string
		topic      string
		concepts   []string
		answer     string
		answerFile string
		timeTaken  int
		timeLimit  int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score one answer against an ad-hoc question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			skillArea, err := types.ParseSkillArea(area)
			if err != nil {
				return err
			}
			level, err := types.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			if answerFile != "" {
				content, err := os.ReadFile(answerFile)
				if err != nil {
					return fmt.Errorf("failed to read answer file: %w", err)
				}
				answer = string(content)
			}

			if len(concepts) == 0 && topic != "" {
				concepts = questions.ExpectedConcepts(skillArea, topic)
			}
			if timeLimit <= 0 {
				timeLimit = types.TimeLimitFor(level, c.cfg.Interview.TimePerQuestion)
			}

			q := types.InterviewQuestion{
				ID:                "adhoc",
				Text:              text,
				Difficulty:        level,
				SkillArea:         skillArea,
				QuestionType:      questions.QuestionType(skillArea),
				Topic:             topic,
				ExpectedConcepts:  concepts,
				IdealAnswerPoints: questions.IdealAnswerPoints(skillArea),
				TimeLimit:         timeLimit,
			}

			result := evaluation.New().Evaluate(q, answer, timeTaken)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintEvaluation(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVar(&area, "area", string(types.SkillAreaTechnical), "Skill area: technical, problem_solving, communication, behavioral, system_design")
	cmd.Flags().StringVar(&difficulty, "difficulty", "medium", "Difficulty: easy, medium, hard")
	cmd.Flags().StringVar(&topic, "topic", "", "Topic used to derive expected concepts")
	cmd.Flags().StringSliceVar(&concepts, "concept", nil, "Expected concept (repeatable)")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text")
	cmd.Flags().StringVar(&answerFile, "answer-file", "", "Read the answer from a file")
	cmd.Flags().IntVarP(&timeTaken, "time", "t", 0, "Seconds taken to answer")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "Time limit in seconds (default derives from difficulty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the evaluation as JSON")
	_ = cmd.MarkFlagRequired("question")
	cmd.MarkFlagsMutuallyExclusive("answer", "answer-file")

	return cmd
}
