// Package observability renders profiles, questions, evaluations and interview reports for the terminal.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// reportWidth is the width of the report section rules
	reportWidth = 80
)

// NoDataMessage is the report rendered for a session without answers
const NoDataMessage = "No interview data available"

// Printer handles formatted terminal output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidate outputs a human-readable summary of a candidate profile.
func (p *Printer) PrintCandidate(c *types.CandidateProfile) {
	if c == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", c.Name)
	if c.Email != "" {
		fmt.Fprintf(&sb, "Email:       %s\n", c.Email)
	}
	fmt.Fprintf(&sb, "Experience:  %d years\n", c.YearsOfExperience)
	writeList(&sb, "Skills", c.Skills)
	writeList(&sb, "Technologies", c.Technologies)
	writeList(&sb, "Certifications", c.Certifications)
	writeList(&sb, "Strengths", c.Strengths)

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a human-readable summary of job requirements, including any identified skill gaps.
func (p *Printer) PrintJob(j *types.JobRequirement) {
	if j == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Role:   %s\n", j.Title)
	fmt.Fprintf(&sb, "Level:  %s\n", j.ExperienceLevel)
	writeList(&sb, "Required Skills", j.RequiredSkills)
	writeList(&sb, "Preferred Skills", j.PreferredSkills)
	writeList(&sb, "Technologies", j.Technologies)
	writeList(&sb, "Skill Gaps", j.SkillGaps)

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestion outputs one question with its position in the interview.
func (p *Printer) PrintQuestion(q types.InterviewQuestion, position, total int) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Area: %s  |  Difficulty: %s  |  Time limit: %s\n",
		q.SkillArea.Label(), q.Difficulty, session.FormatDuration(time.Duration(q.TimeLimit)*time.Second))
	sb.WriteString("\n")
	sb.WriteString(wrap(q.Text, boxWidth-4))

	p.printBox(fmt.Sprintf("QUESTION %d OF %d", position, total), sb.String())
}

// PrintEvaluation outputs the component scores and feedback for one answer.
func (p *Printer) PrintEvaluation(e types.AnswerEvaluation) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall: %s/100\n", num(e.Overall))
	fmt.Fprintf(&sb, "Accuracy: %s | Clarity: %s | Depth: %s\n", num(e.Accuracy), num(e.Clarity), num(e.Depth))
	fmt.Fprintf(&sb, "Relevance: %s | Time: %s\n", num(e.Relevance), num(e.TimeEfficiency))
	if e.Feedback != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(e.Feedback, boxWidth-4))
		sb.WriteString("\n")
	}
	writeMarked(&sb, "Strengths", "✓", e.Strengths)
	writeMarked(&sb, "Improve", "✗", e.AreasForImprovement)
	writeMarked(&sb, "Missed concepts", "•", e.MissedConcepts)

	p.printBox("ANSWER EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs session progress.
func (p *Printer) PrintSummary(s session.Summary) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session:   %s\n", s.SessionID)
	fmt.Fprintf(&sb, "Status:    %s\n", s.Status)
	fmt.Fprintf(&sb, "Answered:  %d of %d\n", s.QuestionsAnswered, s.TotalQuestions)
	fmt.Fprintf(&sb, "Average:   %s/100\n", num(s.CurrentAverage))
	fmt.Fprintf(&sb, "Duration:  %s\n", s.Duration)
	fmt.Fprintf(&sb, "Passed:    %t", s.Passed)
	for _, w := range s.Warnings {
		fmt.Fprintf(&sb, "\n⚠ %s", w)
	}

	p.printBox("SESSION SUMMARY", sb.String())
}

// PrintReport outputs the final interview report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(snap session.Snapshot, score types.InterviewScore) {
	fmt.Fprintln(p.out, Report(snap, score))
}

// Report renders the final interview report as plain text
func Report(snap session.Snapshot, score types.InterviewScore) string {
	if len(snap.Evaluations) == 0 {
		return NoDataMessage
	}

	rule := strings.Repeat("=", reportWidth)
	var sb strings.Builder
	section := func(title string) {
		fmt.Fprintf(&sb, "\n%s\n%s\n%s\n", rule, title, rule)
	}

	fmt.Fprintf(&sb, "%s\nMOCK INTERVIEW REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&sb, "\nCandidate: %s\n", snap.Candidate.Name)
	fmt.Fprintf(&sb, "Position: %s\n", snap.Job.Title)
	fmt.Fprintf(&sb, "Interview Date: %s\n", snap.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Duration: %s\n", snap.Duration)

	section("OVERALL PERFORMANCE")
	fmt.Fprintf(&sb, "Final Score: %s/100\n", num(score.Overall))
	fmt.Fprintf(&sb, "Readiness Category: %s\n", score.Readiness)
	fmt.Fprintf(&sb, "Hiring Readiness: %s\n", score.HiringReadiness)
	fmt.Fprintf(&sb, "Estimated Role Fit: %s%%\n", num(score.RoleFit))
	fmt.Fprintf(&sb, "Completion: %s%%\n", num(score.CompletionPercentage))

	section("SKILL AREA BREAKDOWN")
	for _, area := range types.AllSkillAreas() {
		as, ok := score.SkillAreaScores[area]
		if !ok || !as.HasData() {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s/100 (%d questions)\n", area.Label(), num(as.Score), as.QuestionsAsked)
	}

	section("COMPONENT SCORES")
	fmt.Fprintf(&sb, "Technical Depth: %s/100\n", num(score.TechnicalDepth))
	fmt.Fprintf(&sb, "Communication Quality: %s/100\n", num(score.CommunicationQuality))
	fmt.Fprintf(&sb, "Time Management: %s/100\n", num(score.TimeManagement))
	fmt.Fprintf(&sb, "Adaptability: %s/100\n", num(score.Adaptability))

	section("STRENGTHS")
	for _, s := range score.Strengths {
		fmt.Fprintf(&sb, "  ✓ %s\n", s)
	}

	section("AREAS FOR IMPROVEMENT")
	for _, w := range score.Weaknesses {
		fmt.Fprintf(&sb, "  ✗ %s\n", w)
	}

	section("ACTIONABLE FEEDBACK")
	for _, f := range score.ActionableFeedback {
		fmt.Fprintf(&sb, "  • %s\n", f)
	}

	section("INDIVIDUAL QUESTION SCORES")
	for i, e := range snap.Evaluations {
		fmt.Fprintf(&sb, "\nQuestion %d: %s/100\n", i+1, num(e.Overall))
		fmt.Fprintf(&sb, "  Accuracy: %s | Clarity: %s | Depth: %s | Relevance: %s\n",
			num(e.Accuracy), num(e.Clarity), num(e.Depth), num(e.Relevance))
	}

	fmt.Fprintf(&sb, "\n%s", rule)
	return sb.String()
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items[:min(len(items), maxItemsToShow)]
	fmt.Fprintf(sb, "\n%s:\n  %s", label, strings.Join(shown, ", "))
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, " ... and %d more", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

func writeMarked(sb *strings.Builder, label, mark string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	for _, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(sb, "  %s %s\n", mark, item)
	}
}

// num formats a score without trailing zeros
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) string {
	var lines []string
	var line []string
	length := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if length > 0 && length+1+n > width {
			lines = append(lines, strings.Join(line, " "))
			line, length = nil, 0
		}
		if length > 0 {
			length++
		}
		line = append(line, word)
		length += n
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}
