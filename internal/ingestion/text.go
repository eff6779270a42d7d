package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	invisibleRune = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
)

// CleanText normalizes résumé and job-description text while preserving its line structure:
// headings, bullets and section breaks survive, runs of spaces and blank lines collapse.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = invisibleRune.Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses spaces inside a line and normalizes bullet markers to "- "
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if rest, ok := bulletText(trimmed); ok {
		return "- " + rest
	}
	return trimmed
}

var bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "}

// bulletText strips a leading bullet marker
func bulletText(line string) (string, bool) {
	for _, marker := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
