// Package components renders reusable CLI widgets.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a horizontal bar.
type ScoreBar struct {
	Label string
	Score int
	Width int

	// LabelWidth pads labels so bars in a list line up.
	LabelWidth int
}

// NewScoreBar creates a score bar.
func NewScoreBar(label string, score, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Score: score,
		Width: width,
	}
}

// View renders the bar.
func (b ScoreBar) View() string {
	var result string

	if b.Label != "" {
		label := b.Label
		if pad := b.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += theme.Body.Render(label) + "  "
	}

	const scoreWidth = 5 // "  100"
	score := min(max(b.Score, 0), 100)
	barWidth := b.Width - lipgloss.Width(result) - scoreWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * score / 100

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += theme.ForScore(score).Render(fmt.Sprintf("  %3d", score))
	return result
}

// ScoreList renders one aligned bar per entry.
func ScoreList(labels []string, scores []int, width int) string {
	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	lines := make([]string, len(labels))
	for i, l := range labels {
		bar := NewScoreBar(l, scores[i], width)
		bar.LabelWidth = labelWidth
		lines[i] = bar.View()
	}
	return strings.Join(lines, "\n")
}
