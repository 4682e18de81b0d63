package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestScoreBar_Width(t *testing.T) {
	for _, score := range []int{-10, 0, 50, 100, 150} {
		got := lipgloss.Width(NewScoreBar("Go", score, 40).View())
		if got != 40 {
			t.Errorf("score %d: width = %d, want 40", score, got)
		}
	}
}

func TestScoreList_Aligned(t *testing.T) {
	out := ScoreList([]string{"Go", "Kubernetes"}, []int{80, 20}, 50)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if w := lipgloss.Width(l); w != 50 {
			t.Errorf("line width = %d, want 50: %q", w, l)
		}
	}
}
