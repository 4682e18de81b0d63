package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/adaptive"
	"github.com/abhisek/careerpath/internal/career"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

const barWidth = 60

// emit prints v as JSON when --json is set and calls pretty otherwise.
func emit(cmd *cobra.Command, v any, pretty func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	pretty(w)
	return nil
}

func heading(w io.Writer, title, subtitle string) {
	lipgloss.Fprintln(w, theme.Title.Render(title))
	if subtitle != "" {
		lipgloss.Fprintln(w, theme.Subtitle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	lipgloss.Fprintln(w, theme.Label.Render(label+":")+" "+theme.Body.Render(value))
}

func bullets(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	lipgloss.Fprintln(w, theme.Label.Render(label))
	for _, it := range items {
		lipgloss.Fprintln(w, "  • "+theme.Body.Render(it))
	}
}

func fallbackNote(w io.Writer, fallback bool) {
	if fallback {
		lipgloss.Fprintln(w, theme.Warn.Render("AI output was unavailable; showing a default result."))
		fmt.Fprintln(w)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
}

func renderResume(w io.Writer, r *store.Resume) {
	heading(w, "Resume", r.UserID)
	lipgloss.Fprintln(w, components.NewScoreBar("ATS score", r.ATS.Score, barWidth).View())
	fmt.Fprintln(w)
	field(w, "Technical skills", strings.Join(r.Parsed.TechnicalSkills, ", "))
	field(w, "Tools", strings.Join(r.Parsed.Tools, ", "))
	field(w, "Experience entries", fmt.Sprint(len(r.Parsed.Experience)))
	field(w, "Projects", fmt.Sprint(len(r.Parsed.Projects)))
	fmt.Fprintln(w)
	bullets(w, "Strengths", r.ATS.Strengths)
	bullets(w, "Weaknesses", r.ATS.Weaknesses)
	bullets(w, "Missing keywords", r.ATS.MissingKeywords)
	bullets(w, "Suggestions", r.ATS.Suggestions)
}

func renderProfile(w io.Writer, p *store.SkillProfile) {
	heading(w, "Skill gap report", p.TargetRole)
	fallbackNote(w, p.Fallback)
	lipgloss.Fprintln(w, components.NewScoreBar("Readiness", p.ReadinessScore, barWidth).View())
	fmt.Fprintln(w)
	field(w, "Strong", strings.Join(p.StrongSkills, ", "))
	field(w, "Weak", strings.Join(p.WeakSkills, ", "))
	fmt.Fprintln(w)

	if len(p.MissingSkills) > 0 {
		t := newTable("Missing skill", "Importance", "Time", "Category", "Why")
		for _, m := range p.MissingSkills {
			t.Row(m.Name, m.Importance, m.TimeToLearn, m.Category, m.Reason)
		}
		lipgloss.Fprintln(w, t.String())
		fmt.Fprintln(w)
	}

	if len(p.CurrentSkills) > 0 {
		labels := make([]string, len(p.CurrentSkills))
		scores := make([]int, len(p.CurrentSkills))
		for i, s := range p.CurrentSkills {
			labels[i], scores[i] = s.Name, s.Level
		}
		lipgloss.Fprintln(w, theme.Label.Render("Current levels"))
		lipgloss.Fprintln(w, components.ScoreList(labels, scores, barWidth))
		fmt.Fprintln(w)
	}

	for _, d := range p.DependencyGraph {
		line := d.Skill
		if len(d.Prerequisites) > 0 {
			line = strings.Join(d.Prerequisites, ", ") + " → " + line
		}
		if len(d.Unlocks) > 0 {
			line += " → " + strings.Join(d.Unlocks, ", ")
		}
		lipgloss.Fprintln(w, "  "+theme.Hint.Render(line))
	}
	if p.AIInsight != "" {
		fmt.Fprintln(w)
		lipgloss.Fprintln(w, theme.Card.Render(p.AIInsight))
	}
}

func renderPlan(w io.Writer, p *store.LearningPath) {
	heading(w, "Learning plan", fmt.Sprintf("%s · confidence %s", p.EstimatedCompletion, p.Confidence))
	fallbackNote(w, p.Fallback)
	for _, u := range p.Weeks {
		title := u.Week
		if u.Theme != "" {
			title += " · " + u.Theme
		}
		lipgloss.Fprintln(w, theme.Label.Render(title))
		field(w, "  Topics", strings.Join(u.Topics, ", "))
		field(w, "  Projects", strings.Join(u.Projects, ", "))
		field(w, "  Practice", strings.Join(u.Practice, ", "))
		field(w, "  Quizzes", strings.Join(u.Quizzes, ", "))
		field(w, "  Outcome", u.Outcome)
		fmt.Fprintln(w)
	}

	if len(p.SkillLevels) > 0 {
		names := make([]string, 0, len(p.SkillLevels))
		for name := range p.SkillLevels {
			names = append(names, name)
		}
		sort.Strings(names)
		scores := make([]int, len(names))
		for i, n := range names {
			scores[i] = p.SkillLevels[n]
		}
		lipgloss.Fprintln(w, theme.Label.Render("Skill levels"))
		lipgloss.Fprintln(w, components.ScoreList(names, scores, barWidth))
	}
}

func renderRoadmap(w io.Writer, r *store.CareerRoadmap) {
	heading(w, "Career roadmap", fmt.Sprintf("%s · %s · %s", r.TargetRole, r.CurrentLevel, r.Timeline))
	fallbackNote(w, r.Fallback)
	lipgloss.Fprintln(w, components.NewScoreBar("Readiness", r.ReadinessScore, barWidth).View())
	fmt.Fprintln(w)

	t := newTable("Month", "Milestone", "Skills", "Projects")
	for _, m := range r.Milestones {
		t.Row(fmt.Sprint(m.Month), m.Title, strings.Join(m.Skills, ", "), strings.Join(m.Projects, ", "))
	}
	lipgloss.Fprintln(w, t.String())
	fmt.Fprintln(w)

	bullets(w, "Skill gaps", r.SkillGaps)
	bullets(w, "Recommended courses", r.RecommendedCourses)
	bullets(w, "Internships", r.InternshipRecommendations)
	bullets(w, "Next steps", r.NextSteps)
}

func renderRoadmapList(w io.Writer, all []store.CareerRoadmap) {
	if len(all) == 0 {
		fmt.Fprintln(w, "No roadmaps yet.")
		return
	}
	t := newTable("Role", "Level", "Timeline", "Readiness", "Updated")
	for _, r := range all {
		t.Row(r.TargetRole, r.CurrentLevel, r.Timeline, fmt.Sprint(r.ReadinessScore),
			r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	lipgloss.Fprintln(w, t.String())
}

func renderRecalc(w io.Writer, res *adaptive.Result) {
	heading(w, "Adaptive recalculation", "")
	field(w, "Average score", fmt.Sprintf("%.1f", res.AvgScore))
	field(w, "Difficulty", res.Difficulty)
	field(w, "Speed", res.SpeedLabel)
	field(w, "Skill delta", fmt.Sprintf("%+d", res.Delta))
	fmt.Fprintln(w)
	switch {
	case res.Plan == nil:
		fmt.Fprintln(w, "No skill profile or learning plan yet. Run `careerpath skills generate` first.")
	case !res.Regenerated:
		lipgloss.Fprintln(w, theme.Hint.Render("No skill profile; showing the stored plan unchanged."))
		fmt.Fprintln(w)
		renderPlan(w, res.Plan)
	default:
		renderPlan(w, res.Plan)
	}
}

func renderConversation(w io.Writer, entries []store.ConversationEntry) {
	for _, e := range entries {
		who := theme.Label.Render("You")
		if e.Role == store.ChatRoleAssistant {
			who = theme.Title.Render("Mentor")
		}
		lipgloss.Fprintln(w, who+"  "+theme.Hint.Render(e.Timestamp.Local().Format("15:04")))
		lipgloss.Fprintln(w, theme.Body.Render(e.Content))
		fmt.Fprintln(w)
	}
}

func renderComparison(w io.Writer, c *career.RoleComparison) {
	heading(w, "Role comparison", c.RoleA+" vs "+c.RoleB)
	fallbackNote(w, c.Fallback)
	if len(c.Criteria) > 0 {
		t := newTable("Criteria", c.RoleA, c.RoleB, "Winner", "Insight")
		for _, cr := range c.Criteria {
			winner := cr.Winner
			switch cr.Winner {
			case career.WinnerA:
				winner = c.RoleA
			case career.WinnerB:
				winner = c.RoleB
			}
			t.Row(cr.Name, cr.RoleA, cr.RoleB, winner, cr.Insight)
		}
		lipgloss.Fprintln(w, t.String())
		fmt.Fprintln(w)
	}
	lipgloss.Fprintln(w, theme.Label.Render("Recommended: ")+theme.Good.Render(c.Verdict.Role))
	field(w, "Why", c.Verdict.Reason)
	field(w, "Trade-off", c.Verdict.TradeOff)
}

func renderMatch(w io.Writer, m *career.RoleMatch) {
	heading(w, "Role match", m.TargetRole)
	fallbackNote(w, m.Fallback)
	lipgloss.Fprintln(w, components.ScoreList(
		[]string{"Confidence", "Readiness"},
		[]int{m.Confidence, m.ReadinessScore},
		barWidth,
	))
	fmt.Fprintln(w)
	field(w, "Why", m.Reason)
	field(w, "Readiness", m.ReadinessExplanation)
	fmt.Fprintln(w)
	gaps := make([]string, len(m.SkillGaps))
	for i, g := range m.SkillGaps {
		gaps[i] = g.Skill + " (" + g.Importance + ")"
	}
	bullets(w, "Skill gaps", gaps)
	bullets(w, "Learn first", m.PrioritySkills)
}

func renderRisk(w io.Writer, r *career.RiskReport) {
	heading(w, "Career risk", r.TargetRole)
	fallbackNote(w, r.Fallback)
	lipgloss.Fprintln(w, components.NewScoreBar("Stability", r.StabilityScore, barWidth).View())
	fmt.Fprintln(w)
	t := newTable("Risk", "Level")
	t.Row("Overall", r.RiskLevel)
	t.Row("Layoffs", r.LayoffRisk)
	t.Row("Automation", r.AutomationRisk)
	t.Row("Competition", r.CompetitionLevel)
	lipgloss.Fprintln(w, t.String())
	fmt.Fprintln(w)
	field(w, "Insight", r.Insight)
	bullets(w, "Mitigation", r.Mitigation)
	field(w, "Future-proofing", r.FutureProofingTip)
}

func renderHiring(w io.Writer, h *career.HiringSignal) {
	heading(w, "Hiring signal", h.TargetRole)
	fallbackNote(w, h.Fallback)
	lipgloss.Fprintln(w, components.ScoreList(
		[]string{"Resume signal", "Skill match", "Project relevance", "Interview odds"},
		[]int{h.ResumeSignalStrength, h.SkillMatchScore, h.ProjectRelevanceScore, h.InterviewProbability},
		barWidth,
	))
	fmt.Fprintln(w)
	verdict := theme.Warn
	switch h.Verdict {
	case career.VerdictShortlisted:
		verdict = theme.Good
	case career.VerdictRejected:
		verdict = theme.Bad
	}
	lipgloss.Fprintln(w, theme.Label.Render("Verdict: ")+verdict.Render(h.Verdict))
	field(w, "Summary", h.Summary)
	field(w, "Recruiter", h.RecruiterInsight)
	fmt.Fprintln(w)
	bullets(w, "Strengths", h.Strengths)
	bullets(w, "Weaknesses", h.Weaknesses)
	bullets(w, "Fix first", h.ImprovementActions)
}
