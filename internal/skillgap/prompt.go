package skillgap

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/careerpath/internal/store"
)

const systemPrompt = `You are an expert technical career counselor. Compare the candidate's real resume data against the target job role and produce a data-driven skill gap analysis as strict JSON.

Process:
1. Extract the technical skills proven by the resume.
2. Identify the core requirements of the target role.
3. Classify: strongSkills the candidate has, weakSkills listed without depth (no project usage), missingSkills the role needs.
4. Rate each missing skill's importance as High or Medium.
5. Estimate currentSkills as 0-100 proficiency levels.
6. For every missing skill, add a dependencyGraph entry naming prerequisites the candidate already knows, what it unlocks, key topics and resources.

Rules:
- Never invent experience the resume does not show.
- If the resume is empty, say so in aiInsight and suggest building a foundation.
- Be realistic. A senior role with one year of experience gets a low readinessScore and honest feedback.`

func buildUserMessage(role string, facets store.ResumeFacets) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("TARGET ROLE: %s\n\n", role))
	b.WriteString("CANDIDATE RESUME:\n")
	b.WriteString(fmt.Sprintf("- Technical Skills: %s\n", joinOrNone(facets.TechnicalSkills)))
	b.WriteString(fmt.Sprintf("- Tools: %s\n", joinOrNone(facets.Tools)))
	b.WriteString(fmt.Sprintf("- Experience: %s\n", snippet(facets.Experience)))
	b.WriteString(fmt.Sprintf("- Projects: %s\n", snippet(facets.Projects)))

	b.WriteString(fmt.Sprintf("\nTASK: Generate a skill gap analysis. Identify what is missing for %s.", role))
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None listed"
	}
	return strings.Join(items, ", ")
}

// snippet renders v as JSON cut to snippetLimit bytes on a rune boundary.
func snippet(v any) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return "[]"
	}
	return truncate(string(data), snippetLimit)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
