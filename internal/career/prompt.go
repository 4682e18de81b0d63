package career

import (
	"fmt"
	"strings"
)

const compareSystemPrompt = `You are an expert career strategist and market analyst. Perform an honest trade-off analysis between two career paths for this specific candidate.

Compare the roles on exactly these criteria, in this order:
1. Salary Growth (starting pay to a five-year outlook)
2. Stability & Risks (recession and AI exposure)
3. Learning Effort (time to master from the candidate's CURRENT skills)
4. Market Competition (entry barrier)
5. Time-to-Job Readiness (how soon they can be hired)

For each criterion give a short value for role A and role B, the winner (A, B or Tie) and a one-sentence insight. Then name the recommended role in verdict.role, the decisive reason, and what the candidate gives up by choosing it. Be brutally honest about effort versus reward.`

const matchSystemPrompt = `You are an expert technical career counselor. Assess how well the candidate fits the target role using only the skills and experience provided.

Return a 0-100 confidence that the role fits, the reason it fits or does not, the skills the candidate lacks with High or Medium importance, the skills to prioritize first, and a 0-100 readiness score with a one-paragraph explanation. Never invent experience the candidate does not show.`

const riskSystemPrompt = `You are an AI career risk and stability analyst. Analyze the LONG-TERM risk and stability of the selected career path for this candidate.

Report:
- stabilityScore: 0-100
- riskLevel, layoffRisk, automationRisk, competitionLevel: each Low, Medium or High
- insight: a short explanation of the ratings
- mitigation: three concrete actions that reduce the risk
- futureProofingTip: one strategic recommendation

Be realistic and data-driven. Do not exaggerate risks or promise outcomes.`

const hiringSystemPrompt = `You are a senior tech recruiter at a top-tier company evaluating this candidate for the target role. Simulate how a recruiter would HONESTLY evaluate them. Be realistic, not flattering.

Score 0-100:
- resumeSignalStrength: ATS friendliness, skill clarity, role alignment
- skillMatchScore: must-have skills present, dealbreakers missing, depth versus breadth
- projectRelevanceScore: relevance, real impact versus buzzwords, technical complexity
- interviewProbability: realistic shortlist probability from all factors

Then give a two or three sentence summary, direct recruiter insight (why shortlist or reject, what hurts most, what helps fastest), specific strengths and weaknesses, improvement actions ranked by impact, and a verdict of Shortlisted, Borderline or Rejected. No generic feedback.`

// candidate is the profile context shared by every advisory prompt.
type candidate struct {
	Skills     []string
	Tools      []string
	Level      string
	Experience []string
	Projects   []string
	Missing    []string
	Readiness  int
	// ProfileRole is the role the stored skill profile was built for.
	ProfileRole string
}

func (c candidate) write(b *strings.Builder) {
	b.WriteString("CANDIDATE PROFILE:\n")
	b.WriteString(fmt.Sprintf("- Skills: %s\n", joinOrNone(c.Skills)))
	b.WriteString(fmt.Sprintf("- Tools: %s\n", joinOrNone(c.Tools)))
	b.WriteString(fmt.Sprintf("- Experience Level: %s\n", c.Level))
	b.WriteString(fmt.Sprintf("- Experience: %s\n", joinOrNone(c.Experience)))
	b.WriteString(fmt.Sprintf("- Projects: %s\n", joinOrNone(c.Projects)))
	if c.ProfileRole != "" {
		b.WriteString(fmt.Sprintf("- Known gaps for %s: %s (readiness %d/100)\n",
			c.ProfileRole, joinOrNone(c.Missing), c.Readiness))
	}
}

func buildCompareMessage(c candidate, roleA, roleB string) string {
	var b strings.Builder
	c.write(&b)
	b.WriteString(fmt.Sprintf("\nROLE A: %s\nROLE B: %s\n", roleA, roleB))
	b.WriteString("\nTASK: Compare role A and role B for this candidate.")
	return b.String()
}

func buildRoleMessage(c candidate, role, task string) string {
	var b strings.Builder
	c.write(&b)
	b.WriteString(fmt.Sprintf("\nTARGET ROLE: %s\n", role))
	b.WriteString("\nTASK: " + task)
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None listed"
	}
	return strings.Join(items, ", ")
}
