package learningplan

import (
	"fmt"
	"strings"

	"github.com/abhisek/careerpath/internal/store"
)

const systemPrompt = `You are an expert personalized curriculum designer. Build an adaptive weekly learning plan from the learner's real skill gaps and resume.

Priorities:
- HIGH: missing skills critical for the target role. Teach these first, foundations before frameworks.
- MEDIUM: weak skills that need reinforcement.
- Strong skills are already known. Never re-teach them; use them only in advanced practice and projects.

Structure:
- Group related skills into themed weeks with explicit progression.
- Every week lists topics, hands-on projects, practice exercises, quiz concepts, a one-line reason ("You lack X, which Y requires") and the expected outcome.
- Adjust depth to the experience level: students get a slower pace with more basics, professionals get advanced patterns.
- Be specific. Write "Learn PostgreSQL window functions", not "Learn databases".

Also estimate a 0-100 skillLevels map for the skills the plan touches, the total completion time, and your confidence (High, Medium or Low).`

func buildUserMessage(profile *store.SkillProfile, r *store.Resume, hints Hints) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("TARGET ROLE: %s\n", profile.TargetRole))
	b.WriteString(fmt.Sprintf("EXPERIENCE LEVEL: %s\n", hints.ExperienceLevel))
	if hints.Industry != "" {
		b.WriteString(fmt.Sprintf("INDUSTRY: %s\n", hints.Industry))
	}

	if hints.Difficulty != "" {
		b.WriteString(fmt.Sprintf("QUIZ PERFORMANCE: %s\n", hints.Difficulty))
	}
	if hints.Pace != "" {
		b.WriteString(fmt.Sprintf("STUDY PACE: %s\n", hints.Pace))
	}

	b.WriteString("\nSKILLS TO SKIP (already known):\n")
	writeList(&b, profile.StrongSkills)

	b.WriteString("\nCRITICAL GAPS (must learn):\n")
	if len(profile.MissingSkills) == 0 {
		b.WriteString("None\n")
	}
	for _, m := range profile.MissingSkills {
		b.WriteString(fmt.Sprintf("- %s [%s]", m.Name, m.Importance))
		if m.Reason != "" {
			b.WriteString(": " + m.Reason)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nWEAK AREAS (reinforce):\n")
	writeList(&b, profile.WeakSkills)

	if len(profile.CurrentSkills) > 0 {
		b.WriteString("\nCURRENT LEVELS (0-100):\n")
		for _, sl := range profile.CurrentSkills {
			b.WriteString(fmt.Sprintf("- %s: %d\n", sl.Name, sl.Level))
		}
	}

	if r != nil && len(r.Parsed.Projects) > 0 {
		b.WriteString("\nRESUME PROJECTS:\n")
		for i, p := range r.Parsed.Projects {
			if i == 3 {
				break
			}
			b.WriteString(fmt.Sprintf("- %s (%s)\n", p.Name, strings.Join(p.Technologies, ", ")))
		}
	}

	b.WriteString(fmt.Sprintf(`
TASK:
Create a learning path of %d weeks that bridges these specific gaps.
- Cover the critical gaps first, then reinforce the weak areas.
- Do not teach anything listed under SKILLS TO SKIP.`, TargetWeeks))

	switch hints.Difficulty {
	case "hard":
		b.WriteString("\n- The learner is scoring high on quizzes. Move faster and favor advanced topics and harder projects.")
	case "easy":
		b.WriteString("\n- The learner is struggling on quizzes. Revisit fundamentals and add more guided practice before new topics.")
	}
	switch hints.Pace {
	case "slow":
		b.WriteString("\n- Study time is low. Keep each week small.")
	case "fast":
		b.WriteString("\n- Study time is high. Weeks can carry more material.")
	}

	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, it := range items {
		b.WriteString(fmt.Sprintf("- %s\n", it))
	}
}
