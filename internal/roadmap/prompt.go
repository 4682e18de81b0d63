package roadmap

import (
	"fmt"
	"strings"

	"github.com/abhisek/careerpath/internal/store"
)

const systemPrompt = `You are an expert technical career coach. Generate a highly specific, role-tailored career roadmap for the user's target role.

Rules:
1. No generic phases. Every milestone title and skill must be directly relevant to the target role.
2. Follow the domain rules given for the role.
3. Build the roadmap around the user's missing skills so it bridges the gap.
4. Milestones are numbered by month starting at 1.
5. readinessScore is the user's 0-100 job readiness today.`

var familyRules = map[Family]string{
	FamilyDevOps:    "The roadmap MUST cover Linux, Docker, Kubernetes, CI/CD and Terraform. Do NOT include frontend frameworks such as React or Vue.",
	FamilyData:      "The roadmap MUST cover SQL, Python or Scala, ETL, Spark and data warehousing. Do NOT include web design or CSS.",
	FamilyFullStack: "The roadmap MUST cover both frontend and backend development, including APIs and databases.",
}

func buildUserMessage(role string, family Family, r *store.Resume, profile *store.SkillProfile) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("TARGET ROLE: %s\n", role))
	b.WriteString(fmt.Sprintf("DOMAIN RULES: %s\n", familyRules[family]))

	b.WriteString("\nRESUME SKILLS: ")
	var resumeSkills []string
	if r != nil {
		resumeSkills = append(resumeSkills, r.Parsed.TechnicalSkills...)
		resumeSkills = append(resumeSkills, r.Parsed.Tools...)
	}
	if len(resumeSkills) == 0 {
		b.WriteString("None listed\n")
	} else {
		b.WriteString(strings.Join(resumeSkills, ", ") + "\n")
	}

	b.WriteString("\nCURRENT SKILL LEVELS:\n")
	if len(profile.CurrentSkills) == 0 {
		b.WriteString("Unknown\n")
	}
	for _, sl := range profile.CurrentSkills {
		b.WriteString(fmt.Sprintf("- %s: %d/100\n", sl.Name, sl.Level))
	}

	b.WriteString("\nMISSING SKILLS:\n")
	if len(profile.MissingSkills) == 0 {
		b.WriteString("Unknown\n")
	}
	for _, m := range profile.MissingSkills {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", m.Name, m.Importance))
	}

	b.WriteString(fmt.Sprintf("\nGenerate a detailed career roadmap for becoming a %s. Focus strictly on this role.", role))
	return b.String()
}
