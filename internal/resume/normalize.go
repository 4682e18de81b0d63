package resume

import "strings"

// skillNormalizations maps common skill name variants to canonical names.
var skillNormalizations = map[string]string{
	"golang":         "Go",
	"go lang":        "Go",
	"go":             "Go",
	"javascript":     "JavaScript",
	"js":             "JavaScript",
	"typescript":     "TypeScript",
	"ts":             "TypeScript",
	"k8s":            "Kubernetes",
	"kubernetes":     "Kubernetes",
	"react":          "React",
	"react.js":       "React",
	"reactjs":        "React",
	"vue.js":         "Vue",
	"vuejs":          "Vue",
	"node":           "Node.js",
	"node.js":        "Node.js",
	"nodejs":         "Node.js",
	"postgres":       "PostgreSQL",
	"postgresql":     "PostgreSQL",
	"mongo":          "MongoDB",
	"mongodb":        "MongoDB",
	"py":             "Python",
	"python":         "Python",
	"python3":        "Python",
	"tf":             "Terraform",
	"terraform":      "Terraform",
	"gh actions":     "GitHub Actions",
	"github actions": "GitHub Actions",
	"ci/cd":          "CI/CD",
	"cicd":           "CI/CD",
	"aws":            "AWS",
	"gcp":            "GCP",
	"sql":            "SQL",
	"html":           "HTML",
	"css":            "CSS",
	"html5":          "HTML",
	"css3":           "CSS",
	"docker":         "Docker",
	"git":            "Git",
	"linux":          "Linux",
	"spark":          "Spark",
	"pyspark":        "Spark",
}

// NormalizeSkillName returns the canonical form of a skill name.
func NormalizeSkillName(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Mixed case and all-caps acronyms are kept as written.
	if normalized != lower {
		return normalized
	}

	// A single lowercase word gets its first letter capitalized.
	if !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

// NormalizeSkills normalizes every name, dropping blanks and duplicates
// while keeping first-seen order.
func NormalizeSkills(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		canonical := NormalizeSkillName(n)
		key := strings.ToLower(canonical)
		if canonical == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canonical)
	}
	return out
}
