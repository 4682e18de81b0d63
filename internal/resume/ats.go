package resume

import (
	"strings"

	"github.com/abhisek/careerpath/internal/store"
)

const (
	atsBaseScore     = 50
	atsSectionPoints = 10
	atsKeywordPoints = 2
	atsMaxScore      = 100
)

// atsKeywords are the terms a recruiter's keyword filter commonly scans for.
var atsKeywords = []string{"javascript", "python", "react", "node", "sql", "api", "git"}

type atsSection struct {
	name       string
	present    bool
	strength   string
	weakness   string
	suggestion string
}

// Assess scores a resume the way a basic applicant-tracking filter would:
// points for each populated section plus points per recognized keyword.
// rawText may be empty, in which case only the parsed facets are searched.
func Assess(rawText string, facets store.ResumeFacets) store.ATSAssessment {
	sections := []atsSection{
		{"technical skills", len(facets.TechnicalSkills) > 0,
			"Lists concrete technical skills",
			"No technical skills section",
			"Add a technical skills section with the languages and frameworks you use"},
		{"experience", len(facets.Experience) > 0,
			"Includes work experience",
			"No work experience listed",
			"Add internships, freelance work or part-time roles under experience"},
		{"projects", len(facets.Projects) > 0,
			"Shows hands-on projects",
			"No projects listed",
			"Add two or three projects with the technologies you used"},
		{"education", len(facets.Education) > 0,
			"Education is documented",
			"Education section is missing",
			"Add your degree, institution and graduation year"},
		{"certifications", len(facets.Certifications) > 0,
			"Holds certifications",
			"No certifications listed",
			"Consider a certification relevant to your target role"},
	}

	a := store.ATSAssessment{
		Score:           atsBaseScore,
		Strengths:       []string{},
		Weaknesses:      []string{},
		MissingKeywords: []string{},
		Suggestions:     []string{},
	}
	for _, s := range sections {
		if s.present {
			a.Score += atsSectionPoints
			a.Strengths = append(a.Strengths, s.strength)
			continue
		}
		a.Weaknesses = append(a.Weaknesses, s.weakness)
		a.Suggestions = append(a.Suggestions, s.suggestion)
	}

	haystack := searchText(rawText, facets)
	for _, kw := range atsKeywords {
		if strings.Contains(haystack, kw) {
			a.Score += atsKeywordPoints
		} else {
			a.MissingKeywords = append(a.MissingKeywords, kw)
		}
	}
	a.Score = min(a.Score, atsMaxScore)

	if len(a.Strengths) == 0 {
		a.Strengths = append(a.Strengths, "Well-structured resume")
	}
	if len(a.Suggestions) == 0 {
		a.Suggestions = append(a.Suggestions, "Add more quantifiable achievements")
	}
	return a
}

func searchText(rawText string, facets store.ResumeFacets) string {
	var b strings.Builder
	b.WriteString(rawText)
	for _, s := range facets.TechnicalSkills {
		b.WriteString(" ")
		b.WriteString(s)
	}
	for _, s := range facets.Tools {
		b.WriteString(" ")
		b.WriteString(s)
	}
	for _, p := range facets.Projects {
		b.WriteString(" ")
		b.WriteString(strings.Join(p.Technologies, " "))
	}
	return strings.ToLower(b.String())
}
