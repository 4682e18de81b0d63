package roadmap

import (
	"strings"
	"unicode"
)

// Family groups target roles that share a curriculum shape.
type Family int

const (
	FamilyFullStack Family = iota
	FamilyDevOps
	FamilyData
)

func (f Family) String() string {
	switch f {
	case FamilyDevOps:
		return "devops"
	case FamilyData:
		return "data"
	default:
		return "fullstack"
	}
}

// keywords matches a role by word prefix, whole word, substring of a word,
// or a phrase over the space-joined words.
type keywords struct {
	prefixes []string
	exact    []string
	stems    []string
	phrases  []string
}

var (
	devopsKeywords = keywords{
		prefixes: []string{"devops", "cloud", "infrastructure"},
		exact:    []string{"sre"},
		phrases:  []string{"platform engineer"},
	}
	dataKeywords = keywords{
		prefixes: []string{"etl", "analytic", "analyst"},
		exact:    []string{"ml"},
		stems:    []string{"data"},
	}
)

// Classify maps a free-text role to its family. DevOps keywords win over
// data keywords; anything unrecognized is full stack.
func Classify(role string) Family {
	words := strings.FieldsFunc(strings.ToLower(role), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch {
	case devopsKeywords.match(words):
		return FamilyDevOps
	case dataKeywords.match(words):
		return FamilyData
	default:
		return FamilyFullStack
	}
}

func (k keywords) match(words []string) bool {
	for _, w := range words {
		for _, p := range k.prefixes {
			if strings.HasPrefix(w, p) {
				return true
			}
		}
		for _, e := range k.exact {
			if w == e {
				return true
			}
		}
		for _, st := range k.stems {
			if strings.Contains(w, st) {
				return true
			}
		}
	}
	joined := strings.Join(words, " ")
	for _, ph := range k.phrases {
		if strings.Contains(joined, ph) {
			return true
		}
	}
	return false
}
