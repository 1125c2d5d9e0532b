// Package taxonomy holds the static categorized keyword lists used for
// resume/job matching, with a precompiled word-boundary pattern per keyword.
package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
)

// Category names. Extraction output preserves the declared keyword order of
// each category, so these lists are ordered slices, not sets.
const (
	Languages  = "languages"
	Frameworks = "frameworks"
	Tools      = "tools"
	SoftSkills = "soft_skills"
	Education  = "education"
	Experience = "experience"
)

// Categories lists every category in canonical order.
var Categories = []string{Languages, Frameworks, Tools, SoftSkills, Education, Experience}

var defaultKeywords = map[string][]string{
	Languages: {
		"python", "java", "javascript", "typescript", "c++", "c#", "go",
		"rust", "ruby", "php", "swift", "kotlin", "scala", "sql", "html",
		"css", "bash", "perl", "matlab",
	},
	Frameworks: {
		"react", "angular", "vue", "node.js", "express", "django", "flask",
		"fastapi", "spring", "rails", "laravel", ".net", "next.js",
		"svelte", "flutter", "react native", "bootstrap", "tailwind",
	},
	Tools: {
		"git", "docker", "kubernetes", "aws", "azure", "gcp", "jenkins",
		"terraform", "ansible", "linux", "postgresql", "mysql", "mongodb",
		"redis", "kafka", "elasticsearch", "graphql", "rest", "grpc",
		"jira", "excel", "tableau",
	},
	SoftSkills: {
		"communication", "leadership", "teamwork", "collaboration",
		"problem solving", "critical thinking", "time management",
		"adaptability", "creativity", "attention to detail", "mentoring",
		"agile", "scrum",
	},
	Education: {
		"bachelor", "master", "phd", "mba", "bs", "ms", "ba",
		"computer science", "bootcamp", "certification", "certified",
	},
	Experience: {
		"intern", "entry level", "junior", "mid level", "senior", "lead",
		"staff", "principal", "architect", "manager",
		"1 year", "2 years", "3 years", "4 years", "5 years", "6 years",
		"7 years", "8 years", "10 years", "15 years",
	},
}

// Taxonomy is an immutable compiled keyword taxonomy. Patterns are built
// once at construction so extraction never compiles regexes per call.
type Taxonomy struct {
	keywords map[string][]string
	patterns map[string][]*regexp.Regexp // parallel to keywords
}

// New compiles the default taxonomy. Keyword lists are fixed design
// constants, so a compile failure here is a programming error.
func New() *Taxonomy {
	t, err := fromLists(defaultKeywords)
	if err != nil {
		panic(err)
	}
	return t
}

// fromLists compiles one \b-wrapped pattern per keyword, lowercased and
// regex-escaped. Keywords are matched independently: a keyword that is a
// word-prefix of another ("react" / "react native") never shadows it, which
// a combined alternation would not guarantee.
func fromLists(lists map[string][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		keywords: make(map[string][]string, len(lists)),
		patterns: make(map[string][]*regexp.Regexp, len(lists)),
	}
	for category, kws := range lists {
		lowered := make([]string, 0, len(kws))
		patterns := make([]*regexp.Regexp, 0, len(kws))
		for _, kw := range kws {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compile keyword %q in category %q: %w", kw, category, err)
			}
			lowered = append(lowered, kw)
			patterns = append(patterns, re)
		}
		t.keywords[category] = lowered
		t.patterns[category] = patterns
	}
	return t, nil
}

// Keywords returns the declared keyword list for a category.
func (t *Taxonomy) Keywords(category string) []string {
	return t.keywords[category]
}

// Match returns the category keywords present in normalized text as
// whole words, in the category's declared order, without duplicates.
func (t *Taxonomy) Match(category, normalized string) []string {
	patterns, ok := t.patterns[category]
	if !ok || normalized == "" {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for i, kw := range t.keywords[category] {
		if seen[kw] || !patterns[i].MatchString(normalized) {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
