package match

import "github.com/EthanJ-prog/jobTracker/internal/taxonomy"

// SkillSet is the categorized result of scanning one text against the
// taxonomy. Each slice preserves the taxonomy's declared keyword order.
type SkillSet struct {
	Languages  []string
	Frameworks []string
	Tools      []string
	SoftSkills []string
	Education  []string
	Experience []string

	// Technical is dedup(Languages ∪ Frameworks ∪ Tools);
	// All additionally folds in the remaining categories.
	Technical []string
	All       []string
}

// Extractor scans free text against a compiled taxonomy.
type Extractor struct {
	tax *taxonomy.Taxonomy
}

// NewExtractor returns an Extractor over the given taxonomy.
func NewExtractor(t *taxonomy.Taxonomy) *Extractor {
	return &Extractor{tax: t}
}

// Extract returns the category keywords found in text as whole words.
// Text is normalized first, so matching is case-insensitive.
func (e *Extractor) Extract(text, category string) []string {
	return e.tax.Match(category, Normalize(text))
}

// ExtractAll runs extraction for all six categories over one normalization
// pass and derives the combined Technical and All sets.
func (e *Extractor) ExtractAll(text string) SkillSet {
	normalized := Normalize(text)
	s := SkillSet{
		Languages:  e.tax.Match(taxonomy.Languages, normalized),
		Frameworks: e.tax.Match(taxonomy.Frameworks, normalized),
		Tools:      e.tax.Match(taxonomy.Tools, normalized),
		SoftSkills: e.tax.Match(taxonomy.SoftSkills, normalized),
		Education:  e.tax.Match(taxonomy.Education, normalized),
		Experience: e.tax.Match(taxonomy.Experience, normalized),
	}
	s.Technical = dedup(s.Languages, s.Frameworks, s.Tools)
	s.All = dedup(s.Technical, s.SoftSkills, s.Education, s.Experience)
	return s
}

// dedup concatenates slices keeping first occurrence order.
func dedup(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, kw := range list {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}
