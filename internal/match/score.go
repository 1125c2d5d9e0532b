package match

import (
	"math"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

// Axis weights. Experience and education dominate on purpose: for entry and
// mid-level postings they separate candidates far more than tool overlap.
const (
	weightTechnical  = 0.10
	weightSoftSkills = 0.20
	weightExperience = 0.40
	weightEducation  = 0.30
)

// Result is the outcome of scoring one resume against one job.
type Result struct {
	Score         int
	Breakdown     model.ScoreBreakdown
	MatchedSkills []string
	MissingSkills []string
}

// Scorer computes weighted keyword-overlap scores.
type Scorer struct {
	ex *Extractor
}

// NewScorer returns a Scorer backed by the given extractor.
func NewScorer(ex *Extractor) *Scorer {
	return &Scorer{ex: ex}
}

// Score extracts skills from the resume and from jobTitle + jobDescription,
// scores the four axes and combines them into an integer in [0,100].
//
// An axis with zero job-side keywords scores 100: there is nothing to fail.
// A job with an empty description therefore scores 100 overall — callers
// must treat that as uninformative, not as a strong match.
func (s *Scorer) Score(resumeText, jobDescription, jobTitle string) Result {
	resume := s.ex.ExtractAll(resumeText)
	job := s.ex.ExtractAll(jobTitle + " " + jobDescription)

	technical, matchedTech, missingTech := scoreAxis(job.Technical, resume.Technical)
	soft, matchedSoft, missingSoft := scoreAxis(job.SoftSkills, resume.SoftSkills)
	experience, _, _ := scoreAxis(job.Experience, resume.Experience)
	education, _, _ := scoreAxis(job.Education, resume.Education)

	final := technical*weightTechnical +
		soft*weightSoftSkills +
		experience*weightExperience +
		education*weightEducation

	return Result{
		Score: int(math.Round(final)),
		Breakdown: model.ScoreBreakdown{
			Technical:  int(math.Round(technical)),
			SoftSkills: int(math.Round(soft)),
			Experience: int(math.Round(experience)),
			Education:  int(math.Round(education)),
		},
		MatchedSkills: dedup(matchedTech, matchedSoft),
		MissingSkills: dedup(missingTech, missingSoft),
	}
}

// scoreAxis splits the job-side keywords of one axis into matched and
// missing against the resume side and returns matched/total as a 0–100
// percentage. An empty job side scores 100.
func scoreAxis(jobSkills, resumeSkills []string) (score float64, matched, missing []string) {
	if len(jobSkills) == 0 {
		return 100, nil, nil
	}
	have := make(map[string]bool, len(resumeSkills))
	for _, kw := range resumeSkills {
		have[kw] = true
	}
	for _, kw := range jobSkills {
		if have[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return float64(len(matched)) / float64(len(jobSkills)) * 100, matched, missing
}
