package services

import (
	"fmt"
	"math"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/config"
	"resume-reviewer/internal/models"
)

// neutralScore is used when a category cannot be compared because one
// side is unknown.
const neutralScore = 50

// educationStepPenalty is subtracted per ordinal step the candidate
// falls below the required education level.
const educationStepPenalty = 20

// Scorer compares a candidate profile against a job requirement. Pure
// function over the two inputs.
type Scorer interface {
	Score(profile models.CandidateProfile, requirement *models.JobRequirement) (models.CategoryScores, []string, []string, error)
}

type scorer struct {
	weights config.ScoringConfig
}

func NewScorer(weights config.ScoringConfig) Scorer {
	return &scorer{weights: weights}
}

// Score implements Scorer. Returns the five category scores plus the
// matched and missing keyword lists, both sorted for determinism.
func (s *scorer) Score(profile models.CandidateProfile, requirement *models.JobRequirement) (models.CategoryScores, []string, []string, error) {
	owned := make(map[string]struct{}, len(profile.Skills))
	for _, skill := range profile.Skills {
		owned[skill] = struct{}{}
	}

	wanted := requirement.AllSkills()

	matched := []string{}
	for _, skill := range wanted {
		if _, ok := owned[skill]; ok {
			matched = append(matched, skill)
		}
	}

	// Preferred-only misses are not reported: only hard requirements
	// count as gaps.
	missing := []string{}
	for _, skill := range requirement.RequiredSkills {
		if _, ok := owned[skill]; !ok {
			missing = append(missing, skill)
		}
	}

	scores := models.CategoryScores{
		TechnicalSkills: technicalScore(len(matched), len(wanted)),
		Experience:      experienceScore(profile.ExperienceYears, requirement.MinExperienceYears),
		Education:       educationScore(profile.Education, requirement.MinEducation),
		SoftSkills:      softSkillScore(profile.SoftSkills, requirement.SoftSkills),
	}

	scores.Overall = clampScore(
		s.weights.TechnicalWeight*float64(scores.TechnicalSkills) +
			s.weights.ExperienceWeight*float64(scores.Experience) +
			s.weights.EducationWeight*float64(scores.Education) +
			s.weights.SoftSkillsWeight*float64(scores.SoftSkills))

	// Every score being an integer in [0,100] is a hard invariant.
	for _, v := range []int{scores.Overall, scores.TechnicalSkills, scores.Experience, scores.Education, scores.SoftSkills} {
		if v < 0 || v > 100 {
			return models.CategoryScores{}, nil, nil,
				apperrors.New(apperrors.KindInvalidResult, fmt.Sprintf("category score %d out of range", v))
		}
	}

	return scores, models.MergeSorted(matched), models.MergeSorted(missing), nil
}

// technicalScore is the matched share of all requested skills. An empty
// requirement set scores 100: nothing asked, nothing missed.
func technicalScore(matched, wanted int) int {
	if wanted == 0 {
		return 100
	}
	return clampScore(100 * float64(matched) / float64(wanted))
}

func experienceScore(candidateYears, requiredYears int) int {
	if candidateYears == models.ExperienceUnknown || requiredYears == models.ExperienceUnknown {
		return neutralScore
	}
	divisor := requiredYears
	if divisor < 1 {
		divisor = 1
	}
	return clampScore(100 * float64(candidateYears) / float64(divisor))
}

func educationScore(candidate, required models.EducationLevel) int {
	if candidate == models.EducationUnknown || required == models.EducationUnknown {
		return neutralScore
	}
	if candidate >= required {
		return 100
	}
	return clampScore(float64(100 - educationStepPenalty*int(required-candidate)))
}

func softSkillScore(candidate, required []string) int {
	if len(required) == 0 {
		return 100
	}
	owned := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		owned[s] = struct{}{}
	}
	overlap := 0
	for _, s := range required {
		if _, ok := owned[s]; ok {
			overlap++
		}
	}
	return clampScore(100 * float64(overlap) / float64(len(required)))
}

func clampScore(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
