package services

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

// ResultAssembler merges scores, keyword sets and improvements into the
// final MatchResult. It performs no computation: it is the contract
// check at the boundary, and nothing that fails it may cross to the
// transport layer.
type ResultAssembler interface {
	Assemble(scores models.CategoryScores, matched, missing, improvements, skillsNeeded []string) (*models.MatchResult, error)
}

type resultAssembler struct {
	validate *validator.Validate
}

func NewResultAssembler() ResultAssembler {
	return &resultAssembler{validate: validator.New()}
}

// Assemble implements ResultAssembler.
func (a *resultAssembler) Assemble(scores models.CategoryScores, matched, missing, improvements, skillsNeeded []string) (*models.MatchResult, error) {
	result := &models.MatchResult{
		OverallMatch:    scores.Overall,
		TechnicalSkills: scores.TechnicalSkills,
		Experience:      scores.Experience,
		Education:       scores.Education,
		SoftSkills:      scores.SoftSkills,
		MatchedKeywords: emptyIfNil(matched),
		MissingKeywords: emptyIfNil(missing),
		Improvements:    emptyIfNil(improvements),
		SkillsNeeded:    emptyIfNil(skillsNeeded),
	}

	if err := a.validate.Struct(result); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidResult, "assembled result violates contract", err)
	}

	for name, set := range map[string][]string{
		"matchedKeywords": result.MatchedKeywords,
		"missingKeywords": result.MissingKeywords,
		"skillsNeeded":    result.SkillsNeeded,
	} {
		if err := checkSortedUnique(set); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidResult, fmt.Sprintf("%s is not an ordered set", name), err)
		}
	}

	return result, nil
}

func checkSortedUnique(values []string) error {
	if !sort.StringsAreSorted(values) {
		return fmt.Errorf("values are not sorted")
	}
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			return fmt.Errorf("duplicate value %q", values[i])
		}
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
