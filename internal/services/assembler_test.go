package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

func validScores() models.CategoryScores {
	return models.CategoryScores{
		Overall:         80,
		TechnicalSkills: 50,
		Experience:      100,
		Education:       100,
		SoftSkills:      100,
	}
}

func TestAssembleBuildsCompleteResult(t *testing.T) {
	a := NewResultAssembler()

	result, err := a.Assemble(validScores(),
		[]string{"python"},
		[]string{"docker"},
		[]string{"Add demonstrated experience with docker to your resume."},
		[]string{"docker"})
	require.NoError(t, err)

	assert.Equal(t, 80, result.OverallMatch)
	assert.Equal(t, 50, result.TechnicalSkills)
	assert.Equal(t, []string{"python"}, result.MatchedKeywords)
	assert.Equal(t, []string{"docker"}, result.MissingKeywords)
	assert.Equal(t, []string{"docker"}, result.SkillsNeeded)
}

func TestAssembleNilSlicesBecomeEmptyArrays(t *testing.T) {
	a := NewResultAssembler()

	result, err := a.Assemble(validScores(), nil, nil, nil, nil)
	require.NoError(t, err)

	assert.NotNil(t, result.MatchedKeywords)
	assert.NotNil(t, result.MissingKeywords)
	assert.NotNil(t, result.Improvements)
	assert.NotNil(t, result.SkillsNeeded)
	assert.Empty(t, result.MatchedKeywords)
}

func TestAssembleRejectsOutOfRangeScores(t *testing.T) {
	a := NewResultAssembler()

	scores := validScores()
	scores.Experience = 150

	_, err := a.Assemble(scores, nil, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidResult))

	scores = validScores()
	scores.Overall = -1

	_, err = a.Assemble(scores, nil, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidResult))
}

func TestAssembleRejectsUnsortedKeywordSets(t *testing.T) {
	a := NewResultAssembler()

	_, err := a.Assemble(validScores(), []string{"python", "aws"}, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidResult))
}

func TestAssembleRejectsDuplicateKeywords(t *testing.T) {
	a := NewResultAssembler()

	_, err := a.Assemble(validScores(), nil, []string{"docker", "docker"}, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidResult))
}

func TestAssembleImprovementsNeedNoOrdering(t *testing.T) {
	a := NewResultAssembler()

	// Improvements are prose in presentation order, not an ordered set.
	_, err := a.Assemble(validScores(), nil, nil, []string{"z first", "a second"}, nil)
	assert.NoError(t, err)
}
