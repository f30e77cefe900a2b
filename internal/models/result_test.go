package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSorted(t *testing.T) {
	got := MergeSorted([]string{"python", "aws"}, []string{"docker", "python"})

	assert.Equal(t, []string{"aws", "docker", "python"}, got)
}

func TestMergeSortedNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, MergeSorted())
	assert.NotNil(t, MergeSorted(nil, nil))
}

func TestMatchResultJSONShape(t *testing.T) {
	result := MatchResult{
		OverallMatch:    80,
		TechnicalSkills: 50,
		Experience:      100,
		Education:       100,
		SoftSkills:      100,
		MatchedKeywords: []string{"python"},
		MissingKeywords: []string{"docker"},
		Improvements:    []string{"Add demonstrated experience with docker to your resume."},
		SkillsNeeded:    []string{"docker"},
	}

	payload, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	for _, key := range []string{
		"overallMatch", "technicalSkills", "experience", "education", "softSkills",
		"matchedKeywords", "missingKeywords", "improvements", "skillsNeeded",
	} {
		assert.Contains(t, decoded, key)
	}
}

func TestEmptySlicesMarshalAsArrays(t *testing.T) {
	result := MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Improvements:    []string{},
		SkillsNeeded:    []string{},
	}

	payload, err := json.Marshal(result)
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"matchedKeywords":[]`)
	assert.NotContains(t, string(payload), "null")
}

func TestJobRequirementAllSkills(t *testing.T) {
	req := JobRequirement{
		RequiredSkills:  []string{"docker", "python"},
		PreferredSkills: []string{"kubernetes", "python"},
	}

	assert.Equal(t, []string{"docker", "kubernetes", "python"}, req.AllSkills())
}

func TestEducationLevelString(t *testing.T) {
	assert.Equal(t, "bachelor", EducationBachelor.String())
	assert.Equal(t, "unknown", EducationUnknown.String())
	assert.Equal(t, "doctorate", EducationDoctorate.String())
}
