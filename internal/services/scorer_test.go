package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/config"
	"resume-reviewer/internal/models"
)

func defaultWeights() config.ScoringConfig {
	return config.ScoringConfig{
		TechnicalWeight:  0.40,
		ExperienceWeight: 0.25,
		EducationWeight:  0.15,
		SoftSkillsWeight: 0.20,
	}
}

func TestScoreEndToEndScenario(t *testing.T) {
	e := newTestExtractor()
	s := NewScorer(defaultWeights())

	profile := e.ExtractProfile(e.normalizer.Normalize(
		"5 years of Python and AWS experience, Bachelor's degree"))
	req, err := e.ExtractRequirement(
		"Python, Docker, 3+ years experience, Bachelor's degree")
	require.NoError(t, err)

	scores, matched, missing, err := s.Score(profile, req)
	require.NoError(t, err)

	assert.Contains(t, matched, "python")
	assert.Contains(t, missing, "docker")

	// 1 of 2 requested skills matched.
	assert.Equal(t, 50, scores.TechnicalSkills)
	// 5 years against 3 required caps at 100.
	assert.Equal(t, 100, scores.Experience)
	// Bachelor meets Bachelor.
	assert.Equal(t, 100, scores.Education)
	// No soft skills requested.
	assert.Equal(t, 100, scores.SoftSkills)
	assert.Equal(t, 80, scores.Overall)

	// Matched keywords come from the candidate, missing from the hard
	// requirements.
	for _, skill := range matched {
		assert.Contains(t, profile.Skills, skill)
	}
	for _, skill := range missing {
		assert.Contains(t, req.RequiredSkills, skill)
		assert.NotContains(t, profile.Skills, skill)
	}
}

func TestScoreEmptyRequirementSkills(t *testing.T) {
	s := NewScorer(defaultWeights())

	profile := models.CandidateProfile{
		Skills:          []string{"python"},
		ExperienceYears: models.ExperienceUnknown,
		Education:       models.EducationUnknown,
	}
	req := &models.JobRequirement{
		MinExperienceYears: models.ExperienceUnknown,
		MinEducation:       models.EducationUnknown,
	}

	scores, matched, missing, err := s.Score(profile, req)
	require.NoError(t, err)

	assert.Equal(t, 100, scores.TechnicalSkills, "nothing asked, nothing missed")
	assert.Empty(t, matched)
	assert.Empty(t, missing)
	assert.NotNil(t, matched)
	assert.NotNil(t, missing)
}

func TestScorePreferredMissesAreNotReported(t *testing.T) {
	s := NewScorer(defaultWeights())

	profile := models.CandidateProfile{
		Skills:          []string{"python"},
		ExperienceYears: models.ExperienceUnknown,
		Education:       models.EducationUnknown,
	}
	req := &models.JobRequirement{
		RequiredSkills:     []string{"python"},
		PreferredSkills:    []string{"kubernetes"},
		MinExperienceYears: models.ExperienceUnknown,
		MinEducation:       models.EducationUnknown,
	}

	scores, matched, missing, err := s.Score(profile, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"python"}, matched)
	assert.Empty(t, missing, "preferred-only gaps are not missing keywords")
	// But the preferred miss still lowers the technical share: 1 of 2.
	assert.Equal(t, 50, scores.TechnicalSkills)
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate int
		required  int
		want      int
	}{
		{"unknown candidate is neutral", models.ExperienceUnknown, 5, 50},
		{"unknown requirement is neutral", 5, models.ExperienceUnknown, 50},
		{"meets requirement", 3, 3, 100},
		{"exceeds requirement caps", 10, 3, 100},
		{"partial", 2, 4, 50},
		{"zero required treats as one", 2, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, experienceScore(tt.candidate, tt.required))
		})
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate models.EducationLevel
		required  models.EducationLevel
		want      int
	}{
		{"unknown candidate is neutral", models.EducationUnknown, models.EducationBachelor, 50},
		{"unknown requirement is neutral", models.EducationBachelor, models.EducationUnknown, 50},
		{"meets", models.EducationBachelor, models.EducationBachelor, 100},
		{"exceeds", models.EducationDoctorate, models.EducationBachelor, 100},
		{"one step below", models.EducationBachelor, models.EducationMaster, 80},
		{"two steps below", models.EducationHighSchool, models.EducationBachelor, 60},
		{"floor at zero", models.EducationNone, models.EducationDoctorate, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, educationScore(tt.candidate, tt.required))
		})
	}
}

func TestSoftSkillScore(t *testing.T) {
	assert.Equal(t, 100, softSkillScore(nil, nil))
	assert.Equal(t, 50, softSkillScore([]string{"communication"}, []string{"communication", "leadership"}))
	assert.Equal(t, 0, softSkillScore([]string{"creativity"}, []string{"leadership"}))
}

func TestOverallUsesConfiguredWeights(t *testing.T) {
	s := NewScorer(config.ScoringConfig{
		TechnicalWeight:  1.0,
		ExperienceWeight: 0,
		EducationWeight:  0,
		SoftSkillsWeight: 0,
	})

	profile := models.CandidateProfile{
		Skills:          []string{"python"},
		ExperienceYears: models.ExperienceUnknown,
		Education:       models.EducationUnknown,
	}
	req := &models.JobRequirement{
		RequiredSkills:     []string{"python", "docker"},
		MinExperienceYears: models.ExperienceUnknown,
		MinEducation:       models.EducationUnknown,
	}

	scores, _, _, err := s.Score(profile, req)
	require.NoError(t, err)

	assert.Equal(t, scores.TechnicalSkills, scores.Overall)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-12.3))
	assert.Equal(t, 100, clampScore(166.7))
	assert.Equal(t, 67, clampScore(66.7))
}
