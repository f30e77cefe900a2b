package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

func newTestExtractor() *signalExtractor {
	dict := LoadDictionaries()
	return &signalExtractor{dict: dict, normalizer: NewNormalizer(dict)}
}

func TestExtractProfileBasics(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("5 years of Python and AWS experience, Bachelor's degree")
	profile := e.ExtractProfile(text)

	assert.Equal(t, []string{"aws", "python"}, profile.Skills)
	assert.Equal(t, 5, profile.ExperienceYears)
	assert.Equal(t, models.EducationBachelor, profile.Education)
}

func TestExtractProfileResolvesSynonyms(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("Shipped k8s operators and golang services with JS frontends.")
	profile := e.ExtractProfile(text)

	assert.Contains(t, profile.Skills, "kubernetes")
	assert.Contains(t, profile.Skills, "go")
	assert.Contains(t, profile.Skills, "javascript")
}

func TestExtractProfileMatchesMultiTokenSkills(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("Built machine learning pipelines using scikit learn.")
	profile := e.ExtractProfile(text)

	assert.Contains(t, profile.Skills, "machine learning")
	assert.Contains(t, profile.Skills, "scikit-learn")
}

func TestDetectExperienceYearsMaxWins(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("Over 3 years of experience in support. Then 7+ years experience in engineering.")
	profile := e.ExtractProfile(text)

	assert.Equal(t, 7, profile.ExperienceYears)
}

func TestDetectExperienceYearsNeedsExperienceMention(t *testing.T) {
	e := newTestExtractor()

	// Ages and durations outside an experience context must not count.
	text := e.normalizer.Normalize("I am 25 years old. Lived abroad for 2 years.")
	profile := e.ExtractProfile(text)

	assert.Equal(t, models.ExperienceUnknown, profile.ExperienceYears)
}

func TestDetectEducationHighestWins(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("Bachelor of Science in CS. Master of Science in Data Engineering.")
	profile := e.ExtractProfile(text)

	assert.Equal(t, models.EducationMaster, profile.Education)
}

func TestDetectEducationBoundedMatch(t *testing.T) {
	e := newTestExtractor()

	// "master" inside another word is not a degree.
	text := e.normalizer.Normalize("Worked on the Mastermind project.")
	profile := e.ExtractProfile(text)

	assert.Equal(t, models.EducationUnknown, profile.Education)
}

func TestExtractProfileEmptyResumeIsValid(t *testing.T) {
	e := newTestExtractor()

	profile := e.ExtractProfile(e.normalizer.Normalize(""))

	assert.Empty(t, profile.Skills)
	assert.NotNil(t, profile.Skills)
	assert.Equal(t, models.ExperienceUnknown, profile.ExperienceYears)
	assert.Equal(t, models.EducationUnknown, profile.Education)
	assert.Empty(t, profile.SoftSkills)
}

func TestDetectSoftSkills(t *testing.T) {
	e := newTestExtractor()

	text := e.normalizer.Normalize("Strong communication skills and a team player attitude working with SQL.")
	profile := e.ExtractProfile(text)

	assert.Contains(t, profile.SoftSkills, "communication")
	assert.Contains(t, profile.SoftSkills, "teamwork")
}

func TestExtractRequirementRejectsBlankDescription(t *testing.T) {
	e := newTestExtractor()

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := e.ExtractRequirement(input)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindEmptyRequirement))
	}
}

func TestExtractRequirementSplitsCues(t *testing.T) {
	e := newTestExtractor()

	req, err := e.ExtractRequirement("Python and SQL are required. Experience with Kubernetes is a plus.")
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql"}, req.RequiredSkills)
	assert.Equal(t, []string{"kubernetes"}, req.PreferredSkills)
}

func TestExtractRequirementRequiredWinsOverPreferred(t *testing.T) {
	e := newTestExtractor()

	req, err := e.ExtractRequirement("Kubernetes is required. Kubernetes knowledge is also a plus.")
	require.NoError(t, err)

	assert.Equal(t, []string{"kubernetes"}, req.RequiredSkills)
	assert.Empty(t, req.PreferredSkills)
}

func TestExtractRequirementDefaultsToRequired(t *testing.T) {
	e := newTestExtractor()

	req, err := e.ExtractRequirement("We use Docker and Terraform every day.")
	require.NoError(t, err)

	assert.Equal(t, []string{"docker", "terraform"}, req.RequiredSkills)
	assert.Empty(t, req.PreferredSkills)
}

func TestExtractRequirementSignals(t *testing.T) {
	e := newTestExtractor()

	req, err := e.ExtractRequirement("3+ years experience with Go required. Bachelor degree mandatory.")
	require.NoError(t, err)

	assert.Equal(t, 3, req.MinExperienceYears)
	assert.Equal(t, models.EducationBachelor, req.MinEducation)
	assert.Contains(t, req.RequiredSkills, "go")
}
