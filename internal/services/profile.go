package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

// ProfileExtractor builds a CandidateProfile from normalized resume
// text. Extraction never fails on thin resumes: an empty profile is
// valid and simply scores low.
type ProfileExtractor interface {
	ExtractProfile(text models.NormalizedText) models.CandidateProfile
}

// RequirementExtractor builds a JobRequirement from raw job-description
// text. A blank description is the one rejected input.
type RequirementExtractor interface {
	ExtractRequirement(jobDescription string) (*models.JobRequirement, error)
}

type signalExtractor struct {
	dict       *Dictionaries
	normalizer Normalizer
}

func NewProfileExtractor(dict *Dictionaries, n Normalizer) ProfileExtractor {
	return &signalExtractor{dict: dict, normalizer: n}
}

func NewRequirementExtractor(dict *Dictionaries, n Normalizer) RequirementExtractor {
	return &signalExtractor{dict: dict, normalizer: n}
}

// ExtractProfile implements ProfileExtractor.
func (s *signalExtractor) ExtractProfile(text models.NormalizedText) models.CandidateProfile {
	return models.CandidateProfile{
		Skills:          s.detectSkills(text.Tokens),
		ExperienceYears: s.detectExperienceYears(text.Sentences),
		Education:       s.detectEducation(text.Sentences),
		SoftSkills:      s.detectSoftSkills(text.Sentences),
	}
}

// ExtractRequirement implements RequirementExtractor.
func (s *signalExtractor) ExtractRequirement(jobDescription string) (*models.JobRequirement, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, apperrors.New(apperrors.KindEmptyRequirement, "job description is empty")
	}

	text := s.normalizer.Normalize(jobDescription)

	required := make(map[string]struct{})
	preferred := make(map[string]struct{})

	// Required vs preferred is decided sentence by sentence: a skill
	// mentioned in a sentence carrying a preferred cue goes to the
	// preferred bucket, everything else defaults to required.
	for _, sentence := range text.Sentences {
		tokens := s.normalizer.Normalize(sentence).Tokens
		bucket := required
		if s.hasPreferredCue(sentence) && !s.hasRequiredCue(sentence) {
			bucket = preferred
		}
		for _, skill := range s.detectSkills(tokens) {
			bucket[skill] = struct{}{}
		}
	}

	// A skill cued both ways is a hard requirement.
	for skill := range required {
		delete(preferred, skill)
	}

	return &models.JobRequirement{
		RequiredSkills:     setToSorted(required),
		PreferredSkills:    setToSorted(preferred),
		MinExperienceYears: s.detectExperienceYears(text.Sentences),
		MinEducation:       s.detectEducation(text.Sentences),
		SoftSkills:         s.detectSoftSkills(text.Sentences),
	}, nil
}

// detectSkills scans token n-grams (longest first, up to the longest
// dictionary term) against the canonical skill dictionary. Matched
// spans are consumed so "machine learning" does not also count as a
// hit on a shorter gram.
func (s *signalExtractor) detectSkills(tokens []string) []string {
	found := make(map[string]struct{})
	maxGram := s.dict.MaxGram()

	for i := 0; i < len(tokens); {
		matched := 0
		for n := maxGram; n >= 1; n-- {
			if i+n > len(tokens) {
				continue
			}
			term := strings.Join(tokens[i:i+n], " ")
			if canonical, ok := s.dict.CanonicalSkill(term); ok {
				found[canonical] = struct{}{}
				matched = n
				break
			}
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}

	return setToSorted(found)
}

// detectSoftSkills combines dictionary matches with a light heuristic:
// an unknown capitalized multi-word span in a sentence that also
// mentions a known skill is taken as a soft-skill signal.
func (s *signalExtractor) detectSoftSkills(sentences []string) []string {
	found := make(map[string]struct{})

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for term, canonical := range s.dict.softSkills {
			if containsTerm(lower, term) {
				found[canonical] = struct{}{}
			}
		}

		for _, span := range capitalizedSpans(sentence) {
			spanLower := strings.ToLower(span)
			if _, known := s.dict.CanonicalSkill(spanLower); known {
				continue
			}
			if s.sentenceHasSkillAnchor(lower) {
				found[spanLower] = struct{}{}
			}
		}
	}

	return setToSorted(found)
}

func (s *signalExtractor) sentenceHasSkillAnchor(lowerSentence string) bool {
	for _, skill := range s.detectSkills(Tokenize(lowerSentence)) {
		if skill != "" {
			return true
		}
	}
	return false
}

// capitalizedSpans returns runs of two or more capitalized words,
// excluding a run that opens the sentence (ordinary sentence case).
func capitalizedSpans(sentence string) []string {
	words := strings.Fields(sentence)
	var spans []string
	var current []string

	flush := func() {
		if len(current) >= 2 {
			spans = append(spans, strings.Join(current, " "))
		}
		current = nil
	}

	for i, word := range words {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if i > 0 && len(trimmed) > 1 && unicode.IsUpper([]rune(trimmed)[0]) && !isAllUpper(trimmed) {
			current = append(current, trimmed)
			continue
		}
		flush()
	}
	flush()

	return spans
}

func isAllUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

var yearsPattern = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// detectExperienceYears scans sentences for "<n> (+) years" patterns
// near an experience mention and returns the maximum, or
// ExperienceUnknown when nothing matches.
func (s *signalExtractor) detectExperienceYears(sentences []string) int {
	years := models.ExperienceUnknown

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		if !strings.Contains(lower, "experience") && !strings.Contains(lower, "exp.") {
			continue
		}
		for _, match := range yearsPattern.FindAllStringSubmatch(lower, -1) {
			if v, err := strconv.Atoi(match[1]); err == nil && v > years {
				years = v
			}
		}
	}

	return years
}

// detectEducation maps degree keywords to the education enum, keeping
// the highest-ranked hit.
func (s *signalExtractor) detectEducation(sentences []string) models.EducationLevel {
	level := models.EducationUnknown

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, term := range s.dict.educationTerms {
			if term.level > level && containsTerm(lower, term.term) {
				level = term.level
			}
		}
	}

	return level
}

func (s *signalExtractor) hasRequiredCue(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, cue := range s.dict.requiredCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func (s *signalExtractor) hasPreferredCue(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, cue := range s.dict.preferredCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// containsTerm reports a substring match bounded by non-word runes, so
// "master" does not fire inside "mastermind".
func containsTerm(s, term string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)

		beforeOK := idx == 0 || !isTermRune(rune(s[idx-1]))
		afterOK := end >= len(s) || !isTermRune(rune(s[end]))
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return models.MergeSorted(out)
}
