package models

import "sort"

// MatchResult is the sole externally visible artifact of an analysis.
// Every field is always present; scores are integers in [0,100].
type MatchResult struct {
	OverallMatch    int      `json:"overallMatch" validate:"min=0,max=100"`
	TechnicalSkills int      `json:"technicalSkills" validate:"min=0,max=100"`
	Experience      int      `json:"experience" validate:"min=0,max=100"`
	Education       int      `json:"education" validate:"min=0,max=100"`
	SoftSkills      int      `json:"softSkills" validate:"min=0,max=100"`
	MatchedKeywords []string `json:"matchedKeywords" validate:"required"`
	MissingKeywords []string `json:"missingKeywords" validate:"required"`
	Improvements    []string `json:"improvements" validate:"required"`
	SkillsNeeded    []string `json:"skillsNeeded" validate:"required"`
}

// CategoryScores groups the scorer's five category outputs before the
// result is assembled.
type CategoryScores struct {
	Overall         int
	TechnicalSkills int
	Experience      int
	Education       int
	SoftSkills      int
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  int    `json:"code"`
}

type HistoryEntryResponse struct {
	ID        string      `json:"id"`
	Filename  string      `json:"filename"`
	JobTitle  string      `json:"job_title"`
	Result    MatchResult `json:"result"`
	CreatedAt string      `json:"created_at"`
}

// MergeSorted merges string slices into one sorted, deduplicated slice.
// Never returns nil so JSON output stays an array.
func MergeSorted(slices ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, s := range slices {
		for _, v := range s {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}
	sort.Strings(merged)
	return merged
}
