package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"resume-reviewer/internal/config"
	"resume-reviewer/internal/models"
)

// scoreGapThreshold marks the category score below which the gap earns
// its own improvement line.
const scoreGapThreshold = 60

const (
	briefResumeWords   = 300
	lengthyResumeWords = 1000
	minQuantifiedFacts = 3
)

var quantifiedPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?%?\b`)

// FeedbackGenerator turns structured gap data into actionable
// improvement suggestions. Templated text is always produced; an
// external text-generation call may rewrite it into richer prose, but
// any failure there degrades to the template. Suggest never fails the
// request.
type FeedbackGenerator interface {
	Suggest(ctx context.Context, input FeedbackInput) (improvements, skillsNeeded []string)
}

type FeedbackInput struct {
	Profile     models.CandidateProfile
	Requirement *models.JobRequirement
	Missing     []string
	Scores      models.CategoryScores
	ResumeText  string
}

type feedbackGenerator struct {
	generator GeminiService
	guides    GuideStore
	pool      EnrichmentPool
	cfg       config.FeedbackConfig
	logger    *zap.Logger
}

// NewFeedbackGenerator builds the generator. Both the text generator
// and the guide store are optional: without them only templated text is
// produced.
func NewFeedbackGenerator(
	generator GeminiService,
	guides GuideStore,
	pool EnrichmentPool,
	cfg config.FeedbackConfig,
	logger *zap.Logger,
) FeedbackGenerator {
	return &feedbackGenerator{
		generator: generator,
		guides:    guides,
		pool:      pool,
		cfg:       cfg,
		logger:    logger,
	}
}

// Suggest implements FeedbackGenerator.
func (f *feedbackGenerator) Suggest(ctx context.Context, input FeedbackInput) ([]string, []string) {
	improvements := f.templatedImprovements(input)
	skillsNeeded := models.MergeSorted(input.Missing)

	if f.generator == nil || f.pool == nil || len(improvements) == 0 {
		return improvements, skillsNeeded
	}

	enriched, err := f.enrich(ctx, input, improvements)
	if err != nil {
		f.logger.Warn("feedback enrichment degraded to templated text", zap.Error(err))
		return improvements, skillsNeeded
	}

	return enriched, skillsNeeded
}

func (f *feedbackGenerator) templatedImprovements(input FeedbackInput) []string {
	improvements := []string{}

	for _, skill := range models.MergeSorted(input.Missing) {
		improvements = append(improvements,
			fmt.Sprintf("Add demonstrated experience with %s to your resume.", skill))
	}

	if input.Scores.Experience < scoreGapThreshold && input.Requirement.MinExperienceYears != models.ExperienceUnknown {
		improvements = append(improvements,
			fmt.Sprintf("Make your years of relevant experience explicit; this role asks for %d+ years.",
				input.Requirement.MinExperienceYears))
	}

	if input.Scores.Education < scoreGapThreshold && input.Requirement.MinEducation != models.EducationUnknown {
		improvements = append(improvements,
			fmt.Sprintf("List your highest completed degree; this role asks for a %s-level education.",
				strings.ReplaceAll(input.Requirement.MinEducation.String(), "_", " ")))
	}

	wordCount := len(strings.Fields(input.ResumeText))
	switch {
	case wordCount > 0 && wordCount < briefResumeWords:
		improvements = append(improvements,
			"Your resume seems brief. Consider adding more details about your experiences.")
	case wordCount > lengthyResumeWords:
		improvements = append(improvements,
			"Your resume is quite lengthy. Consider making it more concise.")
	}

	if len(quantifiedPattern.FindAllString(input.ResumeText, -1)) < minQuantifiedFacts {
		improvements = append(improvements,
			"Add more quantifiable achievements (numbers, percentages) to strengthen your impact.")
	}

	return improvements
}

// enrich rewrites the templated lines through the external generator,
// bounded by the configured timeout and executed on the enrichment pool
// so in-flight requests never pile up on the external service.
func (f *feedbackGenerator) enrich(ctx context.Context, input FeedbackInput, templated []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.EnrichTimeout)
	defer cancel()

	return f.pool.Submit(ctx, func(ctx context.Context) ([]string, error) {
		prompt := f.buildPrompt(ctx, input, templated)

		response, err := retryOnce(ctx, f.cfg.RetryBackoff, func() (string, error) {
			return f.generator.GenerateText(ctx, prompt, 0.4)
		})
		if err != nil {
			return nil, err
		}

		lines, err := parseImprovementLines(response)
		if err != nil {
			return nil, err
		}
		if len(lines) < len(input.Missing) {
			return nil, fmt.Errorf("enrichment dropped suggestions: got %d, want at least %d",
				len(lines), len(input.Missing))
		}
		return lines, nil
	})
}

func (f *feedbackGenerator) buildPrompt(ctx context.Context, input FeedbackInput, templated []string) string {
	var sb strings.Builder

	sb.WriteString("You are a resume coach. Rewrite the improvement suggestions below into specific, actionable advice for the candidate.\n\n")

	sb.WriteString("MISSING REQUIRED SKILLS:\n")
	sb.WriteString(strings.Join(input.Missing, ", "))
	sb.WriteString("\n\nCANDIDATE SKILLS:\n")
	sb.WriteString(strings.Join(input.Profile.Skills, ", "))
	sb.WriteString("\n\nSUGGESTIONS TO REWRITE:\n")
	for _, line := range templated {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if guidance := f.retrieveGuidance(ctx, input.Missing); guidance != "" {
		sb.WriteString("\nREFERENCE GUIDANCE:\n")
		sb.WriteString(guidance)
		sb.WriteString("\n")
	}

	sb.WriteString("\nKeep one suggestion per original line, in the same order. ")
	sb.WriteString("Each suggestion must stay under 30 words and name the skill or gap it addresses. ")
	sb.WriteString(`Return ONLY a JSON array of strings, no markdown, no explanation.`)

	return sb.String()
}

// retrieveGuidance pulls skill-guide snippets for the missing skills.
// Best effort: retrieval problems only cost the prompt its grounding.
func (f *feedbackGenerator) retrieveGuidance(ctx context.Context, missing []string) string {
	if f.guides == nil || len(missing) == 0 {
		return ""
	}

	embedding, err := f.generator.GenerateEmbedding(ctx, strings.Join(missing, ", "))
	if err != nil {
		f.logger.Debug("guide embedding failed", zap.Error(err))
		return ""
	}

	snippets, err := f.guides.SearchGuides(ctx, embedding, 3)
	if err != nil {
		f.logger.Debug("guide search failed", zap.Error(err))
		return ""
	}

	var parts []string
	for _, s := range snippets {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.Join(parts, "\n")
}

func parseImprovementLines(response string) ([]string, error) {
	cleaned := cleanJSON(response)

	var lines []string
	if err := json.Unmarshal([]byte(cleaned), &lines); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment response: %w", err)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("enrichment response contained no suggestions")
	}
	return out, nil
}

// cleanJSON strips markdown code fences the model may wrap its JSON in.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
