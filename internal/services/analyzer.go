package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

// Analyzer runs the full analysis pipeline for one request: extract,
// normalize, profile both sides, score, suggest, assemble. Requests
// are stateless beyond the read-only dictionaries, so any number may
// run in parallel; identical inputs are collapsed onto a single
// in-flight computation.
type Analyzer interface {
	Analyze(ctx context.Context, doc models.RawDocument, jobDescription string) (*models.MatchResult, error)
}

type analyzer struct {
	extractor   DocumentExtractor
	normalizer  Normalizer
	profiles    ProfileExtractor
	requirement RequirementExtractor
	scorer      Scorer
	feedback    FeedbackGenerator
	assembler   ResultAssembler
	cache       ResultCache
	group       singleflight.Group
	logger      *zap.Logger
}

func NewAnalyzer(
	extractor DocumentExtractor,
	normalizer Normalizer,
	profiles ProfileExtractor,
	requirement RequirementExtractor,
	scorer Scorer,
	feedback FeedbackGenerator,
	assembler ResultAssembler,
	cache ResultCache,
	logger *zap.Logger,
) Analyzer {
	return &analyzer{
		extractor:   extractor,
		normalizer:  normalizer,
		profiles:    profiles,
		requirement: requirement,
		scorer:      scorer,
		feedback:    feedback,
		assembler:   assembler,
		cache:       cache,
		logger:      logger,
	}
}

// Analyze implements Analyzer.
func (a *analyzer) Analyze(ctx context.Context, doc models.RawDocument, jobDescription string) (*models.MatchResult, error) {
	// Validation failures are cheap; reject before touching the cache.
	if !supportedMediaType(doc.MediaType) {
		return nil, apperrors.New(apperrors.KindUnsupportedFormat,
			"file must be a PDF or Word document")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, apperrors.New(apperrors.KindEmptyRequirement, "job description is empty")
	}

	key := CacheKey(doc.Content, jobDescription)

	if a.cache != nil {
		if cached, ok := a.cache.Get(ctx, key); ok {
			a.logger.Debug("analysis served from cache", zap.String("filename", doc.Filename))
			return cached, nil
		}
	}

	// Concurrent requests with identical inputs share one computation.
	value, err, shared := a.group.Do(key, func() (interface{}, error) {
		return a.runPipeline(ctx, doc, jobDescription, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		a.logger.Debug("analysis shared with in-flight computation", zap.String("filename", doc.Filename))
	}

	return value.(*models.MatchResult), nil
}

func (a *analyzer) runPipeline(ctx context.Context, doc models.RawDocument, jobDescription, key string) (*models.MatchResult, error) {
	resumeText, err := a.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := a.normalizer.Normalize(resumeText)
	profile := a.profiles.ExtractProfile(normalized)

	requirement, err := a.requirement.ExtractRequirement(jobDescription)
	if err != nil {
		return nil, err
	}

	scores, matched, missing, err := a.scorer.Score(profile, requirement)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	improvements, skillsNeeded := a.feedback.Suggest(ctx, FeedbackInput{
		Profile:     profile,
		Requirement: requirement,
		Missing:     missing,
		Scores:      scores,
		ResumeText:  resumeText,
	})

	result, err := a.assembler.Assemble(scores, matched, missing, improvements, skillsNeeded)
	if err != nil {
		return nil, err
	}

	a.logger.Info("analysis completed",
		zap.String("filename", doc.Filename),
		zap.Int("overall_match", result.OverallMatch),
		zap.Int("matched_keywords", len(result.MatchedKeywords)),
		zap.Int("missing_keywords", len(result.MissingKeywords)))

	if a.cache != nil {
		a.cache.Set(ctx, key, result)
	}

	return result, nil
}

func supportedMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypePDF, MediaTypeDOC, MediaTypeDOCX:
		return true
	}
	return false
}
