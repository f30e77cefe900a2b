package handlers

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/logger"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
	"resume-reviewer/internal/services"
)

// SessionHeader identifies the caller's history session. The transport
// layer owns no authentication; the header is an opaque grouping key.
const SessionHeader = "X-Session-ID"

const maxStoredJobDescription = 2000

type AnalyzeHandler struct {
	analyzer     services.Analyzer
	analysisRepo repositories.AnalysisRepository
	maxFileSize  int64
	logger       *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.Analyzer,
	analysisRepo repositories.AnalysisRepository,
	maxFileSize int64,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		maxFileSize:  maxFileSize,
		logger:       log,
	}
}

// HandleAnalyze handles POST /analyze: multipart upload with a "resume"
// file and a "job_description" field.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "missing resume file",
			Kind:  string(apperrors.KindUnsupportedFormat),
			Code:  fiber.StatusBadRequest,
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "resume file too large",
			Kind:  string(apperrors.KindExtractionFailure),
			Code:  fiber.StatusBadRequest,
		})
	}

	jobDescription := c.FormValue("job_description")

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Wrap(apperrors.KindExtractionFailure, "failed to open uploaded file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return apperrors.Wrap(apperrors.KindExtractionFailure, "failed to read uploaded file", err)
	}

	doc := models.RawDocument{
		Content:   content,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Filename:  fileHeader.Filename,
	}

	h.logger.Info("analysis request received",
		zap.String("filename", doc.Filename),
		zap.String("media_type", doc.MediaType),
		zap.Int("size", len(content)))

	result, err := h.analyzer.Analyze(c.UserContext(), doc, jobDescription)
	if err != nil {
		return err
	}

	h.recordHistory(c, doc.Filename, jobDescription, result)

	return c.JSON(result)
}

// recordHistory appends the analysis to the session history. Best
// effort: a storage problem must not fail a completed analysis.
func (h *AnalyzeHandler) recordHistory(c *fiber.Ctx, filename, jobDescription string, result *models.MatchResult) {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
		c.Set(SessionHeader, sessionID)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		h.logger.Warn("failed to marshal result for history", zap.Error(err))
		return
	}

	entry := &models.Analysis{
		ID:             uuid.New(),
		SessionID:      sessionID,
		Filename:       filename,
		JobDescription: logger.TruncateForLog(jobDescription, maxStoredJobDescription),
		ResultJSON:     string(payload),
	}

	if err := h.analysisRepo.Create(entry); err != nil {
		h.logger.Warn("failed to record analysis history", zap.Error(err))
	}
}
