package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

const historyPageSize = 50

type HistoryHandler struct {
	analysisRepo repositories.AnalysisRepository
	logger       *zap.Logger
}

func NewHistoryHandler(analysisRepo repositories.AnalysisRepository, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{analysisRepo: analysisRepo, logger: log}
}

// HandleList handles GET /history: the session's analyses, newest
// first.
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		return c.JSON(fiber.Map{"analyses": []models.HistoryEntryResponse{}})
	}

	analyses, err := h.analysisRepo.ListBySession(sessionID, historyPageSize)
	if err != nil {
		return err
	}

	entries := make([]models.HistoryEntryResponse, 0, len(analyses))
	for _, a := range analyses {
		var result models.MatchResult
		if err := json.Unmarshal([]byte(a.ResultJSON), &result); err != nil {
			h.logger.Warn("skipping history entry with corrupt result",
				zap.String("id", a.ID.String()), zap.Error(err))
			continue
		}

		entries = append(entries, models.HistoryEntryResponse{
			ID:        a.ID.String(),
			Filename:  a.Filename,
			JobTitle:  a.JobDescription,
			Result:    result,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{"analyses": entries})
}

// HandleDelete handles DELETE /history/:id.
func (h *HistoryHandler) HandleDelete(c *fiber.Ctx) error {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		return apperrors.New(apperrors.KindNotFound, "analysis not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid analysis ID format",
			Kind:  string(apperrors.KindNotFound),
			Code:  fiber.StatusBadRequest,
		})
	}

	if err := h.analysisRepo.Delete(sessionID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
