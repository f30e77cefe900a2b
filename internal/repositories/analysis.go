package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

// AnalysisRepository is the server-owned analysis history: append-only,
// scoped per session. There is deliberately no update path.
type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	ListBySession(sessionID string, limit int) ([]models.Analysis, error)
	Delete(sessionID string, id uuid.UUID) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// ListBySession implements AnalysisRepository.
func (r *analysisRepository) ListBySession(sessionID string, limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	return analyses, nil
}

// Delete implements AnalysisRepository. The session scope prevents one
// session from deleting another's history.
func (r *analysisRepository) Delete(sessionID string, id uuid.UUID) error {
	result := r.db.
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&models.Analysis{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete analysis: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "analysis not found")
	}

	return nil
}
