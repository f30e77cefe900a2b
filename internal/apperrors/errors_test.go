package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsChains(t *testing.T) {
	base := New(KindEmptyRequirement, "job description is empty")
	wrapped := fmt.Errorf("handling request: %w", base)

	assert.Equal(t, KindEmptyRequirement, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindEmptyRequirement))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pdf is corrupt")
	err := Wrap(KindExtractionFailure, "failed to extract text", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "extraction_failure")
	assert.Contains(t, err.Error(), "pdf is corrupt")
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindUnsupportedFormat, fiber.StatusBadRequest},
		{KindEmptyRequirement, fiber.StatusBadRequest},
		{KindExtractionFailure, fiber.StatusUnprocessableEntity},
		{KindNotFound, fiber.StatusNotFound},
		{KindExternalServiceFailure, fiber.StatusBadGateway},
		{KindInvalidResult, fiber.StatusInternalServerError},
		{KindInternal, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.kind), string(tt.kind))
	}
}

func TestUserFacing(t *testing.T) {
	assert.True(t, UserFacing(KindUnsupportedFormat))
	assert.True(t, UserFacing(KindEmptyRequirement))
	assert.True(t, UserFacing(KindExtractionFailure))
	assert.True(t, UserFacing(KindNotFound))
	assert.False(t, UserFacing(KindInvalidResult))
	assert.False(t, UserFacing(KindExternalServiceFailure))
	assert.False(t, UserFacing(KindInternal))
}
