package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyIsStable(t *testing.T) {
	resume := []byte("resume bytes")
	jd := "Python required"

	assert.Equal(t, CacheKey(resume, jd), CacheKey(resume, jd))
}

func TestCacheKeySeparatesInputs(t *testing.T) {
	resume := []byte("resume bytes")

	assert.NotEqual(t, CacheKey(resume, "Python required"), CacheKey(resume, "Go required"))
	assert.NotEqual(t, CacheKey(resume, "Python required"), CacheKey([]byte("other resume"), "Python required"))
}

func TestCacheKeyShape(t *testing.T) {
	key := CacheKey([]byte("resume"), "jd")

	assert.True(t, strings.HasPrefix(key, "analysis:"))
	// Two sha256 hex digests plus separators.
	assert.Len(t, key, len("analysis:")+64+1+64)
}
