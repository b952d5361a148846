package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestLimiterZeroDisables(t *testing.T) {
	limiter := NewLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
}

func TestLimiterWindowResets(t *testing.T) {
	limiter := NewLimiter(1, 20*time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
}
