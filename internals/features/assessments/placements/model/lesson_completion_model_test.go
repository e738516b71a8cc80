package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to CompletionStatus }{
		{CompletionNotStarted, CompletionInProgress},
		{CompletionInProgress, CompletionInProgress}, // draft re-save
		{CompletionInProgress, CompletionSubmitted},
		{CompletionSubmitted, CompletionMarked},
		{CompletionSubmitted, CompletionCompleted},
		{CompletionSubmitted, CompletionNeedsRevision},
		{CompletionNeedsRevision, CompletionInProgress},
		{CompletionNeedsRevision, CompletionSubmitted},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	denied := []struct{ from, to CompletionStatus }{
		{CompletionNotStarted, CompletionSubmitted},
		{CompletionNotStarted, CompletionMarked},
		{CompletionInProgress, CompletionMarked},
		{CompletionSubmitted, CompletionInProgress},
		{CompletionSubmitted, CompletionSubmitted},
		{CompletionMarked, CompletionCompleted},
		{CompletionMarked, CompletionInProgress},
		{CompletionCompleted, CompletionSubmitted},
		{CompletionNeedsRevision, CompletionMarked},
	}
	for _, tt := range denied {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s should be denied", tt.from, tt.to)
	}
}

func TestCompletionStatusCounted(t *testing.T) {
	assert.True(t, CompletionMarked.Counted())
	assert.True(t, CompletionCompleted.Counted())
	assert.False(t, CompletionSubmitted.Counted())
	assert.False(t, CompletionNeedsRevision.Counted())
	assert.False(t, CompletionInProgress.Counted())
	assert.False(t, CompletionNotStarted.Counted())
}

func TestCompletionStatusTerminal(t *testing.T) {
	assert.True(t, CompletionMarked.Terminal())
	assert.True(t, CompletionCompleted.Terminal())
	assert.False(t, CompletionNeedsRevision.Terminal())
	assert.False(t, CompletionSubmitted.Terminal())
}
