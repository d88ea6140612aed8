package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.False(t, a.IsEmpty())
	assert.NotEqual(t, a, b)
}

func TestParseDashboardID(t *testing.T) {
	id, err := ParseDashboardID("abc-123")
	require.NoError(t, err)
	assert.Equal(t, DashboardID("abc-123"), id)

	_, err = ParseDashboardID("  ")
	assert.Error(t, err)
}

func TestNotFoundErrors(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrDashboardNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("context: %w", ErrDatasetNotFound)))
	assert.False(t, IsNotFoundError(ErrEmptyUpload))
}

func TestUploadErrors(t *testing.T) {
	assert.True(t, IsUploadError(ErrEmptyUpload))
	assert.True(t, IsUploadError(fmt.Errorf("wrap: %w", ErrUnsupportedFormat)))
	assert.False(t, IsUploadError(ErrDashboardNotFound))
}
