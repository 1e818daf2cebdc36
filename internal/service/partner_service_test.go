package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShareCapWithinLimit(t *testing.T) {
	warning, err := validateShareCap(d("60"), d("40"), false)
	require.NoError(t, err)
	assert.Empty(t, warning)

	warning, err = validateShareCap(d("0"), d("100"), false)
	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestValidateShareCapExceeded(t *testing.T) {
	_, err := validateShareCap(d("80"), d("30"), false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestValidateShareCapOverride(t *testing.T) {
	warning, err := validateShareCap(d("80"), d("30"), true)
	require.NoError(t, err)
	assert.NotEmpty(t, warning, "override must surface a warning")
	assert.Contains(t, warning, "110")
}
