package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource(t *testing.T) {
	const noSource = "no source"
	const multiSource = "multiple sources"

	assert.NoError(t, ValidateSingleInputSource(noSource, multiSource, true, false))
	assert.NoError(t, ValidateSingleInputSource(noSource, multiSource, false, true))

	err := ValidateSingleInputSource(noSource, multiSource, false, false)
	assert.EqualError(t, err, noSource)

	err = ValidateSingleInputSource(noSource, multiSource, true, true)
	assert.EqualError(t, err, multiSource)
}
