package simerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsMatchTheirSentinel(t *testing.T) {
	err := InvalidSeed("seed 7 placed only 3 tribes")
	assert.True(t, errors.Is(err, ErrInvalidSeed))
	assert.False(t, errors.Is(err, ErrSaveCorrupt))

	err = SaveCorrupt("tile (4,4) owned twice")
	assert.True(t, errors.Is(err, ErrSaveCorrupt))

	err = LogicAssertion("negative population on tribe_3")
	assert.True(t, errors.Is(err, ErrLogicAssertion))
}

func TestErrorMessageCarriesDetail(t *testing.T) {
	err := SaveCorrupt("unknown country id 99")
	assert.Contains(t, err.Error(), "unknown country id 99")
}
