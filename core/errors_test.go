package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EINVALID, "size must be positive, is %d", -3)
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "size must be positive, is -3", UserMessage(err))
	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, EINVALID, Code(wrapped), "code should survive wrapping")
}

func TestGlyphNotFoundIs(t *testing.T) {
	err := GlyphNotFound('€', 2)
	assert.True(t, errors.Is(err, ErrGlyphNotFound))
	assert.False(t, errors.Is(err, ErrFaceLoad))
	assert.Equal(t, EMISSING, Code(err))
	assert.Contains(t, err.Error(), "U+20AC")
}

func TestFaceLoadFailure(t *testing.T) {
	err := FaceLoadFailure("fonts/missing.ttf", 1, errors.New("no such file"))
	assert.True(t, errors.Is(err, ErrFaceLoad))
	assert.Contains(t, UserMessage(err), "fonts/missing.ttf")
	assert.Contains(t, err.Error(), "no such file")
}

func TestInvalidIntervals(t *testing.T) {
	err := InvalidIntervals("interval #%d overlaps its predecessor", 2)
	assert.True(t, errors.Is(err, ErrInvalidIntervals))
	assert.Equal(t, EINVALID, Code(err))
}
