package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateProducesDistinctSixDigitCodes(t *testing.T) {
	g := NewCodeGenerator()
	issued := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := g.Generate(func(c string) bool { return issued[c] })
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
		assert.False(t, issued[code], "code %s issued twice", code)
		issued[code] = true
	}
}

func TestGenerateFailsWhenSpaceExhausted(t *testing.T) {
	g := NewCodeGenerator()

	_, err := g.Generate(func(string) bool { return true })
	require.ErrorIs(t, err, ErrCodeSpaceExhausted)
}

func TestGenerateSkipsReleasedCodes(t *testing.T) {
	g := NewCodeGenerator()

	code, err := g.Generate(func(string) bool { return false })
	require.NoError(t, err)
	g.Release(code)

	// the only reachable free code is the released one, so generation
	// must give up rather than reissue it
	_, err = g.Generate(func(c string) bool { return c != code })
	require.ErrorIs(t, err, ErrCodeSpaceExhausted)
}
