package core

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jmcvetta/randutil"
)

const (
	codeSpace       = 1_000_000 // 6-digit codes, zero-padded
	maxCodeAttempts = 10_000
	releasedCodes   = 512
)

// ErrCodeSpaceExhausted means Generate gave up after maxCodeAttempts draws.
// With a million-code space this only happens when nearly every code is live,
// and callers must treat it as an internal failure rather than retry.
var ErrCodeSpaceExhausted = errors.New("room code space exhausted")

// CodeGenerator hands out 6-digit room codes. Codes released by deleted
// rooms are held back for a while so a stale invite link errors out instead
// of landing the joiner in a stranger's fresh room.
type CodeGenerator struct {
	recent *lru.Cache
}

func NewCodeGenerator() *CodeGenerator {
	cache, _ := lru.New(releasedCodes)
	return &CodeGenerator{recent: cache}
}

// Generate draws random codes until one neither collides with a live room
// nor sits in the recently-released set.
func (g *CodeGenerator) Generate(taken func(code string) bool) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		n, err := randutil.IntRange(0, codeSpace)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n)
		if g.recent.Contains(code) || taken(code) {
			continue
		}
		return code, nil
	}
	return "", ErrCodeSpaceExhausted
}

// Release marks a code as recently freed.
func (g *CodeGenerator) Release(code string) {
	g.recent.Add(code, struct{}{})
}
