package random

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	s := Seq(32)
	assert.Len(t, s, 32)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-zA-Z]{32}$`), s)
}

func TestCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{4}$`), Code(4))
	}
}

func TestNumRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Num(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
}
