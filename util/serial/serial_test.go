package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorFormat(t *testing.T) {
	g := Generator{
		Now:    func() time.Time { return time.Date(2025, 3, 7, 9, 4, 5, 0, time.UTC) },
		Suffix: func(n int) string { return "A1B2"[:n] },
	}
	assert.Equal(t, "PROD-20250307-090405-A1B2", g.New())
}

func TestNewMatchesPattern(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := New()
		assert.True(t, Valid(s), s)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("PROD-20250101-235959-ZZ09"))
	assert.False(t, Valid("PROD-20250101-235959-zz09"))
	assert.False(t, Valid("PROD-2025011-235959-ZZ09"))
	assert.False(t, Valid("ITEM-20250101-235959-ZZ09"))
	assert.False(t, Valid(""))
}
