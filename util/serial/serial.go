// Package serial generates product serial numbers of the form
// PROD-YYYYMMDD-HHMMSS-XXXX.
package serial

import (
	"regexp"
	"time"

	"github.com/inventaris/panel/util/random"
)

const (
	prefix     = "PROD-"
	layout     = "20060102-150405"
	suffixSize = 4
)

var pattern = regexp.MustCompile(`^PROD-\d{8}-\d{6}-[0-9A-Z]{4}$`)

// Generator builds serial numbers from a clock and a random suffix source.
// The zero value uses the wall clock and crypto/rand.
type Generator struct {
	Now    func() time.Time
	Suffix func(n int) string
}

// New returns a serial number for the current instant.
func (g Generator) New() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := random.Code
	if g.Suffix != nil {
		suffix = g.Suffix
	}
	return prefix + now().Format(layout) + "-" + suffix(suffixSize)
}

// New returns a serial number using the default generator.
func New() string {
	return Generator{}.New()
}

// Valid reports whether s has the serial number shape.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
