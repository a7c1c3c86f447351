package identity

import (
	"math/rand"
	"time"
)

// Builtin draws names from the package's en_IN tables.
type Builtin struct {
	rng *rand.Rand
	ref time.Time
}

func NewBuiltin(rng *rand.Rand, ref time.Time) *Builtin {
	return &Builtin{rng: rng, ref: Date(ref)}
}

func (b *Builtin) FirstName() string { return b.pick(firstNames) }
func (b *Builtin) LastName() string  { return b.pick(lastNames) }

// DateOfBirth picks a day uniformly inside the age window.
func (b *Builtin) DateOfBirth(minAge, maxAge int) time.Time {
	earliest, latest := DOBWindow(b.ref, minAge, maxAge)
	days := int(latest.Sub(earliest).Hours() / 24)
	return earliest.AddDate(0, 0, b.rng.Intn(days+1))
}

func (b *Builtin) pick(s []string) string {
	return s[b.rng.Intn(len(s))]
}
