package identity

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
)

// Faker delegates names and dates to jaswdr/faker, seeded from the shared source.
type Faker struct {
	f   faker.Faker
	ref time.Time
}

// NewFaker wraps rng's source, so faker draws advance the same sequence as the caller's.
func NewFaker(rng *rand.Rand, ref time.Time) *Faker {
	return &Faker{f: faker.NewWithSeed(sharedSource{rng}), ref: Date(ref)}
}

func (p *Faker) FirstName() string { return p.f.Person().FirstName() }
func (p *Faker) LastName() string  { return p.f.Person().LastName() }

func (p *Faker) DateOfBirth(minAge, maxAge int) time.Time {
	earliest, latest := DOBWindow(p.ref, minAge, maxAge)
	dob := Date(p.f.Time().TimeBetween(earliest, latest).UTC())
	if dob.Before(earliest) {
		return earliest
	}
	if dob.After(latest) {
		return latest
	}
	return dob
}

// sharedSource exposes a *rand.Rand as a rand.Source.
type sharedSource struct{ r *rand.Rand }

func (s sharedSource) Int63() int64    { return s.r.Int63() }
func (s sharedSource) Seed(seed int64) { s.r.Seed(seed) }
