// Package identity supplies fake personal data (names, dates of birth) to the
// record synthesizer. Every provider draws from the caller's seeded *rand.Rand,
// so output is reproducible for a given seed.
package identity

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	ProviderBuiltin = "builtin"
	ProviderFaker   = "faker"
)

var ErrUnknownProvider = errors.New("unknown identity provider")

// Provider is the name/date collaborator of the record synthesizer.
type Provider interface {
	FirstName() string
	LastName() string
	// DateOfBirth returns a date whose age at the reference date is in [minAge, maxAge].
	DateOfBirth(minAge, maxAge int) time.Time
}

// New returns the provider registered under name. ref is the date ages are measured at.
func New(name string, rng *rand.Rand, ref time.Time) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderBuiltin:
		return NewBuiltin(rng, ref), nil
	case ProviderFaker:
		return NewFaker(rng, ref), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// DOBWindow returns the inclusive range of birth dates whose age at ref is in [minAge, maxAge].
func DOBWindow(ref time.Time, minAge, maxAge int) (earliest, latest time.Time) {
	ref = Date(ref)
	// AddDate normalizes Feb 29 into March, so nudge both ends back inside the age range.
	latest = ref.AddDate(-minAge, 0, 0)
	for Age(latest, ref) < minAge {
		latest = latest.AddDate(0, 0, -1)
	}
	earliest = ref.AddDate(-(maxAge + 1), 0, 1)
	for Age(earliest, ref) > maxAge {
		earliest = earliest.AddDate(0, 0, 1)
	}
	return earliest, latest
}

// Today is the UTC calendar date of now, whatever the host time zone.
func Today(now time.Time) time.Time {
	return Date(now.UTC())
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Age returns the whole years between dob and ref.
func Age(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	return age
}
