// Package cif builds bank-style customer numbers: a 3-digit bank prefix
// followed by a zero-padded sequence, e.g. 301000000001.
package cif

import (
	"errors"
	"fmt"
)

const (
	MinPrefix = 100
	MaxPrefix = 999

	// MaxDigits keeps prefix+sequence within int64 (3 + 15 = 18 digits).
	MaxDigits = 15
)

var (
	ErrInvalidPrefix    = errors.New("bank prefix must be a 3-digit number")
	ErrInvalidDigits    = fmt.Errorf("sequence digits must be between 1 and %d", MaxDigits)
	ErrSequenceOverflow = errors.New("sequence does not fit the configured digit width")
	ErrCapacityExceeded = errors.New("record count exceeds sequence capacity")
)

// Formatter turns sequence numbers into fixed-width customer IDs.
type Formatter struct {
	prefix int64
	digits int
	scale  int64 // 10^digits
}

func NewFormatter(prefix, digits int) (Formatter, error) {
	if prefix < MinPrefix || prefix > MaxPrefix {
		return Formatter{}, fmt.Errorf("%w: got %d", ErrInvalidPrefix, prefix)
	}
	if digits < 1 || digits > MaxDigits {
		return Formatter{}, fmt.Errorf("%w: got %d", ErrInvalidDigits, digits)
	}
	scale := int64(1)
	for i := 0; i < digits; i++ {
		scale *= 10
	}
	return Formatter{prefix: int64(prefix), digits: digits, scale: scale}, nil
}

func (f Formatter) Prefix() int { return int(f.prefix) }
func (f Formatter) Digits() int { return f.digits }

// MaxSequence is the largest sequence that still renders in Digits() digits.
func (f Formatter) MaxSequence() int64 { return f.scale - 1 }

// Format returns prefix followed by seq zero-padded to Digits(), as an integer.
// prefix*10^digits + seq is the same number as parsing the concatenated string.
func (f Formatter) Format(seq int64) (int64, error) {
	if seq < 0 || seq > f.MaxSequence() {
		return 0, fmt.Errorf("%w: sequence %d, max %d", ErrSequenceOverflow, seq, f.MaxSequence())
	}
	return f.prefix*f.scale + seq, nil
}

// Capacity is the largest record count starting at start that keeps every ID fixed-width.
func (f Formatter) Capacity(start int64) int64 {
	if start < 0 || start > f.MaxSequence() {
		return 0
	}
	return f.scale - start
}

// ValidateRange checks [start, start+count) up front so generation never
// discovers an overflow mid-run.
func (f Formatter) ValidateRange(start, count int64) error {
	if start < 0 {
		return fmt.Errorf("%w: negative sequence start %d", ErrSequenceOverflow, start)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative record count %d", ErrCapacityExceeded, count)
	}
	if c := f.Capacity(start); count > c {
		return fmt.Errorf("%w: count %d from start %d, capacity %d (%d digits)",
			ErrCapacityExceeded, count, start, c, f.digits)
	}
	return nil
}

// PAN derives the synthetic PAN-like tax number from a customer ID.
func PAN(customerID int64) string {
	return fmt.Sprintf("ABCDE%04dF", customerID%10000)
}
