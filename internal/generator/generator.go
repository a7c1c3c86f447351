// Package generator synthesizes the customer batch: CIF-style IDs, provider
// names and dates, and seeded categorical fields.
package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmehdipour/custgen/internal/cif"
	"github.com/jmehdipour/custgen/internal/identity"
	"github.com/jmehdipour/custgen/internal/model"
)

var ErrInvalidOptions = errors.New("invalid generator options")

// MaxRecordCount bounds one in-memory batch; wider ID spaces are split across runs with sequence_start.
const MaxRecordCount = 50_000_000

// preallocCap limits the up-front slice reservation; larger batches grow by append.
const preallocCap = 1 << 20

// DefaultStatusWeights is aligned with model.Statuses.
var DefaultStatusWeights = []float64{0.8, 0.1, 0.05, 0.05}

type Options struct {
	BankPrefix     int
	SequenceStart  int64
	SequenceDigits int
	Count          int64
	Seed           int64
	ReferenceDate  time.Time // ages are measured at this date
	Provider       string
	MiddleNameRate float64
	MinAge         int
	MaxAge         int
	StatusWeights  []float64 // aligned with model.Statuses
}

func DefaultOptions() Options {
	return Options{
		BankPrefix:     301,
		SequenceStart:  1,
		SequenceDigits: 9,
		Count:          10_000,
		Seed:           42,
		ReferenceDate:  identity.Today(time.Now()),
		Provider:       identity.ProviderBuiltin,
		MiddleNameRate: 0.2,
		MinAge:         18,
		MaxAge:         75,
		StatusWeights:  DefaultStatusWeights,
	}
}

// Validate reports configuration errors before any record is built.
func (o Options) Validate() error {
	ids, err := cif.NewFormatter(o.BankPrefix, o.SequenceDigits)
	if err != nil {
		return err
	}
	if err := ids.ValidateRange(o.SequenceStart, o.Count); err != nil {
		return err
	}
	if o.Count > MaxRecordCount {
		return fmt.Errorf("%w: record count %d above per-run limit %d", ErrInvalidOptions, o.Count, MaxRecordCount)
	}
	if o.MiddleNameRate < 0 || o.MiddleNameRate > 1 {
		return fmt.Errorf("%w: middle name rate %v outside [0,1]", ErrInvalidOptions, o.MiddleNameRate)
	}
	if o.MinAge < 0 || o.MaxAge < o.MinAge {
		return fmt.Errorf("%w: age range [%d,%d]", ErrInvalidOptions, o.MinAge, o.MaxAge)
	}
	if o.ReferenceDate.IsZero() {
		return fmt.Errorf("%w: missing reference date", ErrInvalidOptions)
	}
	if _, err := NewWeighted(model.Statuses, o.StatusWeights); err != nil {
		return fmt.Errorf("%w: status weights %v", err, o.StatusWeights)
	}
	return nil
}

// Fingerprint identifies the output: equal fingerprints produce equal files.
func (o Options) Fingerprint() string {
	desc := fmt.Sprintf("p%d-s%d-d%d-n%d-seed%d-ref%s-%s-m%g-a%d_%d-w%v",
		o.BankPrefix, o.SequenceStart, o.SequenceDigits, o.Count, o.Seed,
		identity.Date(o.ReferenceDate).Format(model.DateLayout), o.Provider,
		o.MiddleNameRate, o.MinAge, o.MaxAge, o.StatusWeights)
	sum := sha256.Sum256([]byte(desc))
	return hex.EncodeToString(sum[:8])
}

// Synthesizer builds records in sequence order from one seeded source.
type Synthesizer struct {
	opts   Options
	ids    cif.Formatter
	rng    *rand.Rand
	names  identity.Provider
	status *Weighted[model.Status]

	seq int64
	end int64 // exclusive
}

func New(opts Options) (*Synthesizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ids, _ := cif.NewFormatter(opts.BankPrefix, opts.SequenceDigits)
	status, _ := NewWeighted(model.Statuses, opts.StatusWeights)

	rng := rand.New(rand.NewSource(opts.Seed))
	names, err := identity.New(opts.Provider, rng, opts.ReferenceDate)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		opts:   opts,
		ids:    ids,
		rng:    rng,
		names:  names,
		status: status,
		seq:    opts.SequenceStart,
		end:    opts.SequenceStart + opts.Count,
	}, nil
}

func (s *Synthesizer) Options() Options { return s.opts }

// Next builds the record for the current sequence number and advances.
// The source is consumed in a fixed order: first name, last name, date of
// birth, middle-name coin (plus the name when it lands), gender, status.
func (s *Synthesizer) Next() (model.Customer, bool) {
	if s.seq >= s.end {
		return model.Customer{}, false
	}

	// range was validated in New
	id, _ := s.ids.Format(s.seq)
	s.seq++

	c := model.Customer{
		CustomerID:  id,
		FirstName:   s.names.FirstName(),
		LastName:    s.names.LastName(),
		DateOfBirth: s.names.DateOfBirth(s.opts.MinAge, s.opts.MaxAge),
	}
	if s.rng.Float64() < s.opts.MiddleNameRate {
		c.MiddleName = s.names.FirstName()
	}
	c.Gender = model.Genders[s.rng.Intn(len(model.Genders))]
	c.PANNumber = cif.PAN(id)
	c.Status = s.status.Pick(s.rng)

	return c, true
}

// Generate builds every remaining record in order.
func (s *Synthesizer) Generate() []model.Customer {
	out := make([]model.Customer, 0, min(s.end-s.seq, preallocCap))
	for {
		c, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// Generate is a one-shot helper around New + Synthesizer.Generate.
func Generate(opts Options) ([]model.Customer, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return s.Generate(), nil
}
