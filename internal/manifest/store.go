// Package manifest keeps run manifests in Redis so a later run can prove
// that the same options still produce the same bytes.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmehdipour/custgen/internal/model"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound         = errors.New("manifest not found")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

type Store struct {
	rdb      *redis.Client
	prefix   string // e.g. "custgen:"
	keepRuns int64
}

func NewStore(rdb *redis.Client, prefix string, keepRuns int64) *Store {
	if keepRuns <= 0 {
		keepRuns = 100
	}
	return &Store{rdb: rdb, prefix: prefix, keepRuns: keepRuns}
}

func (s *Store) manifestKey(runID string) string { return s.prefix + "manifest:" + runID }
func (s *Store) baselineKey(fp string) string    { return s.prefix + "baseline:" + fp }
func (s *Store) runsKey() string                 { return s.prefix + "runs" }

// Save stores m, records it as the baseline for its fingerprint when none
// exists yet, and pushes it onto the capped recent-runs list.
// It reports whether m became the baseline.
func (s *Store) Save(ctx context.Context, m model.RunManifest) (bool, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("marshal manifest: %w", err)
	}

	var baseline *redis.BoolCmd
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.manifestKey(m.RunID), b, 0)
		baseline = p.SetNX(ctx, s.baselineKey(m.Fingerprint), m.RunID, 0)
		p.LPush(ctx, s.runsKey(), m.RunID)
		p.LTrim(ctx, s.runsKey(), 0, s.keepRuns-1)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("save manifest %s: %w", m.RunID, err)
	}
	return baseline.Val(), nil
}

func (s *Store) Get(ctx context.Context, runID string) (model.RunManifest, error) {
	b, err := s.rdb.Get(ctx, s.manifestKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.RunManifest{}, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}
	if err != nil {
		return model.RunManifest{}, err
	}
	var m model.RunManifest
	if err := json.Unmarshal(b, &m); err != nil {
		return model.RunManifest{}, fmt.Errorf("decode manifest %s: %w", runID, err)
	}
	return m, nil
}

// Baseline returns the first manifest saved for fingerprint.
func (s *Store) Baseline(ctx context.Context, fingerprint string) (model.RunManifest, error) {
	runID, err := s.rdb.Get(ctx, s.baselineKey(fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return model.RunManifest{}, fmt.Errorf("%w: fingerprint %s", ErrNotFound, fingerprint)
	}
	if err != nil {
		return model.RunManifest{}, err
	}
	return s.Get(ctx, runID)
}

// Recent returns up to n manifests, newest first. Expired entries are skipped.
func (s *Store) Recent(ctx context.Context, n int64) ([]model.RunManifest, error) {
	if n <= 0 {
		n = s.keepRuns
	}
	ids, err := s.rdb.LRange(ctx, s.runsKey(), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.RunManifest, 0, len(ids))
	for _, id := range ids {
		m, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Verify compares checksum with the baseline for fingerprint.
func (s *Store) Verify(ctx context.Context, fingerprint, checksum string) (model.RunManifest, error) {
	base, err := s.Baseline(ctx, fingerprint)
	if err != nil {
		return model.RunManifest{}, err
	}
	if base.Checksum != checksum {
		return base, fmt.Errorf("%w: baseline %s has %s, got %s", ErrChecksumMismatch, base.RunID, base.Checksum, checksum)
	}
	return base, nil
}
