package manifest

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmehdipour/custgen/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, keep int64) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, "custgen:", keep), mr
}

func manifestFor(runID, fp, sum string) model.RunManifest {
	return model.RunManifest{
		RunID:        runID,
		Fingerprint:  fp,
		BankPrefix:   301,
		Start:        1,
		Digits:       9,
		Count:        3,
		Seed:         42,
		Checksum:     sum,
		StatusCounts: map[model.Status]int64{model.StatusActive: 3},
		CreatedAt:    time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndGet(t *testing.T) {
	s, mr := newStore(t, 10)
	ctx := context.Background()

	first, err := s.Save(ctx, manifestFor("run1", "fp", "aaa"))
	require.NoError(t, err)
	assert.True(t, first)

	again, err := s.Save(ctx, manifestFor("run2", "fp", "aaa"))
	require.NoError(t, err)
	assert.False(t, again, "baseline is kept for the first run")

	got, err := s.Get(ctx, "run2")
	require.NoError(t, err)
	assert.Equal(t, manifestFor("run2", "fp", "aaa"), got)

	mr.CheckGet(t, "custgen:baseline:fp", "run1")
	assert.True(t, mr.Exists("custgen:manifest:run1"))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentIsCapped(t *testing.T) {
	s, _ := newStore(t, 2)
	ctx := context.Background()

	for _, id := range []string{"r1", "r2", "r3"} {
		_, err := s.Save(ctx, manifestFor(id, "fp-"+id, "x"))
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r3", recent[0].RunID)
	assert.Equal(t, "r2", recent[1].RunID)
}

func TestRecentSkipsExpired(t *testing.T) {
	s, mr := newStore(t, 10)
	ctx := context.Background()

	_, _ = s.Save(ctx, manifestFor("r1", "a", "x"))
	_, _ = s.Save(ctx, manifestFor("r2", "b", "x"))
	mr.Del("custgen:manifest:r1")

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "r2", recent[0].RunID)
}

func TestVerify(t *testing.T) {
	s, _ := newStore(t, 10)
	ctx := context.Background()

	_, err := s.Verify(ctx, "fp", "aaa")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Save(ctx, manifestFor("run1", "fp", "aaa"))
	require.NoError(t, err)

	base, err := s.Verify(ctx, "fp", "aaa")
	require.NoError(t, err)
	assert.Equal(t, "run1", base.RunID)

	_, err = s.Verify(ctx, "fp", "bbb")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
