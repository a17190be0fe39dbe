package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
)

func record(hash string, at time.Time, cost float64) *Record {
	r := NewRecord()
	r.CreatedAt = at
	r.Instance = "wt-" + hash
	r.InstanceHash = hash
	r.Algorithm = "vbss"
	r.Heuristics = []string{"atc"}
	r.Runs = 100
	r.Cost = cost
	r.Solution = []int{2, 0, 1}
	r.Elapsed = 1500 * time.Millisecond
	return r
}

func TestNewRecord(t *testing.T) {
	a, b := NewRecord(), NewRecord()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.WithinDuration(t, time.Now(), a.CreatedAt, time.Minute)
	assert.NotEmpty(t, a.Version)
}

func TestListOptionsLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ListOptions{}.limit())
	assert.Equal(t, DefaultLimit, ListOptions{Limit: -3}.limit())
	assert.Equal(t, 5, ListOptions{Limit: 5}.limit())
}

// testStore runs the behavior every Store must share.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := record("aaa", base, 30)
	mid := record("bbb", base.Add(time.Hour), 20)
	recent := record("aaa", base.Add(2*time.Hour), 10)
	for _, r := range []*Record{mid, old, recent} {
		require.NoError(t, s.Put(ctx, r))
	}

	got, err := s.Get(ctx, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, mid.Cost, got.Cost)
	assert.Equal(t, mid.Solution, got.Solution)
	assert.Equal(t, mid.Elapsed, got.Elapsed)
	assert.True(t, mid.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "%v", err)

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{recent.ID, mid.ID, old.ID}, ids(all))

	one, err := s.List(ctx, ListOptions{InstanceHash: "aaa", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{recent.ID}, ids(one))

	recent.Cost = 5
	require.NoError(t, s.Put(ctx, recent))
	got, err = s.Get(ctx, recent.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Cost, "put replaces")
}

func ids(rs []*Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0700))

	r := record("x", time.Now(), 1)
	require.NoError(t, s.Put(context.Background(), r))

	all, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, ids(all))
}

func TestFileStoreRejectsUnsafeIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	r := record("x", time.Now(), 1)
	r.ID = "../escape"
	assert.True(t, errors.Is(s.Put(ctx, r), errors.ErrCodeInvalidInput))

	_, err = s.Get(ctx, "a/b")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

// TestMongoStore runs against a live server when PERMSAMPLE_TEST_MONGO_URI
// is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("PERMSAMPLE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PERMSAMPLE_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "permsample_test_" + NewRecord().ID[:8]
	s, err := NewMongoStore(ctx, uri, db)
	require.NoError(t, err)
	defer func() {
		_ = s.coll.Database().Drop(context.Background())
		_ = s.Close()
	}()
	testStore(t, s)
}

func TestMongoStoreBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := NewMongoStore(ctx, "not-a-uri", "x")
	assert.Error(t, err)
}
