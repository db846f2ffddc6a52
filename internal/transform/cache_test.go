package transform

import (
	"crypto/sha256"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGetRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	key, err := Key("ai-summarize", "v1", sha256.Sum256([]byte("hello")), nil)
	require.NoError(t, err)

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Put(key, []byte("summary"))
	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "summary", string(v))
}

func TestCacheGetExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	c, err := NewCache(t.TempDir(), time.Millisecond)
	require.NoError(t, err)

	key, err := Key("ai-summarize", "v1", sha256.Sum256([]byte("hello")), nil)
	require.NoError(t, err)

	c.Put(key, []byte("summary"))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestCacheComputeCollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	c, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	key, err := Key("doc-convert", "v1", sha256.Sum256([]byte("x")), nil)
	require.NoError(t, err)

	var calls int64
	fn := func() ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return []byte("result"), nil
	}

	done := make(chan struct{}, 8)
	for i := 0; i < 8; i++ {
		go func() {
			v, err := c.Compute(key, fn)
			assert.NoError(t, err)
			assert.Equal(t, "result", string(v))
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.LessOrEqual(t, atomic.LoadInt64(&calls), int64(2))
}

func TestKeyDeterministicForSameInputs(t *testing.T) {
	t.Parallel()

	sum := sha256.Sum256([]byte("content"))
	k1, err := Key("token-count", "v1", sum, map[string]any{"encoding": "cl100k_base"})
	require.NoError(t, err)
	k2, err := Key("token-count", "v1", sum, map[string]any{"encoding": "cl100k_base"})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := Key("token-count", "v2", sum, map[string]any{"encoding": "cl100k_base"})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}
