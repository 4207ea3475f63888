package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientAlwaysAcquires(t *testing.T) {
	l := NewRedisLocker(nil, time.Second)
	for i := 0; i < 3; i++ {
		release, ok, err := l.Acquire(context.Background(), "C1001:KE081")
		require.NoError(t, err)
		assert.True(t, ok)
		release()
	}
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, 10*time.Second, NewRedisLocker(nil, 0).ttl)
}
