package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("MATLAB"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.NoError(t, bb.WriteByte(' '))
	require.Equal(t, []byte("MATLAB "), bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(100)
		require.GreaterOrEqual(t, bb.Cap(), ElementBufferDefaultSize)
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(1 << 20)
		require.GreaterOrEqual(t, bb.Cap(), 1<<20)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(1 << 16)
		require.Equal(t, []byte("abcd"), bb.Bytes())
	})
}

func TestByteBuffer_CloneIsIndependent(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("abc"))

	c := bb.Clone()
	bb.Reset()
	_, _ = bb.Write([]byte("xyz"))

	require.Equal(t, []byte("abc"), c)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.Grow(10000)
	require.Greater(t, bb.Cap(), 4096)
	p.Put(bb)

	bb2 := p.Get()
	require.LessOrEqual(t, bb2.Cap(), 4096)
}

func TestByteBufferPool_PutResets(t *testing.T) {
	p := NewByteBufferPool(64, 0)

	bb := p.Get()
	_, _ = bb.Write([]byte("stale"))
	p.Put(bb)
	p.Put(nil)

	require.Equal(t, 0, p.Get().Len())
}

func TestDefaultPools(t *testing.T) {
	sb := GetSnapshotBuffer()
	require.GreaterOrEqual(t, sb.Cap(), SnapshotBufferDefaultSize)
	PutSnapshotBuffer(sb)

	eb := GetElementBuffer()
	require.GreaterOrEqual(t, eb.Cap(), ElementBufferDefaultSize)
	PutElementBuffer(eb)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				bb := GetElementBuffer()
				_, _ = bb.Write([]byte("data"))
				if bb.Len() != 4 {
					t.Errorf("unexpected length %d", bb.Len())
				}
				PutElementBuffer(bb)
			}
		}()
	}
	wg.Wait()
}
