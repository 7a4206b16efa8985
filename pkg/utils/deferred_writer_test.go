package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_Write(t *testing.T) {
	t.Run("buffers writes", func(t *testing.T) {
		d := NewDeferredWriter(0)

		n, err := d.Write([]byte("hello "))
		require.NoError(t, err)
		assert.Equal(t, 6, n)

		_, err = d.Write([]byte("world"))
		require.NoError(t, err)
		assert.Equal(t, 11, d.Len())

		var out bytes.Buffer
		require.NoError(t, d.Flush(&out))
		assert.Equal(t, "hello world", out.String())
		assert.Equal(t, 0, d.Len())
	})

	t.Run("concurrent writes are safe", func(t *testing.T) {
		d := NewDeferredWriter(0)
		var wg sync.WaitGroup

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = d.Write([]byte("x"))
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, d.Len())
	})
}

func TestDeferredWriter_Limit(t *testing.T) {
	d := NewDeferredWriter(8)

	_, _ = d.Write([]byte("line 1\n"))
	n, err := d.Write([]byte("line 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, n, "dropped writes still report success")

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, "line 1\n(7 bytes of output dropped)\n", out.String())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String(), "flush resets the drop counter")
}

func TestDeferredWriter_FlushEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDeferredWriter(0).Flush(&out))
	assert.Empty(t, out.String())
}
