package fileutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteZeros(t *testing.T) {
	t.Parallel()

	for _, size := range []int64{0, 1, 32*1024 - 1, 32 * 1024, 32*1024 + 1, 200_000} {
		var buf bytes.Buffer

		require.NoError(t, writeZeros(&buf, size))
		assert.Len(t, buf.Bytes(), int(size))
		assert.Equal(t, int(size), bytes.Count(buf.Bytes(), []byte{0}), "size %d", size)
	}
}
