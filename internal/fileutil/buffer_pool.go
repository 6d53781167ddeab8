package fileutil

import (
	"sync"
)

const zeroBufferSize = 32 * 1024 // 32KB of zeros per write during erase

// zeroPool provides reusable zero-filled buffers for overwriting file extents.
// Buffers are never written to, so they stay zeroed between uses.
//
//nolint:gochecknoglobals
var zeroPool = sync.Pool{
	New: func() any {
		buf := make([]byte, zeroBufferSize)

		return &buf
	},
}
