package cluster

import (
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
)

type options struct {
	permissive bool
	lookup     func(key int) (model.NodeID, bool)
	manager    *task.Manager
	chunkSize  int
}

// Option configures cluster construction.
type Option func(*options)

// WithPermissive skips offending input edges instead of failing the build.
func WithPermissive() Option {
	return func(o *options) {
		o.permissive = true
	}
}

// WithEndpointLookup resolves input endpoint keys to node ids.
// By default a key k resolves to node k if 0 <= k < points.Len().
func WithEndpointLookup(fn func(key int) (model.NodeID, bool)) Option {
	return func(o *options) {
		o.lookup = fn
	}
}

// WithManager runs the parallel parts of BuildFromIndex on m.
// Without it, BuildFromIndex uses a private manager for the call.
func WithManager(m *task.Manager) Option {
	return func(o *options) {
		o.manager = m
	}
}

// WithChunkSize sets the number of points per parallel neighbor query task.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}
