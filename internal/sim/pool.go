package sim

import "sync"

// BufferPool recycles position snapshots of one cloth size. Viewers keep a
// bounded replay history and return evicted frames here.
type BufferPool struct {
	pool sync.Pool
	size int
}

func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		},
	}
}

func (p *BufferPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

func (p *BufferPool) Put(buf []float64) {
	if len(buf) == p.size {
		p.pool.Put(buf)
	}
}

// Snapshot copies src into a pooled buffer.
func (p *BufferPool) Snapshot(src []float64) []float64 {
	dst := p.Get()
	copy(dst, src)
	return dst
}
