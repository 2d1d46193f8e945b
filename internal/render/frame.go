package render

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidDimensions indicates a zero or negative canvas width or height.
var ErrInvalidDimensions = errors.New("render: invalid dimensions")

// CheckDimensions reports ErrInvalidDimensions for non-positive sizes.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Frame is one rendered image.
type Frame struct {
	Width  int
	Height int
	Time   float64
	Pix    []byte
}

// Pool recycles pixel buffers of one size.
type Pool struct {
	pool sync.Pool
	size int
}

func NewPool(width, height int) *Pool {
	size := width * height * 4
	return &Pool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]byte, size)
			},
		},
	}
}

func (p *Pool) Size() int { return p.size }

func (p *Pool) Get() []byte {
	return p.pool.Get().([]byte)
}

// Put returns buf to the pool. Buffers of another size are dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) == p.size {
		p.pool.Put(buf)
	}
}
