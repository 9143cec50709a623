package uh

import "fmt"

// Buffer is a fixed-length shift register of routed amounts still to come.
// Position 0 holds what is due at the next Advance.
type Buffer struct {
	v []float64
}

// NewBuffer returns a zero-filled buffer of length n.
func NewBuffer(n int) *Buffer {
	return &Buffer{v: make([]float64, n)}
}

// Len buffer length, fixed for the life of the buffer.
func (b *Buffer) Len() int { return len(b.v) }

// Inject spreads amount over the buffer according to the ordinates.
// Contributions from successive timesteps overlap and are summed.
func (b *Buffer) Inject(amount float64, ord []float64) {
	if len(ord) > len(b.v) {
		panic(fmt.Sprintf("uh.Buffer.Inject: %d ordinates exceed buffer length %d", len(ord), len(b.v)))
	}
	for i, o := range ord {
		b.v[i] += o * amount
	}
}

// Advance pops the amount due now and shifts the remainder down by one.
func (b *Buffer) Advance() float64 {
	q := b.v[0]
	copy(b.v, b.v[1:])
	b.v[len(b.v)-1] = 0.
	return q
}

// Sum total amount pending in the buffer.
func (b *Buffer) Sum() float64 {
	s := 0.
	for _, v := range b.v {
		s += v
	}
	return s
}

// Values returns a copy of the buffer contents.
func (b *Buffer) Values() []float64 {
	o := make([]float64, len(b.v))
	copy(o, b.v)
	return o
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{v: b.Values()}
}

// Load replaces the buffer contents; the length must match.
func (b *Buffer) Load(v []float64) error {
	if len(v) != len(b.v) {
		return fmt.Errorf("uh.Buffer.Load: got %d values for a buffer of length %d", len(v), len(b.v))
	}
	copy(b.v, v)
	return nil
}

// Reset zeroes the buffer.
func (b *Buffer) Reset() {
	for i := range b.v {
		b.v[i] = 0.
	}
}
