package rng

import "math/bits"

// State is the full internal state of the generator.
type State uint64

const golden = 0x9E3779B97F4A7C15

// Initialize returns the starting state for seed.
func Initialize(seed Seed) State {
	return State(seed)
}

// Next advances s by one SplitMix64 step.
func Next(s State) (uint64, State) {
	s += golden
	z := uint64(s)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31), s
}

// Float64 returns a value in [0, 1).
func Float64(s State) (float64, State) {
	v, s := Next(s)
	return float64(v>>11) * (1.0 / (1 << 53)), s
}

// Intn returns a value in [0, n). n must be positive.
func Intn(s State, n int) (int, State) {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	v, s := Next(s)
	hi, _ := bits.Mul64(v, uint64(n))
	return int(hi), s
}

// Stream owns a State for sequential consumers.
type Stream struct {
	state State
}

func NewStream(seed Seed) *Stream {
	return &Stream{state: Initialize(seed)}
}

func (r *Stream) Uint64() uint64 {
	var v uint64
	v, r.state = Next(r.state)
	return v
}

func (r *Stream) Float64() float64 {
	var v float64
	v, r.state = Float64(r.state)
	return v
}

func (r *Stream) Intn(n int) int {
	var v int
	v, r.state = Intn(r.state, n)
	return v
}

// State returns the current state so a caller can resume elsewhere.
func (r *Stream) State() State { return r.state }
