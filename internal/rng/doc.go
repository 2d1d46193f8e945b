// Package rng provides a deterministic, explicitly stepped pseudo-random
// generator and the seed normalization used by the noise field.
//
// The generator has no hidden state: callers hold a [State] value and advance
// it with [Next], which returns the produced value together with the new state.
//
//	s := rng.Initialize(seed)
//	v, s := rng.Next(s)
//
// # Seeds
//
// [ParseSeed] turns user input into a [Seed]. Decimal integers keep their
// value; any other string is hashed with xxhash64. Input that cannot be
// normalized yields [DefaultSeed] together with an error wrapping
// [ErrInvalidSeed], so callers can log and continue.
package rng
