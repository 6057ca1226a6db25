package rng

// Generator provides random numbers for shuffles and seeds
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int

	// Int63 returns a random non-negative 63-bit integer
	Int63() int64
}
