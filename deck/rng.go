package deck

// Intner is a source of random indices.
// Both *RNG and *math/rand.Rand satisfy it.
type Intner interface {
	Intn(n int) int
}

// RNG is a seedable xorshift64 generator. Its whole state is one uint64,
// so it can be carried inside a game value and restored exactly.
type RNG struct {
	state uint64
}

// NewRNG constructs an RNG. xorshift cannot start at 0, so a zero seed is replaced with 1.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{state: seed}
}

// Uint64 returns the next number in the sequence
func (r *RNG) Uint64() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Intn returns a number in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	return int(r.Uint64() % uint64(n))
}

// State returns the current generator state, suitable for NewRNG
func (r *RNG) State() uint64 {
	return r.state
}
