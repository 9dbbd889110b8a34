package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are cryptographically secure and uniformly
// distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource is a reproducible Source; the same seed always yields the same stream.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
//
// Postcondition: two sources built from the same seed return identical
// sequences for identical call sequences.
func NewSeededSource(seed int64) Source {
	return &seededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// FixedSource replays a fixed list of die faces, cycling when exhausted.
// It lets tests script exact outcomes: NewFixedSource(17, 3) makes the next
// two d20s show 17 and 3.
type FixedSource struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewFixedSource returns a FixedSource that replays faces in order.
//
// Precondition: len(faces) > 0 and every face >= 1.
func NewFixedSource(faces ...int) *FixedSource {
	if len(faces) == 0 {
		panic("dice: NewFixedSource requires at least one face")
	}
	for _, f := range faces {
		if f < 1 {
			panic("dice: NewFixedSource faces must be >= 1")
		}
	}
	return &FixedSource{faces: append([]int(nil), faces...)}
}

// Intn returns the next scripted face minus one. A face larger than n wraps
// modulo n so the result always stays in [0, n).
//
// Precondition: n > 0.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.faces[f.next%len(f.faces)]
	f.next++
	return (face - 1) % n
}
