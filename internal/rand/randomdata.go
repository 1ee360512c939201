// Package rand generates random strings picked in a restricted alphabet.
//
// Generators are explicit values: callers seed them, so tests get
// reproducible sequences.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

// Generator produces fixed-length random strings from an alphabet
type Generator struct {
	alphabet []byte
	size     int

	mx   sync.Mutex
	rgen *rand.Rand
}

// New builds a generator of strings of length size, picked in alphabet,
// from a deterministic seed.
func New(alphabet string, size int, seed int64) *Generator {
	if alphabet == "" {
		panic("rand: empty alphabet")
	}
	return &Generator{
		alphabet: []byte(alphabet),
		size:     size,
		rgen:     rand.New(rand.NewSource(seed)), // #nosec
	}
}

// NewTimeSeeded builds a generator seeded from the current time
func NewTimeSeeded(alphabet string, size int) *Generator {
	return New(alphabet, size, time.Now().UnixNano())
}

// NewID returns the next random string
func (g *Generator) NewID() string {
	buf := make([]byte, g.size)
	g.mx.Lock()
	for i := range buf {
		buf[i] = g.alphabet[g.rgen.Intn(len(g.alphabet))]
	}
	g.mx.Unlock()
	return string(buf)
}

// Size of generated strings
func (g *Generator) Size() int {
	return g.size
}
