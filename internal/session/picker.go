package session

import (
	"math/rand"
	"time"
)

// Picker chooses the index of the next question, uniformly over [0, n).
// Injecting it keeps the transition function deterministic under test.
type Picker interface {
	Pick(n int) int
}

type randPicker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() Picker {
	return &randPicker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randPicker) Pick(n int) int {
	return p.rnd.Intn(n)
}
