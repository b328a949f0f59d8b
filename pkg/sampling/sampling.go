// Package sampling splits a population into a training and a test part.
package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidFraction is returned when a split fraction lies outside [0, 1]
var ErrInvalidFraction = errors.New("fraction must be within [0, 1]")

// NewRand returns a generator seeded deterministically from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Split assigns each item to train with probability fraction and to test
// otherwise. Both halves keep the input order, and together they hold every
// item exactly once.
func Split[T any](items []T, fraction float64, rng *rand.Rand) (train, test []T, err error) {
	if !(fraction >= 0 && fraction <= 1) {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidFraction, fraction)
	}

	train = make([]T, 0, int(float64(len(items))*fraction)+1)
	test = make([]T, 0, len(items)-cap(train)+1)
	for _, item := range items {
		if rng.Float64() < fraction {
			train = append(train, item)
		} else {
			test = append(test, item)
		}
	}
	return train, test, nil
}
