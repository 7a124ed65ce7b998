package session

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Derived ids are "<base>_<n>" with n in [minSuffix, maxSuffix].
const (
	minSuffix      = 100
	maxSuffix      = 9999
	randomAttempts = 32
)

type idGenerator struct {
	intn func(n int) int
}

func newIDGenerator() *idGenerator {
	return &idGenerator{intn: rand.IntN}
}

// next picks a random suffix and retries on collision with used. After
// randomAttempts misses it takes the first free suffix, and past maxSuffix
// it keeps counting, so it always returns an unused id.
func (g *idGenerator) next(base string, used map[string]bool) string {
	for i := 0; i < randomAttempts; i++ {
		id := base + "_" + strconv.Itoa(minSuffix+g.intn(maxSuffix-minSuffix+1))
		if !used[id] {
			return id
		}
	}
	for n := minSuffix; ; n++ {
		id := base + "_" + strconv.Itoa(n)
		if !used[id] {
			return id
		}
	}
}

// baseID is the part of a product id before the first underscore.
func baseID(id string) string {
	base, _, _ := strings.Cut(id, "_")
	return base
}
