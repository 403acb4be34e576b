// Package wordpair generates random adjective-noun pairs for the demo
// screen. Pairs are ephemeral; nothing is persisted.
package wordpair

import (
	"fmt"
	"math/rand"
	"strings"
)

var adjectives = []string{
	"amber", "brisk", "calm", "daring", "eager", "fuzzy",
	"gentle", "hollow", "ivory", "jolly", "keen", "lively",
	"mellow", "nimble", "plucky", "quiet", "rustic", "swift",
	"tidy", "vivid",
}

var nouns = []string{
	"anchor", "beacon", "canyon", "drift", "ember", "fjord",
	"grove", "harbor", "island", "jungle", "kettle", "lantern",
	"meadow", "nectar", "orchard", "prairie", "quarry", "ridge",
	"summit", "thicket",
}

// Generator produces random word pairs from a seeded source so demos can be
// reproduced.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded from src. A nil source falls back to the
// shared global source.
func New(src rand.Source) *Generator {
	if src == nil {
		return &Generator{}
	}
	return &Generator{rng: rand.New(src)}
}

func (g *Generator) intn(n int) int {
	if g.rng != nil {
		return g.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Pair returns a random adjective-noun pair in lowerCamel form, matching the
// demo screen's display convention.
func (g *Generator) Pair() string {
	adj := adjectives[g.intn(len(adjectives))]
	noun := nouns[g.intn(len(nouns))]
	return adj + strings.ToUpper(noun[:1]) + noun[1:]
}

// Pairs returns n fresh pairs.
func (g *Generator) Pairs(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Pair())
	}
	return out
}

// String implements fmt.Stringer for convenience in logs and demos.
func (g *Generator) String() string {
	return fmt.Sprintf("wordpair.Generator(%d adjectives, %d nouns)", len(adjectives), len(nouns))
}
