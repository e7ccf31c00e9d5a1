package solver

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/davidsrrose/wordle-bot/internal/game"
)

// Strategy selects the next guess from a non-empty candidate list.
type Strategy interface {
	Name() string
	Pick(candidates []string) string
}

// RandomStrategy picks uniformly at random. Seed the source for
// reproducible runs.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy uses rng; a nil rng gets a seeded PCG with seed 0.
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	return &RandomStrategy{rng: rng}
}

// NewSeededRandomStrategy is NewRandomStrategy over a PCG seeded with seed.
func NewSeededRandomStrategy(seed uint64) *RandomStrategy {
	return NewRandomStrategy(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Pick(candidates []string) string {
	return candidates[s.rng.IntN(len(candidates))]
}

// FirstStrategy always picks the first candidate in dictionary order.
type FirstStrategy struct{}

func (FirstStrategy) Name() string { return "first" }

func (FirstStrategy) Pick(candidates []string) string { return candidates[0] }

// EntropyStrategy picks the candidate whose feedback pattern over the pool
// has the highest Shannon entropy, i.e. the largest expected information.
// Guesses are drawn from the pool itself, so picks stay valid in hard mode.
// Ties keep the earlier candidate.
type EntropyStrategy struct {
	// MaxGuesses bounds how many candidates are scored as guesses (0 = all).
	MaxGuesses int
}

func (EntropyStrategy) Name() string { return "entropy" }

func (s EntropyStrategy) Pick(candidates []string) string {
	if len(candidates) <= 2 {
		return candidates[0]
	}
	guesses := candidates
	if s.MaxGuesses > 0 && len(guesses) > s.MaxGuesses {
		guesses = guesses[:s.MaxGuesses]
	}

	best, bestH := guesses[0], -1.0
	for _, g := range guesses {
		if h := Entropy(g, candidates); h > bestH {
			best, bestH = g, h
		}
	}
	return best
}

// Entropy is the entropy in bits of guess's feedback pattern distribution
// when the answer is uniform over candidates.
func Entropy(guess string, candidates []string) float64 {
	var buckets [game.PatternCount]int
	for _, answer := range candidates {
		buckets[game.Pattern(answer, guess)]++
	}
	n := float64(len(candidates))
	h := 0.0
	for _, c := range buckets {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// ParseStrategy builds a strategy by name: "random", "entropy" or "first".
// seed feeds the random strategy.
func ParseStrategy(name string, seed uint64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "random":
		return NewSeededRandomStrategy(seed), nil
	case "entropy":
		return EntropyStrategy{MaxGuesses: 500}, nil
	case "first":
		return FirstStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want random, entropy or first)", name)
}
