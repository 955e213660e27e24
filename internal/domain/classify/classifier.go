// Package classify decides whether a commit message represents a meaningful
// contribution and, if so, how large a score delta it earns.
//
// This is a policy heuristic, not a learned model: classification is a
// deterministic keyword test, while the granted delta is randomized by
// design. The classifier is stateless across calls.
package classify

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Delta bounds for meaningful commits.
const (
	DeltaMin = 0.5
	DeltaMax = 2.5
)

// meaningfulKeywords is the fixed keyword set: feature additions, fixes,
// maintenance chores, documentation, refactors, performance work, tests,
// and style. Matching is case-folded substring containment; the first match
// wins, with no ranking among keywords.
var meaningfulKeywords = []string{
	"feat",
	"feature",
	"fix",
	"bug",
	"chore",
	"docs",
	"refactor",
	"perf",
	"optimize",
	"test",
	"style",
}

// Result is the classification outcome for one commit message.
type Result struct {
	Meaningful bool
	Delta      float64
	Keyword    string
}

// Classifier maps commit messages to score deltas.
type Classifier struct {
	keywords []string

	// rng draws delta magnitudes; guarded because webhook handlers run
	// concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithSeed seeds the delta RNG, making magnitudes reproducible in tests.
func WithSeed(seed int64) Option {
	return func(c *Classifier) {
		c.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // policy heuristic, not crypto
	}
}

// WithKeywords replaces the keyword set.
func WithKeywords(keywords []string) Option {
	return func(c *Classifier) {
		if len(keywords) > 0 {
			c.keywords = append([]string(nil), keywords...)
		}
	}
}

// New creates a classifier with the fixed default keyword set and a
// time-seeded RNG.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		keywords: meaningfulKeywords,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // policy heuristic, not crypto
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify tests a commit message against the keyword set. A match yields a
// delta drawn uniformly from [DeltaMin, DeltaMax], rounded to two decimals;
// no match yields a zero delta.
func (c *Classifier) Classify(message string) Result {
	folded := strings.ToLower(message)
	for _, kw := range c.keywords {
		if strings.Contains(folded, kw) {
			return Result{Meaningful: true, Delta: c.draw(), Keyword: kw}
		}
	}
	return Result{}
}

func (c *Classifier) draw() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	delta := DeltaMin + c.rng.Float64()*(DeltaMax-DeltaMin)
	return math.Round(delta*100) / 100
}
