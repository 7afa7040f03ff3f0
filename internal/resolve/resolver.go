package resolve

import (
	"strings"

	"quizsorter/internal/roster"
	"quizsorter/internal/textutil"
)

// DefaultThreshold is the fuzzy score a candidate must exceed.
const DefaultThreshold = 80

// Strategy names the step that produced a match.
type Strategy string

const (
	StrategyExact    Strategy = "exact"
	StrategyUndotted Strategy = "undotted"
	StrategyFuzzy    Strategy = "fuzzy"
)

// Similarity scores two normalized strings from 0 to 100. It must be
// symmetric and return 100 only for equal inputs.
type Similarity func(a, b string) int

// Match describes a resolved name.
type Match struct {
	Raw       string   `json:"raw"`
	Canonical string   `json:"canonical"`
	Strategy  Strategy `json:"strategy"`
	Key       string   `json:"key"`
	Score     int      `json:"score"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold overrides the fuzzy acceptance threshold.
func WithThreshold(threshold int) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithSimilarity replaces the default indel ratio.
func WithSimilarity(fn Similarity) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.similarity = fn
		}
	}
}

// Resolver resolves names against one roster index.
type Resolver struct {
	index      *roster.Index
	threshold  int
	similarity Similarity
}

// New builds a resolver over index.
func New(index *roster.Index, opts ...Option) *Resolver {
	r := &Resolver{
		index:      index,
		threshold:  DefaultThreshold,
		similarity: textutil.Ratio,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold reports the fuzzy acceptance threshold.
func (r *Resolver) Threshold() int {
	return r.threshold
}

// Resolve maps raw onto a canonical name. Empty or whitespace-only input never
// matches.
func (r *Resolver) Resolve(raw string) (Match, bool) {
	key := textutil.NormalizeKey(raw)
	if key == "" {
		return Match{}, false
	}
	if canonical, ok := r.index.Lookup(key); ok {
		return Match{Raw: raw, Canonical: canonical, Strategy: StrategyExact, Key: key, Score: 100}, true
	}

	undotted := textutil.CollapseSpace(strings.ReplaceAll(key, ".", ""))
	if undotted != "" && undotted != key {
		if canonical, ok := r.index.Lookup(undotted); ok {
			return Match{Raw: raw, Canonical: canonical, Strategy: StrategyUndotted, Key: undotted, Score: 100}, true
		}
	}

	best, found := r.fuzzy(key)
	if !found {
		return Match{}, false
	}
	best.Raw = raw
	return best, true
}

func (r *Resolver) fuzzy(key string) (Match, bool) {
	var best Match
	found := false
	for _, candidate := range r.index.Keys() {
		score := r.similarity(key, candidate)
		if score <= r.threshold {
			continue
		}
		canonical, _ := r.index.Lookup(candidate)
		if !found || better(score, canonical, candidate, best) {
			best = Match{Canonical: canonical, Strategy: StrategyFuzzy, Key: candidate, Score: score}
			found = true
		}
	}
	return best, found
}

func better(score int, canonical, key string, current Match) bool {
	if score != current.Score {
		return score > current.Score
	}
	if canonical != current.Canonical {
		return canonical < current.Canonical
	}
	return key < current.Key
}

// Outcome is the result of resolving a batch of names.
type Outcome struct {
	Matches   []Match  `json:"matches"`
	Unmatched []string `json:"unmatched"`
}

// ResolveAll resolves names in order. Unmatched raw names are returned in
// input order, duplicates included.
func (r *Resolver) ResolveAll(names []string) Outcome {
	out := Outcome{
		Matches:   make([]Match, 0, len(names)),
		Unmatched: make([]string, 0),
	}
	for _, name := range names {
		if m, ok := r.Resolve(name); ok {
			out.Matches = append(out.Matches, m)
			continue
		}
		out.Unmatched = append(out.Unmatched, name)
	}
	return out
}
