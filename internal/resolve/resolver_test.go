package resolve

import (
	"testing"

	"quizsorter/internal/roster"
)

const janie = "Smith, John, Jane (Janie) #123"

func buildIndex(t *testing.T, lines ...string) *roster.Index {
	t.Helper()
	r, err := roster.Build(lines)
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	return r.Index
}

func TestResolveNicknameInitial(t *testing.T) {
	resolver := New(buildIndex(t, janie))
	m, ok := resolver.Resolve("Janie S.")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Canonical != janie {
		t.Fatalf("Canonical = %q, want %q", m.Canonical, janie)
	}
	if m.Strategy != StrategyExact || m.Key != "janie s." || m.Score != 100 {
		t.Fatalf("unexpected match details: %+v", m)
	}
	if m.Raw != "Janie S." {
		t.Fatalf("Raw = %q", m.Raw)
	}
}

func TestResolveSteps(t *testing.T) {
	resolver := New(buildIndex(t,
		janie,
		"Müller, Zoë #7",
		"Nguyen, Bao #42",
	))

	tests := []struct {
		name     string
		raw      string
		want     string
		strategy Strategy
	}{
		{"exact with case and spacing", "  JANE   smith ", janie, StrategyExact},
		{"quoted", `"Jane Smith"`, janie, StrategyExact},
		{"diacritics folded", "zoe MULLER", "Müller, Zoë #7", StrategyExact},
		{"diacritics typed", "Zoë Müller", "Müller, Zoë #7", StrategyExact},
		{"trailing dot", "Jane Smith.", janie, StrategyUndotted},
		{"stray dot in first name", "Bao. Nguyen", "Nguyen, Bao #42", StrategyUndotted},
		{"typo", "Jane Smyth", janie, StrategyFuzzy},
		{"missing period after initial", "J Smith", janie, StrategyFuzzy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := resolver.Resolve(tt.raw)
			if !ok {
				t.Fatalf("Resolve(%q) unmatched", tt.raw)
			}
			if m.Canonical != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.raw, m.Canonical, tt.want)
			}
			if m.Strategy != tt.strategy {
				t.Fatalf("Resolve(%q) strategy = %s, want %s", tt.raw, m.Strategy, tt.strategy)
			}
		})
	}
}

func TestResolveUnmatched(t *testing.T) {
	resolver := New(buildIndex(t, janie))
	for _, raw := range []string{"", "   ", `""`, "Bob Jones", "Xavier Q"} {
		if m, ok := resolver.Resolve(raw); ok {
			t.Fatalf("Resolve(%q) matched %+v, expected unmatched", raw, m)
		}
	}
}

func TestResolveThresholdIsStrict(t *testing.T) {
	fixed := func(string, string) int { return 80 }
	resolver := New(buildIndex(t, janie), WithSimilarity(fixed))
	if _, ok := resolver.Resolve("someone else"); ok {
		t.Fatal("score equal to threshold must not match")
	}

	lower := New(buildIndex(t, janie), WithSimilarity(fixed), WithThreshold(79))
	if _, ok := lower.Resolve("someone else"); !ok {
		t.Fatal("score above threshold should match")
	}
}

func TestResolveFuzzyTieBreakIsDeterministic(t *testing.T) {
	fixed := func(string, string) int { return 90 }
	orders := [][]string{
		{"Zed, Amy #1", "Abe, Bob #2"},
		{"Abe, Bob #2", "Zed, Amy #1"},
	}
	for _, lines := range orders {
		resolver := New(buildIndex(t, lines...), WithSimilarity(fixed))
		m, ok := resolver.Resolve("unrelated")
		if !ok {
			t.Fatal("expected fuzzy match")
		}
		if m.Canonical != "Abe, Bob #2" || m.Key != "b. abe" {
			t.Fatalf("tie broke to %+v, want Abe, Bob #2 via b. abe", m)
		}
	}
}

func TestResolveFuzzyPrefersHigherScore(t *testing.T) {
	scores := map[string]int{"amy zed": 85, "bob abe": 95}
	sim := func(_ string, key string) int { return scores[key] }
	resolver := New(buildIndex(t, "Zed, Amy #1", "Abe, Bob #2"), WithSimilarity(sim))
	m, ok := resolver.Resolve("whoever")
	if !ok || m.Canonical != "Abe, Bob #2" || m.Score != 95 {
		t.Fatalf("unexpected match %+v (%v)", m, ok)
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	resolver := New(buildIndex(t, janie, "Nguyen, Bao #42"))
	out := resolver.ResolveAll([]string{"Nobody Here", "Bao Nguyen", "", "Janie S.", "Nobody Here"})
	if len(out.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %+v", out.Matches)
	}
	if out.Matches[0].Canonical != "Nguyen, Bao #42" || out.Matches[1].Canonical != janie {
		t.Fatalf("matches out of order: %+v", out.Matches)
	}
	want := []string{"Nobody Here", "", "Nobody Here"}
	if len(out.Unmatched) != len(want) {
		t.Fatalf("Unmatched = %v, want %v", out.Unmatched, want)
	}
	for i := range want {
		if out.Unmatched[i] != want[i] {
			t.Fatalf("Unmatched[%d] = %q, want %q", i, out.Unmatched[i], want[i])
		}
	}
}

func TestResolveNilIndex(t *testing.T) {
	resolver := New(nil)
	if _, ok := resolver.Resolve("Jane Smith"); ok {
		t.Fatal("nil index should never match")
	}
}
