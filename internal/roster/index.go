package roster

// Collision records a lookup key that a later roster line took over from an
// earlier one with a different canonical name.
type Collision struct {
	Key      string `json:"key"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// Index maps normalized lookup keys to canonical names. Keys are iterated in
// first-insertion order so fuzzy scans are reproducible.
type Index struct {
	order      []string
	entries    map[string]string
	collisions []Collision
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]string)}
}

// BuildIndex indexes identities in order; a later identity overwrites an
// earlier one on a shared key.
func BuildIndex(identities []Identity) *Index {
	idx := NewIndex()
	for _, id := range identities {
		idx.Add(id)
	}
	return idx
}

// Add inserts every lookup key of id.
func (x *Index) Add(id Identity) {
	canonical := id.Canonical()
	for _, key := range id.LookupKeys() {
		x.put(key, canonical)
	}
}

func (x *Index) put(key, canonical string) {
	previous, exists := x.entries[key]
	if !exists {
		x.order = append(x.order, key)
	} else if previous != canonical {
		x.collisions = append(x.collisions, Collision{Key: key, Previous: previous, Current: canonical})
	}
	x.entries[key] = canonical
}

// Lookup returns the canonical name stored under key.
func (x *Index) Lookup(key string) (string, bool) {
	if x == nil {
		return "", false
	}
	canonical, ok := x.entries[key]
	return canonical, ok
}

// Keys returns all keys in first-insertion order.
func (x *Index) Keys() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}

// Collisions returns every key overwrite in the order it happened.
func (x *Index) Collisions() []Collision {
	if x == nil {
		return nil
	}
	out := make([]Collision, len(x.collisions))
	copy(out, x.collisions)
	return out
}
