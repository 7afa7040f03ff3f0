package roster

import (
	"strings"

	"quizsorter/internal/textutil"
)

// Identity is one parsed roster entry.
type Identity struct {
	Last     string `json:"last"`
	Middle   string `json:"middle,omitempty"`
	First    string `json:"first"`
	Nickname string `json:"nickname,omitempty"`
	ID       string `json:"id"`
}

// Canonical renders the identity as "Last, Middle, First (Nick) #ID", leaving
// out the middle segment and the nickname when they are empty.
func (i Identity) Canonical() string {
	var b strings.Builder
	b.WriteString(i.Last)
	b.WriteString(", ")
	if i.Middle != "" {
		b.WriteString(i.Middle)
		b.WriteString(", ")
	}
	b.WriteString(i.First)
	if i.Nickname != "" {
		b.WriteString(" (")
		b.WriteString(i.Nickname)
		b.WriteByte(')')
	}
	b.WriteByte(' ')
	b.WriteString(i.ID)
	return b.String()
}

// Format is the functional form of Identity.Canonical.
func Format(i Identity) string {
	return i.Canonical()
}

// LastKey is the folded surname used in lookup keys.
func (i Identity) LastKey() string { return textutil.Fold(i.Last) }

// FirstKey is the folded first name used in lookup keys.
func (i Identity) FirstKey() string { return textutil.Fold(i.First) }

// NickKey is the folded nickname, empty when the entry has none.
func (i Identity) NickKey() string { return textutil.Fold(i.Nickname) }

// LastInitial is the first rune of the folded surname.
func (i Identity) LastInitial() string { return textutil.FirstRune(i.LastKey()) }

// LookupKeys returns the surface forms a student is likely to type, in index
// order: first last, nick last, first l., nick l., f. last, n. last. Nickname
// forms are skipped when there is no nickname.
func (i Identity) LookupKeys() []string {
	last := i.LastKey()
	first := i.FirstKey()
	nick := i.NickKey()
	initial := i.LastInitial()

	candidates := make([]string, 0, 6)
	candidates = append(candidates, first+" "+last)
	if nick != "" {
		candidates = append(candidates, nick+" "+last)
	}
	candidates = append(candidates, first+" "+initial+".")
	if nick != "" {
		candidates = append(candidates, nick+" "+initial+".")
	}
	candidates = append(candidates, textutil.FirstRune(first)+". "+last)
	if nick != "" {
		candidates = append(candidates, textutil.FirstRune(nick)+". "+last)
	}

	keys := candidates[:0]
	for _, key := range candidates {
		key = textutil.CollapseSpace(key)
		if key == "" || key == "." {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
