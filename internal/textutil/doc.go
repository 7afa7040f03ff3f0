// Package textutil provides text processing utilities for name matching and
// filename sanitization.
//
// The primary use cases are:
//   - Folding names to an accent-free, lower-cased form for lookup keys
//   - Scoring how similar two normalized strings are on a 0-100 scale
//   - Sanitizing period labels and path segments for safe filesystem use
//
// Folding decomposes text (NFKD), drops combining marks, and recomposes it, so
// "Zoë" and "Zoe" produce the same key. Similarity is computed over runes, not
// bytes, so folded and unfolded inputs are scored consistently.
package textutil
