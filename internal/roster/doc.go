// Package roster parses class attendance lists into structured identities and
// builds the lookup index used to resolve typed student names.
//
// A roster line has the shape
//
//	Last, Middle, First (Nick) #ID
//
// where the middle segment and the nickname parenthetical are optional. Parse
// reads a line with a small hand-written scanner and reports malformed input
// as a *LineError. Identity.Canonical renders the line back in canonical form;
// the two are inverses for any well-formed identity.
//
// The Index maps folded surface forms ("jane smith", "janie s.", "j. smith")
// to canonical names. Lines are indexed in file order and a later line wins a
// shared key; every such overwrite is kept as a Collision so callers can warn
// about ambiguous rosters.
package roster
