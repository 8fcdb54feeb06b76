// Package dictionary caches canonical operator-word generators per
// hierarchy depth.
//
// Level(k) returns a Pair of generators (forward words of length ≤ k and
// their conjugates). Pairs are built lazily and at most one Pair per depth
// is ever published. Readers of cached depths only take a shared lock.
// On a miss the candidate is built outside any lock and committed under a
// short exclusive lock; a concurrent builder that lost the race discards
// its candidate.
package dictionary
