// Package domain defines the core business entities of AlgoDeck: items
// (coding-interview problems), tiered solutions, notebooks, revision log
// entries, and the per-item spaced-repetition state. Entities carry their
// own validation; persistence lives in the store packages.
package domain
